package ws

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	authsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/auth"
	httperrors "github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/errors"
)

type TokenVerifier interface {
	ParseAccessToken(raw string) (authsvc.AccessClaims, error)
}

// Handler upgrades authenticated HTTP requests into hub sessions. The bearer
// credential is verified before the upgrade, so an invalid or expired token
// is refused outright and no partial session ever exists.
type Handler struct {
	hub      *Hub
	tokens   TokenVerifier
	cfg      Config
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHandler(hub *Hub, tokens TokenVerifier, cfg Config, log *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		cfg:    cfg.withDefaults(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil || h.tokens == nil {
		httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
			Code:    "WS_UNAVAILABLE",
			Message: "realtime service is unavailable",
		})
		return
	}

	token, ok := extractToken(r)
	if !ok {
		httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
			Code:    "UNAUTHORIZED",
			Message: "missing bearer token",
		})
		return
	}

	claims, err := h.tokens.ParseAccessToken(token)
	if err != nil {
		httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
			Code:    "UNAUTHORIZED",
			Message: "invalid access token",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("ws upgrade failed", zap.Error(err))
		}
		return
	}

	session := newSession(h.hub, conn, claims.UserID, claims.Role, h.cfg, h.logger)
	h.hub.register(session)
	session.start()
}

// extractToken accepts the credential either as a bearer header or as a
// "token" query parameter; browser websocket clients cannot set headers.
func extractToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return parts[1], true
		}
	}

	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token, true
	}

	return "", false
}
