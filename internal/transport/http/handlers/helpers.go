package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/auth"
	modsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/moderation"
	httperrors "github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func actorFromRequest(r *http.Request) (modsvc.Actor, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		return modsvc.Actor{}, false
	}
	return modsvc.Actor{UserID: identity.UserID, Role: identity.Role}, true
}

func idFromRequest(r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func paginationFromRequest(r *http.Request) (offset, limit int) {
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return offset, limit
}

func writeBadRequest(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
		Code:    "UNAUTHORIZED",
		Message: "authentication required",
	})
}

func writeForbidden(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{
		Code:    "FORBIDDEN",
		Message: "action is not allowed",
	})
}

func writeNotFound(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
		Code:    "NOT_FOUND",
		Message: message,
	})
}

func writeInternal(w http.ResponseWriter, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
		Code:    "INTERNAL_ERROR",
		Message: message,
	})
}
