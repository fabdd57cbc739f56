package handlers

import (
	"errors"
	"net/http"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	modsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/moderation"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/dto"
	httperrors "github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/errors"
)

type AdminHandler struct {
	moderation *modsvc.Service
}

func NewAdminHandler(moderation *modsvc.Service) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

func (h *AdminHandler) ApproveThread(w http.ResponseWriter, r *http.Request) {
	h.approve(w, r, enums.ContentTypeThread)
}

func (h *AdminHandler) ApproveReply(w http.ResponseWriter, r *http.Request) {
	h.approve(w, r, enums.ContentTypeReply)
}

func (h *AdminHandler) approve(w http.ResponseWriter, r *http.Request, contentType enums.ContentType) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.moderation == nil {
		writeInternal(w, "moderation service is unavailable")
		return
	}

	contentID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid content id")
		return
	}

	if err := h.moderation.Approve(r.Context(), contentType, contentID, actor); err != nil {
		switch {
		case errors.Is(err, modsvc.ErrForbidden):
			writeForbidden(w)
		case errors.Is(err, modsvc.ErrNotFound):
			writeNotFound(w, "content not found")
		default:
			writeInternal(w, "failed to approve content")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
