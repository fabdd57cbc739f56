package handlers

import (
	"errors"
	"net/http"

	repliesvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/replies"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/dto"
	httperrors "github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/errors"
)

type RepliesHandler struct {
	service *repliesvc.Service
}

func NewRepliesHandler(service *repliesvc.Service) *RepliesHandler {
	return &RepliesHandler{service: service}
}

func (h *RepliesHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "reply service is unavailable")
		return
	}

	threadID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid thread id")
		return
	}

	var req dto.CreateReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	reply, err := h.service.Create(r.Context(), actor, threadID, req.ParentReplyID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, repliesvc.ErrThreadNotFound):
			writeNotFound(w, "thread not found")
		case errors.Is(err, repliesvc.ErrInvalidInput):
			writeBadRequest(w, err.Error())
		default:
			writeInternal(w, "failed to create reply")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ReplyFromModel(reply))
}

func (h *RepliesHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "reply service is unavailable")
		return
	}

	threadID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid thread id")
		return
	}

	offset, limit := paginationFromRequest(r)
	replies, err := h.service.List(r.Context(), threadID, actor, offset, limit)
	if err != nil {
		switch {
		case errors.Is(err, repliesvc.ErrThreadNotFound):
			writeNotFound(w, "thread not found")
		default:
			writeInternal(w, "failed to list replies")
		}
		return
	}

	resp := dto.ReplyListResponse{Replies: make([]dto.ReplyResponse, 0, len(replies))}
	for _, reply := range replies {
		resp.Replies = append(resp.Replies, dto.ReplyFromModel(reply))
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *RepliesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "reply service is unavailable")
		return
	}

	replyID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid reply id")
		return
	}

	if err := h.service.Delete(r.Context(), replyID, actor); err != nil {
		switch {
		case errors.Is(err, repliesvc.ErrNotFound):
			writeNotFound(w, "reply not found")
		case errors.Is(err, repliesvc.ErrForbidden):
			writeForbidden(w)
		default:
			writeInternal(w, "failed to delete reply")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *RepliesHandler) Like(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "reply service is unavailable")
		return
	}

	replyID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid reply id")
		return
	}

	likeCount, err := h.service.Like(r.Context(), replyID, actor)
	if err != nil {
		switch {
		case errors.Is(err, repliesvc.ErrNotFound):
			writeNotFound(w, "reply not found")
		default:
			writeInternal(w, "failed to like reply")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LikeResponse{LikeCount: likeCount})
}
