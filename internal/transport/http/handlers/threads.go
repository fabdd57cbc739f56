package handlers

import (
	"errors"
	"net/http"

	threadsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/threads"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/dto"
	httperrors "github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/errors"
)

type ThreadsHandler struct {
	service *threadsvc.Service
}

func NewThreadsHandler(service *threadsvc.Service) *ThreadsHandler {
	return &ThreadsHandler{service: service}
}

func (h *ThreadsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "thread service is unavailable")
		return
	}

	var req dto.CreateThreadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	thread, err := h.service.Create(r.Context(), actor.UserID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, threadsvc.ErrInvalidInput) {
			writeBadRequest(w, err.Error())
			return
		}
		writeInternal(w, "failed to create thread")
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ThreadFromModel(thread))
}

func (h *ThreadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "thread service is unavailable")
		return
	}

	threadID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid thread id")
		return
	}

	thread, err := h.service.Get(r.Context(), threadID, actor)
	if err != nil {
		switch {
		case errors.Is(err, threadsvc.ErrNotFound):
			writeNotFound(w, "thread not found")
		case errors.Is(err, threadsvc.ErrInvalidInput):
			writeBadRequest(w, err.Error())
		default:
			writeInternal(w, "failed to get thread")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ThreadFromModel(thread))
}

func (h *ThreadsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "thread service is unavailable")
		return
	}

	offset, limit := paginationFromRequest(r)
	threads, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		writeInternal(w, "failed to list threads")
		return
	}

	resp := dto.ThreadListResponse{Threads: make([]dto.ThreadResponse, 0, len(threads))}
	for _, thread := range threads {
		resp.Threads = append(resp.Threads, dto.ThreadFromModel(thread))
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ThreadsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "thread service is unavailable")
		return
	}

	threadID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid thread id")
		return
	}

	var req dto.UpdateThreadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	thread, err := h.service.Update(r.Context(), threadID, actor, req.Title, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, threadsvc.ErrNotFound):
			writeNotFound(w, "thread not found")
		case errors.Is(err, threadsvc.ErrForbidden):
			writeForbidden(w)
		case errors.Is(err, threadsvc.ErrInvalidInput):
			writeBadRequest(w, err.Error())
		default:
			writeInternal(w, "failed to update thread")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ThreadFromModel(thread))
}

func (h *ThreadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "thread service is unavailable")
		return
	}

	threadID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid thread id")
		return
	}

	if err := h.service.Delete(r.Context(), threadID, actor); err != nil {
		switch {
		case errors.Is(err, threadsvc.ErrNotFound):
			writeNotFound(w, "thread not found")
		case errors.Is(err, threadsvc.ErrForbidden):
			writeForbidden(w)
		default:
			writeInternal(w, "failed to delete thread")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *ThreadsHandler) Like(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "thread service is unavailable")
		return
	}

	threadID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid thread id")
		return
	}

	likeCount, err := h.service.Like(r.Context(), threadID, actor)
	if err != nil {
		switch {
		case errors.Is(err, threadsvc.ErrNotFound):
			writeNotFound(w, "thread not found")
		default:
			writeInternal(w, "failed to like thread")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LikeResponse{LikeCount: likeCount})
}
