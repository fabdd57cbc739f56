package handlers

import (
	"errors"
	"net/http"

	notifsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/notifications"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/dto"
	httperrors "github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/errors"
)

type NotificationsHandler struct {
	service *notifsvc.Service
}

func NewNotificationsHandler(service *notifsvc.Service) *NotificationsHandler {
	return &NotificationsHandler{service: service}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "notification service is unavailable")
		return
	}

	offset, limit := paginationFromRequest(r)
	items, err := h.service.List(r.Context(), actor.UserID, offset, limit)
	if err != nil {
		writeInternal(w, "failed to list notifications")
		return
	}

	unread, err := h.service.UnreadCount(r.Context(), actor.UserID)
	if err != nil {
		writeInternal(w, "failed to count notifications")
		return
	}

	resp := dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(items)),
		UnreadCount:   unread,
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, dto.NotificationFromModel(n))
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "notification service is unavailable")
		return
	}

	notificationID, ok := idFromRequest(r, "id")
	if !ok {
		writeBadRequest(w, "invalid notification id")
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, actor.UserID); err != nil {
		switch {
		case errors.Is(err, notifsvc.ErrNotFound):
			writeNotFound(w, "notification not found")
		default:
			writeInternal(w, "failed to mark notification read")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if h.service == nil {
		writeInternal(w, "notification service is unavailable")
		return
	}

	if err := h.service.MarkAllRead(r.Context(), actor.UserID); err != nil {
		writeInternal(w, "failed to mark notifications read")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
