package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/auth"
	modsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/moderation"
	notifsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/notifications"
	repliesvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/replies"
	threadsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/threads"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/http/handlers"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/ws"
)

type Dependencies struct {
	Tokens              *authsvc.JWTManager
	ThreadService       *threadsvc.Service
	ReplyService        *repliesvc.Service
	ModerationService   *modsvc.Service
	NotificationService *notifsvc.Service
	WSHandler           *ws.Handler
	Logger              *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	threadsHandler := handlers.NewThreadsHandler(deps.ThreadService)
	repliesHandler := handlers.NewRepliesHandler(deps.ReplyService)
	notificationsHandler := handlers.NewNotificationsHandler(deps.NotificationService)
	adminHandler := handlers.NewAdminHandler(deps.ModerationService)

	authMW := AuthMiddleware(deps.Tokens, deps.Logger)
	adminMW := RequireAdmin()

	r.Get("/healthz", healthHandler.Get)

	if deps.WSHandler != nil {
		r.Handle("/ws", deps.WSHandler)
	}

	r.Route("/threads", func(r chi.Router) {
		r.Get("/", threadsHandler.List)
		r.With(authMW).Post("/", threadsHandler.Create)
		r.With(authMW).Get("/{id}", threadsHandler.Get)
		r.With(authMW).Put("/{id}", threadsHandler.Update)
		r.With(authMW).Delete("/{id}", threadsHandler.Delete)
		r.With(authMW).Post("/{id}/like", threadsHandler.Like)
		r.With(authMW).Get("/{id}/replies", repliesHandler.List)
		r.With(authMW).Post("/{id}/replies", repliesHandler.Create)
	})

	r.Route("/replies", func(r chi.Router) {
		r.With(authMW).Delete("/{id}", repliesHandler.Delete)
		r.With(authMW).Post("/{id}/like", repliesHandler.Like)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", notificationsHandler.List)
		r.Post("/{id}/read", notificationsHandler.MarkRead)
		r.Post("/read-all", notificationsHandler.MarkAllRead)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMW, adminMW)
		r.Post("/threads/{id}/approve", adminHandler.ApproveThread)
		r.Post("/replies/{id}/approve", adminHandler.ApproveReply)
	})
}
