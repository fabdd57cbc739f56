package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/config"
	pgrepo "github.com/shashidhar078/CHACKATHON-sub000/internal/repo/postgres"
	redrepo "github.com/shashidhar078/CHACKATHON-sub000/internal/repo/redis"
	authsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/auth"
	classifiersvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/classifier"
	modsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/moderation"
	notifsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/notifications"
	repliesvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/replies"
	threadsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/threads"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/transport/ws"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	hub        *ws.Hub
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	rateRepo := redrepo.NewRateRepo(redisClient)
	threadRepo := pgrepo.NewThreadRepo(pool)
	replyRepo := pgrepo.NewReplyRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)
	userRepo := pgrepo.NewUserRepo(pool)

	tokens := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)

	hub := ws.NewHub(log)
	wsHandler := ws.NewHandler(hub, tokens, ws.Config{
		SendBuffer:     cfg.WS.SendBuffer,
		WriteWait:      cfg.WS.WriteWait,
		PongWait:       cfg.WS.PongWait,
		MaxMessageSize: cfg.WS.MaxMessageSize,
	}, log)

	gateway := classifiersvc.NewGateway(rateRepo, classifiersvc.Config{
		APIKey:         cfg.Classifier.APIKey,
		BaseURL:        cfg.Classifier.BaseURL,
		Model:          cfg.Classifier.Model,
		Timeout:        cfg.Classifier.Timeout,
		CallsPerWindow: cfg.Classifier.CallsPerWindow,
		RateWindow:     cfg.Classifier.RateWindow,
	}, log)
	resolver := modsvc.NewResolver(gateway, log)

	notificationService := notifsvc.NewService(notificationRepo, userRepo, hub, log)
	moderationService := modsvc.NewService(threadRepo, replyRepo, hub, log)
	threadService := threadsvc.NewService(threadRepo, resolver, notificationService, hub, threadsvc.Config{
		TitleMaxLen:     cfg.Forum.TitleMaxLen,
		BodyMaxLen:      cfg.Forum.BodyMaxLen,
		PageSizeDefault: cfg.Forum.PageSizeDefault,
		PageSizeMax:     cfg.Forum.PageSizeMax,
	}, log)
	replyService := repliesvc.NewService(replyRepo, threadRepo, resolver, notificationService, hub, repliesvc.Config{
		BodyMaxLen:      cfg.Forum.BodyMaxLen,
		PageSizeDefault: cfg.Forum.PageSizeDefault,
		PageSizeMax:     cfg.Forum.PageSizeMax,
	}, log)

	RegisterRoutes(r, Dependencies{
		Tokens:              tokens,
		ThreadService:       threadService,
		ReplyService:        replyService,
		ModerationService:   moderationService,
		NotificationService: notificationService,
		WSHandler:           wsHandler,
		Logger:              log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		hub:        hub,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
