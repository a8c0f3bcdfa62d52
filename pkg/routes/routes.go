package pkg

import (
	"context"
	"errors"
	"net/http"
	"time"

	"SDRAdmin/internal/auth"
	"SDRAdmin/internal/config"
	"SDRAdmin/internal/lead"
	"SDRAdmin/internal/meeting"
	"SDRAdmin/internal/notification"
	"SDRAdmin/pkg/middleware"
	"SDRAdmin/pkg/response"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewMailConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(middleware.NewEnforcer),
	fx.Provide(auth.NewTokenIssuer),
	fx.Provide(auth.NewAdminRepository),
	fx.Provide(auth.NewAdminService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(lead.NewLeadRepository),
	fx.Provide(lead.NewLeadService),
	fx.Provide(lead.NewLeadHandler),
	fx.Provide(notification.NewNotificationRepository),
	fx.Provide(notification.NewNotificationService),
	fx.Provide(notification.NewNotificationHandler),
	fx.Provide(notification.NewExpirySweeper),
	fx.Provide(meeting.NewMeetingRepository),
	fx.Provide(meeting.NewCoordinator),
	fx.Provide(meeting.NewMeetingHandler),
	fx.Invoke(config.EnsureIndexes),
	fx.Invoke(func(s *notification.ExpirySweeper, lc fx.Lifecycle) { s.Start(lc) }),
	fx.Invoke(RegisterRoutes))

// NewEchoServer creates the echo instance and binds it to the fx lifecycle.
func NewEchoServer(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(middleware.Metrics)
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	addr := ":" + cfg.Port
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("server starting", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start the server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down the server")
			return e.Shutdown(ctx)
		},
	})
	return e
}

type Handlers struct {
	fx.In

	Auth         *auth.AuthHandler
	Leads        *lead.LeadHandler
	Notification *notification.NotificationHandler
	Meetings     *meeting.MeetingHandler
}

// RegisterRoutes mounts every endpoint on e.
func RegisterRoutes(
	e *echo.Echo,
	h Handlers,
	issuer *auth.TokenIssuer,
	enforcer *casbin.Enforcer,
	mongo *config.MongoDBClient,
	logger *zap.Logger,
) {
	e.GET("/healthz", healthz(mongo))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/admin/register", h.Auth.Register)
	e.POST("/admin/login", h.Auth.Login)

	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware(issuer, logger))
	api.Use(middleware.CasbinMiddleware(enforcer, logger))

	api.GET("/admin/profile", h.Auth.Profile)

	api.POST("/leads", h.Leads.Create)
	api.GET("/leads", h.Leads.List)
	api.GET("/leads/:id", h.Leads.Get)

	notifications := api.Group("/notifications")
	notifications.GET("", h.Notification.List)
	notifications.POST("", h.Notification.Create)
	notifications.PATCH("/mark-all-read", h.Notification.MarkAllRead)
	notifications.PATCH("/:id/read", h.Notification.MarkRead)
	notifications.DELETE("/:id", h.Notification.Delete)

	meetings := api.Group("/meetings")
	meetings.POST("/schedule", h.Meetings.Schedule)
	meetings.GET("", h.Meetings.List)
	meetings.GET("/upcoming", h.Meetings.Upcoming)
	meetings.GET("/today", h.Meetings.Today)
	meetings.GET("/:id", h.Meetings.Get)
	meetings.PUT("/:id", h.Meetings.Update)
	meetings.DELETE("/:id", h.Meetings.Delete)
	meetings.POST("/send-invitation", h.Meetings.SendInvitation)
	meetings.POST("/:id/join", h.Meetings.Join)
	meetings.POST("/:id/complete", h.Meetings.Complete)
}

func healthz(mongo *config.MongoDBClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := mongo.Ping(ctx); err != nil {
			return response.Fail(c, http.StatusServiceUnavailable, "database unreachable")
		}
		return response.Success(c, http.StatusOK, "ok", nil)
	}
}
