package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser"
	advertiserdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article"
	articledomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/auth"
	authdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/auth/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/auth/session"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/config"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/observability"
	obslogger "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/observability/logger"
	obsmetrics "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/observability/metrics"
	obstracing "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/observability/tracing"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/email"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/providers/pdf"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/seed"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings"
	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket"
	ticketdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	auth.Module,
	session.Module,
	email.Module,
	pdf.Module,
	settings.Module,
	advertiser.Module,
	article.Module,
	ticket.Module,
	seed.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(log, obsCfg, httpMetrics, registry)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	sessions      *session.Manager
	authsvc       authdomain.Service
	advertiserSvc advertiserdomain.Service
	articleSvc    articledomain.Service
	ticketSvc     ticketdomain.Service
	settingsSvc   settingsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	Sessions      *session.Manager
	Authsvc       authdomain.Service
	AdvertiserSvc advertiserdomain.Service
	ArticleSvc    articledomain.Service
	TicketSvc     ticketdomain.Service
	SettingsSvc   settingsdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		sessions:      p.Sessions,
		authsvc:       p.Authsvc,
		advertiserSvc: p.AdvertiserSvc,
		articleSvc:    p.ArticleSvc,
		ticketSvc:     p.TicketSvc,
		settingsSvc:   p.SettingsSvc,
	}

	svc.registerAuthRoutes()
	svc.registerPublicRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/articles", s.ListPublishedArticles)
	api.GET("/articles/:slug", s.GetArticleBySlug)
	api.POST("/tickets", s.CreateTicket)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/v1/admin", s.AuthRequired())

	articles := admin.Group("/articles")
	{
		articles.GET("", s.ListArticles)
		articles.POST("", s.CreateArticle)
		articles.GET("/:id", s.GetArticle)
		articles.PATCH("/:id", s.UpdateArticle)
		articles.POST("/:id/publish", s.PublishArticle)
		articles.POST("/:id/unpublish", s.UnpublishArticle)
		articles.DELETE("/:id", s.DeleteArticle)
	}

	tickets := admin.Group("/tickets")
	{
		tickets.GET("", s.ListTickets)
		tickets.GET("/:id", s.GetTicket)
		tickets.POST("/:id/replies", s.ReplyTicket)
		tickets.POST("/:id/close", s.CloseTicket)
	}

	// Billing and portal configuration stay admin-only; editors manage
	// content and tickets.
	advertisers := admin.Group("/advertisers", s.RequireRole(authdomain.RoleAdmin))
	{
		advertisers.GET("", s.ListAdvertisers)
		advertisers.POST("", s.CreateAdvertiser)
		advertisers.GET("/:id", s.GetAdvertiser)
		advertisers.PATCH("/:id", s.UpdateAdvertiser)
		advertisers.GET("/:id/quote", s.QuoteAdvertiser)
		advertisers.GET("/:id/pix", s.AdvertiserPixCharge)
		advertisers.GET("/:id/boleto", s.AdvertiserBoleto)
		advertisers.GET("/:id/contract.pdf", s.AdvertiserContractPDF)
		advertisers.POST("/:id/contract/email", s.EmailAdvertiserContract)
		advertisers.GET("/:id/carnet.pdf", s.AdvertiserCarnetPDF)
	}

	settingsGroup := admin.Group("/settings", s.RequireRole(authdomain.RoleAdmin))
	{
		settingsGroup.GET("", s.GetSettings)
		settingsGroup.PATCH("", s.UpdateSettings)
	}
}
