// Package app wires the advisor service together: configuration, logging,
// metrics, the Neo4j curriculum store, the Postgres user store, the LLM
// provider chain, the NLU pipeline, and the HTTP surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dut-ailab/advisor-go/internal/auth"
	"github.com/dut-ailab/advisor-go/internal/buildinfo"
	"github.com/dut-ailab/advisor-go/internal/chatbot"
	"github.com/dut-ailab/advisor-go/internal/config"
	"github.com/dut-ailab/advisor-go/internal/graph"
	"github.com/dut-ailab/advisor-go/internal/llm"
	"github.com/dut-ailab/advisor-go/internal/logger"
	"github.com/dut-ailab/advisor-go/internal/metrics"
	"github.com/dut-ailab/advisor-go/internal/nlu"
	"github.com/dut-ailab/advisor-go/internal/rag"
	"github.com/dut-ailab/advisor-go/internal/ratelimit"
	"github.com/dut-ailab/advisor-go/internal/render"
	sentrywrap "github.com/dut-ailab/advisor-go/internal/sentry"
	"github.com/dut-ailab/advisor-go/internal/storage"
)

const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 2 * time.Minute
	idleTimeout       = 2 * time.Minute

	connectTimeout = 15 * time.Second
)

// Application owns every long-lived component of the service.
type Application struct {
	cfg      *config.Config
	logger   *logger.Logger
	metrics  *metrics.Metrics
	registry *prometheus.Registry

	graphClient *graph.Client
	db          *storage.DB
	completions *llm.Chain
	pipeline    *chatbot.Pipeline
	tokens      *auth.Manager
	chatLimiter *ratelimit.PerUserLimiter

	server *http.Server
}

// Initialize builds the full application from configuration. Nothing is
// served until Run is called.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.New(cfg.LogLevel)

	if cfg.SentryEnabled {
		err := sentrywrap.Initialize(sentrywrap.Config{
			DSN:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     buildinfo.Release(),
			SampleRate:  cfg.SentrySampleRate,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize sentry: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	app := &Application{
		cfg:      cfg,
		logger:   log,
		metrics:  m,
		registry: registry,
	}

	// The graph store and the user store are independent backends; bring
	// them up concurrently and fail fast when either is unreachable.
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	g, connectGroupCtx := errgroup.WithContext(connectCtx)
	g.Go(func() error {
		client, err := graph.Connect(connectGroupCtx, cfg.Neo4jURI, cfg.Neo4jUsername, cfg.Neo4jPassword)
		if err != nil {
			return fmt.Errorf("connect neo4j: %w", err)
		}
		app.graphClient = client
		return nil
	})
	g.Go(func() error {
		db, err := storage.Open(connectGroupCtx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		app.db = db
		return nil
	})
	if err := g.Wait(); err != nil {
		app.closeBackends(ctx)
		return nil, err
	}

	store := graph.NewStore(app.graphClient, m)

	chain, err := llm.FromConfig(ctx, cfg)
	if err != nil {
		app.closeBackends(ctx)
		return nil, fmt.Errorf("build completion chain: %w", err)
	}
	app.completions = chain
	if !chain.IsEnabled() {
		log.Warn("no LLM provider configured, classification and rendering degrade to fixed responses")
	}

	bounded := llm.WithTimeout(chain, cfg.LLMTimeout)
	classifyCompleter := llm.WithMetrics(bounded, m, "classify")
	extractCompleter := llm.WithMetrics(bounded, m, "extract")
	renderCompleter := llm.WithMetrics(bounded, m, "render")

	nameIndex := rag.NewNameIndex(log.WithModule("rag"))
	if names, err := store.ProgramNames(ctx); err != nil {
		log.WithError(err).Warn("program name index not warmed, fuzzy matching falls back to graph search")
	} else if err := nameIndex.Initialize(names); err != nil {
		log.WithError(err).Warn("program name index build failed")
	} else {
		log.WithField("programs", nameIndex.Count()).Info("program name index ready")
	}

	classifier := nlu.NewClassifier(classifyCompleter, log.WithModule("nlu"), m)
	extractor := nlu.NewExtractor(cfg.ExtractorStrategy, store, extractCompleter, nameIndex, log.WithModule("nlu"), m)
	renderer := render.NewLLMRenderer(renderCompleter, log.WithModule("render"))

	app.pipeline = chatbot.New(classifier, extractor, store, renderer, log.WithModule("chatbot"), m)

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		app.closeBackends(ctx)
		return nil, fmt.Errorf("token manager: %w", err)
	}
	app.tokens = tokens
	app.chatLimiter = ratelimit.NewPerUserLimiter(cfg.ChatRateBurst, cfg.ChatRateRefill)

	handlers := NewHandlers(app.db, tokens, app.pipeline, log.WithModule("http"))

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.buildRouter(handlers),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return app, nil
}

func (a *Application) buildRouter(handlers *Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	if sentrywrap.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(
		securityHeadersMiddleware(),
		requestIDMiddleware(),
		corsMiddleware(a.cfg.CORSOrigin),
		loggingMiddleware(a.logger.WithModule("http"), a.metrics),
	)

	router.GET("/healthz", a.healthz)
	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})),
	)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/login", handlers.Login)
	}

	private := router.Group("/", authMiddleware(a.tokens))
	{
		private.GET("/users/me", handlers.Me)
		private.POST("/chat", chatRateLimitMiddleware(a.chatLimiter), handlers.Chat)
	}

	admin := router.Group("/admin", authMiddleware(a.tokens), requireAdmin())
	{
		admin.GET("/users", handlers.ListUsers)
		admin.PUT("/users/:id/role", handlers.UpdateUserRole)
		admin.DELETE("/users/:id", handlers.DeleteUser)
	}

	return router
}

// healthz reports liveness of both backends.
func (a *Application) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	graphState, dbState := "ok", "ok"

	if err := a.graphClient.Ping(ctx); err != nil {
		graphState = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := a.db.Ping(ctx); err != nil {
		dbState = "unreachable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"graph":    graphState,
		"database": dbState,
		"version":  buildinfo.Release(),
	})
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then shuts everything down gracefully.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		a.shutdown(context.Background())
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-sigCh:
		a.logger.WithField("signal", sig.String()).Info("shutdown signal received")
	case <-ctx.Done():
		a.logger.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("server shutdown incomplete")
	}
	a.shutdown(shutdownCtx)

	a.logger.Info("shutdown complete")
	return nil
}

func (a *Application) shutdown(ctx context.Context) {
	if a.chatLimiter != nil {
		a.chatLimiter.Stop()
	}
	if a.completions != nil {
		if err := a.completions.Close(); err != nil {
			a.logger.WithError(err).Warn("completion chain close failed")
		}
	}
	a.closeBackends(ctx)
	if sentrywrap.IsEnabled() {
		sentrywrap.Flush(2 * time.Second)
	}
}

func (a *Application) closeBackends(ctx context.Context) {
	if a.graphClient != nil {
		if err := a.graphClient.Close(ctx); err != nil {
			a.logger.WithError(err).Warn("graph client close failed")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithError(err).Warn("database close failed")
		}
	}
}
