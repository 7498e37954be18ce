package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio"
	"github.com/dmitrymomot/folio/internal/handlers"
	"github.com/dmitrymomot/folio/internal/views"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/analyzer"
	"github.com/dmitrymomot/folio/pkg/config"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/markdown"
	"github.com/dmitrymomot/folio/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the portfolio site. The content index and profile data are
warmed in the background every content.refresh_interval; SIGINT and SIGTERM
trigger a graceful shutdown.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}

	log := newLogger(cfg, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = logger.Flush(ctx)
	}()

	ctx := cmd.Context()
	s, err := openStack(ctx, cfg, log)
	if err != nil {
		log.Error("content stack", slog.String("error", err.Error()))
		return err
	}

	catalogue, err := views.NewCatalogue(i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
		log.Warn("missing translation",
			slog.String("lang", lang),
			slog.String("namespace", namespace),
			slog.String("key", key),
		)
	}))
	if err != nil {
		s.Close()
		return err
	}

	site := handlers.Site{Profile: newProfile(ctx, cfg, s)}

	mdOpts := []markdown.Option{markdown.WithLogger(log)}
	if cfg.Diagrams.RendererURL != "" {
		mdOpts = append(mdOpts, markdown.WithDiagramRenderer(markdown.NewKroki(cfg.Diagrams.RendererURL,
			markdown.WithKrokiClient(&http.Client{Timeout: cfg.Diagrams.Timeout}),
		)))
	}
	md := markdown.New(mdOpts...)

	scorer := analyzer.New(cfg.Analyzer.BaseURL,
		analyzer.WithHTTPClient(&http.Client{Timeout: cfg.Analyzer.Timeout}),
	)

	apiMiddlewares := []folio.Middleware{middlewares.CORS(corsOptions(cfg)...)}
	if cfg.Server.RequestTimeout > 0 {
		apiMiddlewares = append(apiMiddlewares, middlewares.Timeout(cfg.Server.RequestTimeout))
	}

	checks := []folio.HealthOption{
		folio.WithReadinessCheck("content", s.index.Healthcheck()),
	}
	runOpts := []folio.RunOption{
		folio.Logger(log),
		folio.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		folio.WithContext(ctx),
	}
	if cfg.Content.RefreshInterval > 0 {
		warmer := content.NewWarmer(s.index, cfg.Content.RefreshInterval,
			content.WithWarmerLogger(log),
			content.WithProfile(s.profile, catalogue.Languages()...),
		)
		runOpts = append(runOpts,
			folio.StartupHook(warmer.StartFunc()),
			folio.ShutdownHook(warmer.Shutdown()),
		)
	}
	if s.rdb != nil {
		checks = append(checks, folio.WithReadinessCheck("redis", redis.Healthcheck(s.rdb)))
		runOpts = append(runOpts, folio.ShutdownHook(redis.Shutdown(s.rdb)))
	}

	app := folio.New(
		folio.WithCustomLogger(log),
		folio.WithI18n(catalogue, views.Namespace),
		folio.WithCookieOptions(
			folio.WithCookieSecure(cfg.Server.SecureCookie),
			folio.WithCookieSameSite(http.SameSiteLaxMode),
		),
		folio.WithMiddleware(
			middlewares.Recover(),
			middlewares.RequestID(),
			middlewares.Language(catalogue, middlewares.WithLanguageNamespace(views.Namespace)),
		),
		folio.WithStaticFiles("/static/", views.Static(), "."),
		folio.WithHealthChecks(checks...),
		folio.WithErrorHandler(handlers.ErrorHandler(site)),
		folio.WithNotFoundHandler(handlers.NotFound),
		folio.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		folio.WithHandlers(
			handlers.NewHome(site, s.profile, s.catalog),
			handlers.NewContent(content.KindArticles, site, s.catalog, s.docs, md),
			handlers.NewContent(content.KindShowcases, site, s.catalog, s.docs, md),
			handlers.NewAnalyze(scorer, handlers.WithAnalyzeTimeout(cfg.Server.AnalyzeTimeout)),
			handlers.NewLanguage(catalogue),
			handlers.NewSchedule(site),
			handlers.NewAPI(s.catalog, apiMiddlewares...),
		),
	)

	log.Info("starting folio",
		slog.String("addr", cfg.Server.Addr),
		slog.String("source", cfg.Content.Source),
		slog.String("index", cfg.Content.Index),
		slog.String("strategy", s.strategy.Name()),
		slog.Bool("redis", s.rdb != nil),
	)
	return app.Run(cfg.Server.Addr, runOpts...)
}

func newProfile(ctx context.Context, cfg *config.Config, s *stack) views.Profile {
	image := s.imageURL(ctx)
	if image == "" {
		image = config.PlaceholderImage
	}
	return views.Profile{
		Name:        cfg.Profile.Name,
		Roles:       cfg.Profile.Roles,
		Tagline:     cfg.Profile.Tagline,
		ImageURL:    image,
		Placeholder: config.PlaceholderImage,
		ScheduleURL: cfg.Profile.ScheduleURL,
		Email:       cfg.Profile.Email,
		GitHub:      cfg.Profile.GitHub,
		LinkedIn:    cfg.Profile.LinkedIn,
	}
}

func corsOptions(cfg *config.Config) []middlewares.CORSOption {
	if len(cfg.Server.CORSOrigins) == 0 {
		return nil
	}
	return []middlewares.CORSOption{middlewares.WithAllowOrigins(cfg.Server.CORSOrigins...)}
}
