// Package web wires the fiber application: templates, static files, the access
// log, the admin session guard and every page and action handler.
package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/config"
	accesslog "github.com/melitabakes/bakery/internal/logger/adapter/fiber"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/handler/cake"
	"github.com/melitabakes/bakery/internal/web/handler/contact"
	"github.com/melitabakes/bakery/internal/web/handler/dashboard"
	"github.com/melitabakes/bakery/internal/web/handler/home"
	"github.com/melitabakes/bakery/internal/web/handler/hour"
	"github.com/melitabakes/bakery/internal/web/handler/login"
	"github.com/melitabakes/bakery/internal/web/handler/logo"
	"github.com/melitabakes/bakery/internal/web/handler/logout"
	"github.com/melitabakes/bakery/internal/web/handler/testimonial"
	"github.com/melitabakes/bakery/internal/web/middleware/auth"
	"github.com/melitabakes/bakery/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 during shutdown.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	// StaticPath serves the embedded css.
	StaticPath = "/static"

	defaultUploadsPath = "/uploads"
	pruneInterval      = time.Minute
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	stopPrune    context.CancelFunc
}

// Option changes how New builds the service.
type Option func(o *options)

type options struct {
	views        fiber.Views
	fastShutDown bool
}

// WithViews replaces the embedded template engine.
func WithViews(v fiber.Views) Option {
	return func(o *options) {
		o.views = v
	}
}

// WithFastShutDown skips the graceful 503 period on shutdown.
func WithFastShutDown() Option {
	return func(o *options) {
		o.fastShutDown = true
	}
}

// Alive reports whether /checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the http server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown fails the check alive endpoint, waits Webserver.ShutDownTime and stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	s.stopPrune()

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// prune drops controllers of sessions idle longer than the session expiry.
func (s *Service) prune(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := session.Controllers.Prune(s.cfg.Webserver.Session.ExpiryTime); n > 0 {
				log.Debug().Int("count", n).Msg("pruned idle admin controllers")
			}
		}
	}
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	return templateEngine
}

// uploadsPath returns the url path local blobs are served on, taken from Storage.PublicURL.
func uploadsPath(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return defaultUploadsPath
	}

	return strings.TrimSuffix(u.Path, "/")
}

// New creates the web service. st backs the public page and the admin
// controllers, blobs is only consulted to serve local uploads.
func New(cfg *config.Config, st admin.Store, blobs blob.Store, opts ...Option) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("store cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	views := o.views
	if views == nil {
		views = newTemplateEngine(cfg)
	}

	if session.Store == nil {
		session.Init(nil, cfg.Webserver.Session.ExpiryTime)
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          views,
			BodyLimit:      int(cfg.Storage.MaxUploadSize) + 1<<20, //nolint:mnd // form fields next to the file
		},
	)

	app.Use(recover.New())

	uploads := uploadsPath(cfg.Storage.PublicURL)

	app.Use(accesslog.New(accesslog.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), StaticPath) || strings.HasPrefix(c.Path(), uploads)
		},
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	if local, ok := blobs.(*blob.Local); ok {
		app.Static(uploads, local.Root())
	}

	ctx, cancel := context.WithCancel(context.Background())

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: o.fastShutDown,
		stopPrune:    cancel,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// public page
	if err := home.Handler.Init(app, cfg, st); err != nil {
		log.Fatal().Err(err).Msg("failed to init home handler")
	}

	// everything below /admin needs a session, except login and logout
	app.Use(handler.AdminPath, auth.New(cfg, st))

	if err := login.Handler.Init(app, cfg, st); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	dashboard.Handler.Init(app, cfg)
	cake.Handler.Init(app, cfg)
	hour.Handler.Init(app, cfg)
	testimonial.Handler.Init(app, cfg)
	contact.Handler.Init(app, cfg)
	logo.Handler.Init(app, cfg)

	go service.prune(ctx)

	return service
}
