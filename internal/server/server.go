// Package server exposes the calculators, the weather lookup and the contact form as a
// small JSON API, and publishes the owner's vCard and iCalendar exports.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/contact"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/i18n"
	"github.com/tartampluch/go-folio/internal/metrics"
	"github.com/tartampluch/go-folio/internal/upstream"
	"github.com/tartampluch/go-folio/internal/weather"
)

// WeatherService is the part of weather.Client the API needs.
type WeatherService interface {
	Lookup(ctx context.Context, city string) (weather.Report, error)
}

// Deps are the collaborators of the API. Nil fields get defaults, except Weather and
// Mailer whose endpoints then answer 503.
type Deps struct {
	Settings config.Settings
	Clock    engine.Clock
	Catalog  *i18n.Catalog
	Metrics  *metrics.Collector
	Weather  WeatherService
	Mailer   contact.Mailer
}

// Server serves the API.
type Server struct {
	settings config.Settings
	clock    engine.Clock
	catalog  *i18n.Catalog
	metrics  *metrics.Collector
	weather  WeatherService
	mailer   contact.Mailer

	// owner is read on every vCard request and replaced only when the profile
	// changes, so readers never take a lock.
	owner atomic.Pointer[document]
}

// New wires a server. The owner's vCard is rendered once from d.Settings.Owner.
func New(d Deps) *Server {
	s := &Server{
		settings: d.Settings,
		clock:    d.Clock,
		catalog:  d.Catalog,
		metrics:  d.Metrics,
		weather:  d.Weather,
		mailer:   d.Mailer,
	}
	if s.clock == nil {
		s.clock = engine.RealClock{}
	}
	if s.catalog == nil {
		s.catalog = i18n.Load()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector("")
	}
	if s.settings.Port == "" {
		s.settings.Port = config.DefaultPort
	}
	if s.settings.BindAddr == "" {
		s.settings.BindAddr = config.DefaultBindAddr
	}

	if err := s.UpdateOwner(d.Settings.Owner); err != nil && !errors.Is(err, contact.ErrNoOwner) {
		slog.Error(config.ErrVCardEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
	return s
}

// FromSettings wires the production collaborators: the weather service, the mail relay
// and one metrics collector shared with their upstream clients.
func FromSettings(settings config.Settings) *Server {
	m := metrics.NewCollector(config.MetricsNamespace)

	w := weather.NewClient(settings.GeocodingURL, settings.ForecastURL, upstream.WithRecorder(m))
	if settings.Language != "" {
		w.Language = settings.Language
	}

	return New(Deps{
		Settings: settings,
		Metrics:  m,
		Weather:  w,
		Mailer:   contact.NewRelayMailer(settings.Relay, upstream.WithRecorder(m)),
	})
}

// UpdateOwner re-renders the published vCard. An empty profile unpublishes it.
func (s *Server) UpdateOwner(profile config.Profile) error {
	data, err := contact.OwnerCard(profile)
	if err != nil {
		s.owner.Store(nil)
		return err
	}
	doc := newDocument(data, config.MimeVCard, s.clock.Now())
	s.owner.Store(doc)

	slog.Debug(config.MsgDocCached,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, doc.etag,
	)
	return nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.GetHead)
	r.Use(s.observe)

	origins := s.settings.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{config.HeaderAccept, config.HeaderAcceptLanguage, config.HeaderContentType, chimiddleware.RequestIDHeader},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader, config.HeaderETag},
		MaxAge:         config.CORSMaxAge,
	}))

	r.Get(config.RouteHealth, s.handleHealth)
	r.Method(http.MethodGet, config.RouteMetrics, s.metrics.Handler())
	r.Get(config.RouteVCard, s.handleVCard)

	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Get(config.RouteUnits, s.handleUnits)
		r.Get(config.RouteConvert, s.handleConvert)
		r.Get(config.RouteAge, s.handleAge)
		r.Get(config.RouteAgeICS, s.handleAgeCalendar)
		r.Get(config.RouteDifference, s.handleDifference)
		r.Get(config.RouteDifferenceICS, s.handleDifferenceCalendar)
		r.Post(config.RouteCalculator, s.handleCalculator)
		r.Post(config.RouteEvaluate, s.handleEvaluate)
		r.Get(config.RouteWeather, s.handleWeather)
		r.Post(config.RouteContact, s.handleContact)
	})

	return r
}

// Start listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.settings.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         s.settings.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.settings.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// translator picks the response language: ?lang= first, then Accept-Language.
func (s *Server) translator(r *http.Request) *i18n.Translator {
	if lang := r.URL.Query().Get(config.QueryLang); lang != "" {
		return s.catalog.For(lang)
	}
	return s.catalog.For(s.catalog.Match(r.Header.Get(config.HeaderAcceptLanguage)))
}
