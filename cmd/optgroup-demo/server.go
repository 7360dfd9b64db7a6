package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	formgen "github.com/goliatone/go-formgen-optgroup"
	"github.com/goliatone/go-formgen-optgroup/components/optgroups"
	"github.com/goliatone/go-formgen-optgroup/internal/bootstrap"
	"github.com/goliatone/go-formgen-optgroup/pkg/i18n"
	"github.com/goliatone/go-formgen-optgroup/pkg/orchestrator"
	"github.com/goliatone/go-formgen-optgroup/pkg/render"
	"github.com/goliatone/go-formgen-optgroup/pkg/widgets"
)

const (
	formPath   = "/form"
	assetsPath = "/assets/"
)

type server struct {
	assets   *bootstrap.Assets
	orch     *orchestrator.Orchestrator
	metrics  *metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	theme    *theme.RendererConfig
}

func newServer(cfg Config, assets *bootstrap.Assets, logger *slog.Logger) *server {
	registry := prometheus.NewRegistry()
	return &server{
		assets: assets,
		orch: orchestrator.New(
			orchestrator.WithVocabularies(assets.Vocabularies),
			orchestrator.WithTranslator(assets.Catalog),
			orchestrator.WithWidgetRegistry(assets.Widgets),
		),
		metrics:  newMetrics(registry),
		gatherer: registry,
		logger:   logger,
		theme:    demoTheme(cfg),
	}
}

func demoTheme(cfg Config) *theme.RendererConfig {
	vars := make(map[string]string, len(cfg.ThemeTokens))
	for key, value := range cfg.ThemeTokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}
	return &theme.RendererConfig{
		Theme:   cfg.Theme,
		Tokens:  cfg.ThemeTokens,
		CSSVars: vars,
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return path.Join(assetsPath, key)
		},
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, formPath, http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Handle(assetsPath+"*", http.StripPrefix(assetsPath, http.FileServerFS(formgen.EmbeddedAssets())))
	r.Get(formPath, s.showForm)
	r.Post(formPath, s.submitForm)

	component := optgroups.New(
		optgroups.WithVocabularies(s.assets.Vocabularies),
		optgroups.WithTranslator(s.assets.Catalog, s.assets.Catalog.RequestLocale),
	)
	if _, err := component.RegisterRoutes(r, "/"); err != nil {
		s.logger.Error("register optgroups component", "error", err)
	}
	return r
}

func (s *server) showForm(w http.ResponseWriter, r *http.Request) {
	locale := s.locale(w, r)
	s.render(w, r, http.StatusOK, render.RenderOptions{Locale: locale})
}

func (s *server) submitForm(w http.ResponseWriter, r *http.Request) {
	locale := s.locale(w, r)
	req, err := widgets.NewRequest(r,
		widgets.WithLocale(locale),
		widgets.WithTranslator(s.assets.Catalog),
		widgets.WithVocabularies(s.assets.Vocabularies),
		widgets.WithRegistry(s.assets.Widgets),
	)
	if err != nil {
		s.metrics.submissions.WithLabelValues("malformed").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	values, fieldErrors, err := widgets.Collect(r.Context(), s.assets.Form, req)
	if err != nil {
		s.metrics.submissions.WithLabelValues("rejected").Inc()
		s.logger.Warn("collect submission", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, outcome := http.StatusOK, "accepted"
	if len(fieldErrors) > 0 {
		status, outcome = http.StatusUnprocessableEntity, "invalid"
	}
	s.metrics.submissions.WithLabelValues(outcome).Inc()
	s.logger.Info("form submitted",
		"outcome", outcome,
		"locale", locale,
		"fields", len(values),
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		writeJSON(w, status, map[string]any{"values": values, "errors": fieldErrors})
		return
	}

	if len(fieldErrors) > 0 {
		s.render(w, r, status, render.RenderOptions{
			Locale:    locale,
			Submitted: r.PostForm,
			Errors:    fieldErrors,
		})
		return
	}
	s.render(w, r, status, render.RenderOptions{
		Locale:  locale,
		Values:  values,
		Display: true,
	})
}

func (s *server) render(w http.ResponseWriter, r *http.Request, status int, options render.RenderOptions) {
	options.Theme = s.theme
	html, err := s.orch.Generate(r.Context(), orchestrator.Request{
		Form:          &s.assets.Form,
		RenderOptions: options,
	})
	if err != nil {
		s.logger.Error("render form", "error", err, "request_id", middleware.GetReqID(r.Context()))
		code := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			code = http.StatusServiceUnavailable
		}
		http.Error(w, http.StatusText(code), code)
		return
	}

	mode := "input"
	if options.Display {
		mode = "display"
	}
	s.metrics.renders.WithLabelValues(mode, options.Locale).Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(page(html))
}

// locale negotiates the request locale and remembers an explicit choice.
func (s *server) locale(w http.ResponseWriter, r *http.Request) string {
	locale := s.assets.Catalog.RequestLocale(r)
	if r.URL.Query().Get(i18n.LangParam) != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.LangCookieName,
			Value:    locale,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return locale
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func page(body []byte) []byte {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>optgroup demo</title></head>\n<body>\n")
	b.Write(body)
	b.WriteString("\n</body>\n</html>\n")
	return []byte(b.String())
}
