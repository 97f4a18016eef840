package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/observability"
	"github.com/odyssey-erp/inventory-web/internal/shared"
)

// ContentSecurityPolicy limits pages to same-origin scripts, styles and form
// targets. Charts are inline SVG, so no script or style exceptions are needed.
const ContentSecurityPolicy = "default-src 'self'; img-src 'self' data:; style-src 'self'; script-src 'self'; form-action 'self'; frame-ancestors 'none'"

// Defaults used when MiddlewareConfig leaves a limit unset.
const (
	DefaultRequestTimeout    = 30 * time.Second
	DefaultRequestsPerMinute = 300
)

// MiddlewareConfig aggregates dependencies and limits of the middleware stack.
type MiddlewareConfig struct {
	Logger         *slog.Logger
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	ContentSecurityPolicy string
	RequestTimeout        time.Duration
	RequestsPerMinute     int
	ForceTLS              bool
}

// middlewareConfigFrom derives the stack settings from the loaded config.
func middlewareConfigFrom(params RouterParams) MiddlewareConfig {
	mc := MiddlewareConfig{
		Logger:                params.Logger,
		SessionManager:        params.SessionManager,
		CSRFManager:           params.CSRFManager,
		Metrics:               params.Metrics,
		ContentSecurityPolicy: ContentSecurityPolicy,
	}
	if cfg := params.Config; cfg != nil {
		mc.RequestTimeout = cfg.AppRequestTimeout
		mc.RequestsPerMinute = cfg.RateLimitPerMinute
		mc.ForceTLS = cfg.IsProduction()
	}
	return mc
}

// MiddlewareStack installs the console middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		cfg.loadSession,
		middleware.Recoverer,
		middleware.Timeout(cfg.timeout()),
		cfg.secureHeaders(),
		middleware.Compress(5),
		httprate.Limit(cfg.rateLimit(), time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
		cfg.verifyCSRF,
	}
	if cfg.Metrics != nil {
		stack = append(stack, cfg.Metrics.Middleware)
	}
	return stack
}

// sessionWriter saves the session right before the status line is sent, so
// redirects carry the cookie and any queued banner.
type sessionWriter struct {
	http.ResponseWriter
	req       *http.Request
	sess      *shared.Session
	manager   *shared.SessionManager
	logger    *slog.Logger
	committed bool
}

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if err := w.manager.Commit(w.req.Context(), w.ResponseWriter, w.req, w.sess); err != nil {
		w.logger.Error("failed to commit session", slog.Any("error", err))
	}
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.commit()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(data []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(data)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (cfg MiddlewareConfig) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := cfg.SessionManager.Load(r.Context(), r)
		if err != nil {
			cfg.Logger.Error("failed to load session", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		r = r.WithContext(shared.WithSession(r.Context(), sess))
		next.ServeHTTP(&sessionWriter{
			ResponseWriter: w,
			req:            r,
			sess:           sess,
			manager:        cfg.SessionManager,
			logger:         cfg.Logger,
		}, r)
	})
}

// verifyCSRF checks the token on mutating requests and hands it to the
// backend client, which forwards it upstream.
func (cfg MiddlewareConfig) verifyCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		sess := shared.SessionFrom(r.Context())
		if sess == nil {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		token := r.PostFormValue(shared.CSRFFormField)
		if token == "" {
			token = r.Header.Get(shared.CSRFHeader)
		}
		if err := cfg.CSRFManager.VerifyToken(r.Context(), sess, token); err != nil {
			cfg.Logger.Warn("csrf validation failed", slog.String("path", r.URL.Path), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(backend.WithCSRFToken(r.Context(), token)))
	})
}

func (cfg MiddlewareConfig) secureHeaders() func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: cfg.ContentSecurityPolicy,
		SSLRedirect:           cfg.ForceTLS,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				cfg.Logger.Warn("secure headers blocked request", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (cfg MiddlewareConfig) timeout() time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return DefaultRequestTimeout
}

func (cfg MiddlewareConfig) rateLimit() int {
	if cfg.RequestsPerMinute > 0 {
		return cfg.RequestsPerMinute
	}
	return DefaultRequestsPerMinute
}
