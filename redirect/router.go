package redirect

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"redirect-gateway/redirect/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	Options
	Concurrency ConcurrencyOptions
	// RequestTimeout cancela o ctx da requisição (e do lookup). 0 desliga.
	RequestTimeout time.Duration
	// HealthPath monta <HealthPath>/healthz e <HealthPath>/readyz. Vazio desliga;
	// só GET nessas rotas fica reservado, os demais métodos passam pelo lookup.
	HealthPath string
	AccessLog  bool
}

// NewRouter monta o router chi: middlewares, health opcional e o handler
// de redirect para qualquer outro path/método.
func NewRouter(opts RouterOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.AccessLog {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(opts.Logger.Handler(), slog.LevelInfo),
			NoColor: true,
		}))
	}
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	if opts.Concurrency.Logger == nil {
		opts.Concurrency.Logger = opts.Logger
	}
	r.Use(ConcurrencyMiddleware(opts.Concurrency))

	if p := strings.TrimRight(opts.HealthPath, "/"); p != "" {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		r.Get(p+"/healthz", healthzHandler)
		r.Get(p+"/readyz", readyzHandler(opts.Lookup, opts.Logger))
	}

	h := Handler(opts.Options)
	r.Handle("/*", h)
	// métodos fora da tabela do chi (PURGE, PROPFIND, ...) e métodos não-GET
	// nas rotas de health caem aqui em vez do 405 padrão.
	r.MethodNotAllowed(h.ServeHTTP)

	return r
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyzHandler pinga o store quando ele implementa domain.Pinger.
func readyzHandler(lookup domain.Lookup, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p, ok := lookup.(domain.Pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				logger.Warn("readiness check failed", "error", err)
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
