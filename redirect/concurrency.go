package redirect

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"redirect-gateway/redirect/application"
	"redirect-gateway/redirect/domain"
	"redirect-gateway/redirect/infra"
)

type ConcurrencyOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	Logger         *slog.Logger
}

// ConcurrencyMiddleware descarta requisições (503 por padrão) quando Max já
// estão em voo. Max <= 0 desliga o limite.
func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	pool := infra.NewChanPool(opts.Max)
	svc := application.ConcurrencyService{
		Pool:           pool,
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, err := svc.Acquire(r.Context())
			if err != nil {
				if errors.Is(err, domain.ErrNoSlot) {
					opts.Logger.Warn("request shed",
						"method", r.Method,
						"path", r.URL.Path,
						"inFlight", pool.InFlight(),
						"max", pool.Cap(),
						"acquireTimeout", opts.AcquireTimeout,
					)
				} else {
					opts.Logger.Debug("request ended while waiting for a slot", "path", r.URL.Path, "error", err)
				}
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
