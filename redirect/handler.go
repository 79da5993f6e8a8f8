package redirect

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"redirect-gateway/redirect/application"
	"redirect-gateway/redirect/domain"
)

const notFoundBody = "Not Found"

// KeyFunc deriva a chave de lookup a partir da requisição.
type KeyFunc func(r *http.Request) domain.Key

// TrimLeadingSlash usa o path sem a "/" inicial: "/abc" -> "abc", "/" -> "".
// Só uma barra é removida; "//abc" vira "/abc".
func TrimLeadingSlash(r *http.Request) domain.Key {
	return domain.Key(strings.TrimPrefix(r.URL.Path, "/"))
}

type Options struct {
	Lookup domain.Lookup
	KeyFn  KeyFunc
	Logger *slog.Logger
	// LogRequests loga a URL de cada requisição em nível debug.
	LogRequests bool
}

// Handler responde qualquer método/host: 301 para chave encontrada, 404 caso contrário.
func Handler(opts Options) http.Handler {
	if opts.KeyFn == nil {
		opts.KeyFn = TrimLeadingSlash
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	svc := application.Service{Lookup: opts.Lookup}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if opts.LogRequests {
			opts.Logger.Debug("redirect request", "method", r.Method, "url", r.URL.String())
		}

		key := opts.KeyFn(r)
		res, err := svc.Resolve(r.Context(), key)
		if err != nil {
			// ctx encerrado (timeout do router ou cliente foi embora): quem
			// encerrou responde, aqui não se escreve nada.
			if ctxErr := r.Context().Err(); ctxErr != nil {
				opts.Logger.Warn("lookup aborted", "key", string(key), "error", err, "cause", ctxErr)
				return
			}
			opts.Logger.Error("lookup failed", "key", string(key), "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if !res.Found {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, notFoundBody)
			return
		}

		w.Header().Set("Location", res.Location)
		w.WriteHeader(http.StatusMovedPermanently)
	})
}
