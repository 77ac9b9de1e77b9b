package debugserver

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datascope/internal"
)

// Start runs the operational side server with pprof and a health probe on its
// own port. It never serves analysis traffic and failures here must not take
// down the API, so it logs and returns instead of propagating errors.
func Start(port string, log *internal.Logger) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/{name}", func(w http.ResponseWriter, req *http.Request) {
			pprof.Handler(chi.URLParam(req, "name")).ServeHTTP(w, req)
		})
	})

	go func() {
		addr := ":" + port
		log.Info("debug server listening on %s", addr)
		if err := http.ListenAndServe(addr, r); err != nil {
			log.Warn("debug server stopped: %v", err)
		}
	}()
}
