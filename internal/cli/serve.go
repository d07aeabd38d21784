package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/swanview/pkg/errors"
	"github.com/matzehuels/swanview/pkg/model"
	"github.com/matzehuels/swanview/pkg/render/nodelink"
	"github.com/matzehuels/swanview/pkg/swan"
	"github.com/matzehuels/swanview/pkg/swanjson"
)

// newServeCmd exposes a loaded project over HTTP.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <project>",
		Short: "Serve a project's model over HTTP",
		Long: `Serve loads the project once and answers model queries over a JSON
API: module listings, name resolution and diagram connectivity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, proj, err := openModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(m),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Infof("Serving %s on %s", proj.Name, addr)

			select {
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8420", "listen address")
	return cmd
}

// newRouter builds the HTTP API over a fully loaded model.
func newRouter(m *model.Model) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/modules", handleModules(m))
	r.Get("/modules/{path}", handleModule(m))
	r.Get("/resolve", handleResolve(m))
	r.Get("/graph/{path}/{operator}", handleGraph(m))
	return r
}

// moduleInfo is the listing entry for one module.
type moduleInfo struct {
	Path      string   `json:"path"`
	Interface bool     `json:"interface"`
	Operators []string `json:"operators,omitempty"`
}

func handleModules(m *model.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var infos []moduleInfo
		for _, mod := range m.LoadedModules() {
			info := moduleInfo{Path: mod.FullPath(), Interface: mod.IsInterface()}
			for _, op := range mod.Operators() {
				info.Operators = append(info.Operators, op.Signature())
			}
			infos = append(infos, info)
		}
		writeJSON(w, http.StatusOK, infos)
	}
}

func handleModule(m *model.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod, err := m.ModuleByPath(chi.URLParam(r, "path"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, swanjson.Document(mod))
	}
}

func handleResolve(m *model.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		name := r.URL.Query().Get("name")
		if from == "" || name == "" {
			writeError(w, errors.New(errors.ErrCodeMalformedName, "from and name are required"))
			return
		}
		decl, err := m.Resolve(from, name)
		if err != nil {
			writeError(w, err)
			return
		}
		path, err := swan.FullPath(decl)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"name": name, "declaration": path})
	}
}

func handleGraph(m *model.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := chi.URLParam(r, "path") + "::" + chi.URLParam(r, "operator")
		op, diagrams, err := findDiagrams(m, ref)
		if err != nil {
			writeError(w, err)
			return
		}
		if len(diagrams) == 0 {
			writeError(w, errors.New(errors.ErrCodeNameNotFound,
				"operator %s has no diagram", op.ID))
			return
		}
		dot, err := nodelink.ToDOT(diagrams[0], nodelink.Options{Detailed: true})
		if err != nil {
			writeError(w, err)
			return
		}
		if r.URL.Query().Get("format") == "svg" {
			svg, err := nodelink.RenderSVG(r.Context(), dot)
			if err != nil {
				writeError(w, err)
				return
			}
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Write(svg)
			return
		}
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(dot))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: soft misses
// become 404, malformed input 400, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNameNotFound, errors.ErrCodeModuleNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeMalformedName, errors.ErrCodeStructuralMisuse:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
