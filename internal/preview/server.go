package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/boil-labs/boil/internal/output"
)

// DefaultPort is the port used when none is given.
const DefaultPort = 3000

const (
	indexFile       = "index.html"
	shutdownTimeout = 5 * time.Second
)

// Handler serves the files of root. Paths that match no file fall back to
// root's index.html so client-side routing works.
func Handler(root fs.FS) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	serve := serveStatic(root)
	r.Get("/*", serve)
	r.Head("/*", serve)
	return r
}

func serveStatic(root fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "."
		}

		if info, err := fs.Stat(root, name); err == nil {
			if !info.IsDir() {
				serveFile(w, r, root, name)
				return
			}
			if idx := path.Join(name, indexFile); fileExists(root, idx) {
				serveFile(w, r, root, idx)
				return
			}
		}

		if fileExists(root, indexFile) {
			serveFile(w, r, root, indexFile)
			return
		}
		http.NotFound(w, r)
	}
}

// serveFile writes name without http.FileServer's index.html redirect.
func serveFile(w http.ResponseWriter, r *http.Request, root fs.FS, name string) {
	f, err := root.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		rs = bytes.NewReader(data)
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, name, info.ModTime(), rs)
}

func fileExists(root fs.FS, name string) bool {
	info, err := fs.Stat(root, name)
	return err == nil && !info.IsDir()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		output.Debug("preview request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

// Server serves a directory over HTTP until its context is cancelled.
type Server struct {
	Dir  string
	Port int
}

// Serve listens on the server's port and blocks until ctx is done, then shuts
// down gracefully. ready, if non-nil, is called with the bound address once
// the listener is open.
func (s *Server) Serve(ctx context.Context, ready func(net.Addr)) error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.Dir)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.Port, err)
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           Handler(os.DirFS(s.Dir)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving %s: %w", s.Dir, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down preview server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", s.Dir, err)
	}
	return nil
}
