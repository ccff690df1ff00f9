package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Server serves the web front end over HTTP.
type Server struct {
	logger  *log.Logger
	handler *Handler
}

// NewServer creates a server for the given store.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "web: ", log.LstdFlags)
	}
	return &Server{
		logger:  opts.Logger,
		handler: NewHandler(opts),
	}
}

// Handler returns the HTTP handler, including the root redirects.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/web/", s.handler)
	mux.Handle("/web", http.RedirectHandler("/web/tasks", http.StatusFound))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/web/tasks", http.StatusFound)
	})
	return s.recoverHandler(mux)
}

// Serve listens on addr until the listener fails or an interrupt arrives.
func (s *Server) Serve(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ErrorLog:          s.logger,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()
	s.logger.Printf("serving tasks on http://%s/web/tasks", addr)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("server stopped: %v", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logger.Printf("interrupt received, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Printf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				if writer.wroteHeader {
					return
				}
				http.Error(writer, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rt *responseTracker) WriteHeader(status int) {
	rt.wroteHeader = true
	rt.ResponseWriter.WriteHeader(status)
}

func (rt *responseTracker) Write(p []byte) (int, error) {
	rt.wroteHeader = true
	return rt.ResponseWriter.Write(p)
}
