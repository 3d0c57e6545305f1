package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-slidedeck/internal/config"
)

// reloadDelay coalesces the bursts of events editors emit on save.
const reloadDelay = 200 * time.Millisecond

// shutdownTimeout bounds in-flight requests when the preview stops.
const shutdownTimeout = 5 * time.Second

func newPreviewCmd(deps *Dependencies, common *commonFlags) *cobra.Command {
	var (
		addr       string
		last, this string
	)
	cmd := &cobra.Command{
		Use:   "preview [checkout]",
		Short: "Serve the deck as HTML and rebuild it when the config changes",
		Args:  checkoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			merge := func(cfg *config.Config) { mergeEventFlags(cmd.Flags(), last, this, cfg) }

			// The first load must succeed; later reloads report errors in
			// the page instead.
			_, path, err := configure(common, args, merge, logger)
			if err != nil {
				return withHint(err, "")
			}
			render := func() (string, error) {
				cfg, _, err := configure(common, args, merge, logger)
				if err != nil {
					return "", err
				}
				return renderPreview(ctx, deps, cfg)
			}
			return runPreview(ctx, addr, path, render, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "address to listen on")
	addEventFlags(cmd.Flags(), &last, &this)
	return cmd
}

// renderPreview assembles the deck and renders it to HTML. No browser is
// launched.
func renderPreview(ctx context.Context, deps *Dependencies, cfg *config.Config) (string, error) {
	fonts, err := deps.Fonts()
	if err != nil {
		return "", err
	}
	p, err := resolveParams(cfg, fonts, deps.Now())
	if err != nil {
		return "", err
	}
	b, err := deps.NewBuilder(p.opts...)
	if err != nil {
		return "", err
	}
	defer func() { _ = b.Close() }()

	deck, err := assemble(ctx, deps, p, b)
	if err != nil {
		return "", err
	}
	return b.RenderHTML(deck, p.style, p.meta.Title)
}

// previewServer holds the latest rendering.
type previewServer struct {
	mu      sync.RWMutex
	html    string
	err     error
	version int
}

func (s *previewServer) set(html string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html, s.err = html, err
	s.version++
}

func (s *previewServer) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", s.serveDeck)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.RLock()
		v := s.version
		s.mu.RUnlock()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "%d\n", v)
	})
	return r
}

func (s *previewServer) serveDeck(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	html, err := s.html, s.err
	s.mu.RUnlock()

	if err != nil {
		http.Error(w, "building deck: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// runPreview serves the deck on addr until ctx is done. When configPath is
// set, the deck is rendered again each time that file changes.
func runPreview(ctx context.Context, addr, configPath string, render func() (string, error), logger *log.Logger) error {
	srv := &previewServer{}
	srv.set(render())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if configPath != "" {
		g.Go(func() error {
			return watchFile(gCtx, configPath, logger, func() {
				html, err := render()
				if err != nil {
					logger.Error("rebuild failed", "err", err)
				} else {
					logger.Info("Rebuilt deck", "config", configPath)
				}
				srv.set(html, err)
			})
		})
	}

	g.Go(func() error {
		logger.Info("Serving preview", "url", "http://"+addr+"/")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("preview shutdown", "err", err)
		}
		return nil
	})

	return g.Wait()
}

// watchFile calls onChange once per burst of writes to path, until ctx is
// done. The parent directory is watched so that editors replacing the file
// are noticed.
func watchFile(ctx context.Context, path string, logger *log.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", target, err)
	}
	logger.Debug("watching config", "path", target)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			fire = nil
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}
