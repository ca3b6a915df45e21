package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abigaelawino/portfolio/internal/metrics"
)

// previewServer serves the output directory plus a Prometheus endpoint.
type previewServer struct {
	srv *http.Server
}

func newPreviewServer(outputDir string, recorder *metrics.PrometheusRecorder, port int) *previewServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	mux.Handle("/", http.FileServer(http.Dir(outputDir)))

	return &previewServer{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (p *previewServer) start() {
	go func() {
		slog.Info("preview server listening", "addr", fmt.Sprintf("http://localhost%s", p.srv.Addr))
		if err := p.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview server failed", "error", err)
		}
	}()
}

func (p *previewServer) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.srv.Shutdown(ctx); err != nil {
		slog.Warn("preview server shutdown error", "error", err)
	}
}
