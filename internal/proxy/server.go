package proxy

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"yt-relay/internal/config"
	"yt-relay/internal/rapidapi"
)

type Server struct {
	addr    string
	cfg     config.Config
	handler *Handler
	logger  *log.Logger
}

func NewServer(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	upstream := rapidapi.NewClient(cfg.APIBaseURL, cfg.APIHost, cfg.APIKey, cfg.UpstreamTimeout())
	return &Server{
		addr:    cfg.Addr(),
		cfg:     cfg,
		handler: NewHandler(cfg.APIKey, upstream, logger),
		logger:  logger,
	}
}

// Routes returns the full middleware-wrapped router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Static Files (Web UI)
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	api := withRateLimit(newLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst), s.handler)
	mux.Handle("/api/download", api)
	mux.Handle("/api/youtube", api)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, &Error{
				Kind:    KindMethodNotAllowed,
				Status:  http.StatusMethodNotAllowed,
				Message: "Method not allowed",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return withRequestID(withCORS(withRecover(s.logger, mux)))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.APIKey == "" {
		s.logger.Printf("warning: %s is not set, every download request will fail", config.EnvAPIKey)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("Proxy starting at http://localhost%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
