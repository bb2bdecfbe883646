// Package web exposes the portfolio aggregation HTTP API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vadiminshakov/folio/internal/domain"
	"github.com/vadiminshakov/folio/internal/services/balance"
	"go.uber.org/zap"
)

// PortfolioBuilder assembles a consolidated snapshot for selected sources.
type PortfolioBuilder interface {
	Build(ctx context.Context, sources []balance.Source, convertTo []string) (*domain.Portfolio, error)
}

// Server serves /portfolio and /healthz. The portfolio endpoint is only
// registered when at least one balance source and a builder are available;
// without them the route is absent entirely.
type Server struct {
	addr    string
	logger  *zap.Logger
	sources []balance.Source
	byID    map[string]balance.Source
	builder PortfolioBuilder
}

// NewServer creates a server over the given source registry.
func NewServer(addr string, logger *zap.Logger, sources []balance.Source, builder PortfolioBuilder) *Server {
	byID := make(map[string]balance.Source, len(sources))
	for _, src := range sources {
		byID[src.ID()] = src
	}
	return &Server{
		addr:    addr,
		logger:  logger,
		sources: sources,
		byID:    byID,
		builder: builder,
	}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	if len(s.sources) > 0 && s.builder != nil {
		mux.HandleFunc("/portfolio", s.handlePortfolio)
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger := s.logger.With(zap.String("request_id", uuid.NewString()))
	query := r.URL.Query()

	selected := s.sources
	if requested := queryList(query, "exchanges"); len(requested) > 0 {
		selected = make([]balance.Source, 0, len(requested))
		for _, id := range requested {
			// unknown source ids are dropped, not rejected
			if src, ok := s.byID[id]; ok {
				selected = append(selected, src)
			}
		}
		if len(selected) == 0 {
			writeJSON(w, http.StatusOK, toResponse(domain.EmptyPortfolio()))
			return
		}
	}

	convertTo := queryList(query, "convertTo")

	pf, err := s.builder.Build(r.Context(), selected, convertTo)
	if err != nil {
		logger.Error("failed to build portfolio", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "market data unavailable"})
		return
	}

	logger.Info("portfolio built",
		zap.Int("sources", len(selected)),
		zap.Int("currencies", len(pf.Balances)),
		zap.Strings("convert_to", convertTo))
	writeJSON(w, http.StatusOK, toResponse(pf))
}

// queryList reads a parameter that may be repeated and/or comma-separated.
func queryList(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}
