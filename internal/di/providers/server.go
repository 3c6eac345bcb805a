package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/arohamusic/encore-server/internal/api"
	"github.com/arohamusic/encore-server/internal/config"
	"github.com/arohamusic/encore-server/internal/logger"
	"github.com/arohamusic/encore-server/internal/lookup"
	"github.com/arohamusic/encore-server/internal/service"
	"github.com/arohamusic/encore-server/internal/sse"
	"github.com/arohamusic/encore-server/internal/store"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	apiServer *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.apiServer.Close()
	return err
}

// initialStreamEvents builds the events every new SSE client receives on
// connect: the current queue snapshot and the live flag, so the page
// renders real state before the first broadcast arrives.
func initialStreamEvents(db *store.Store) sse.InitialEventsFunc {
	return func(ctx context.Context) ([]sse.Event, error) {
		requests, err := db.ListRequests(ctx, store.RequestFilter{})
		if err != nil {
			return nil, err
		}

		live, err := db.GetLiveStatus(ctx)
		if err != nil {
			return nil, err
		}

		return []sse.Event{
			sse.NewRequestsSnapshotEvent(requests),
			sse.NewLiveStatusEvent(*live),
		}, nil
	}
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:     do.MustInvoke[*service.AuthService](i),
		Requests: do.MustInvoke[*service.RequestService](i),
		Live:     do.MustInvoke[*service.LiveService](i),
		Lookup:   do.MustInvoke[*lookup.Client](i),
	}

	sseHandler := sse.NewHandler(sseHandle.Manager, initialStreamEvents(storeHandle.Store), log.Logger)

	handler := api.NewServer(cfg, storeHandle.Store, services, sseHandler, sseHandle.Manager, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, apiServer: handler}, nil
}
