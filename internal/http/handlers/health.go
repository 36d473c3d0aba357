package handlers

import (
	"net/http"
	"sync"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/clients"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/http/dto"
)

const serviceName = "storefront"

type HealthHandler struct {
	Probes []clients.HealthProbe
}

func (h *HealthHandler) Storefront(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: serviceName})
}

func (h *HealthHandler) Upstreams(w http.ResponseWriter, r *http.Request) {
	results := make([]clients.HealthResult, len(h.Probes))

	var wg sync.WaitGroup
	wg.Add(len(h.Probes))
	for i := range h.Probes {
		go func() {
			defer wg.Done()
			results[i] = clients.CheckHealth(r.Context(), h.Probes[i])
		}()
	}
	wg.Wait()

	status := "ok"
	for _, res := range results {
		if !res.OK {
			status = "degraded"
			break
		}
	}

	writeJSON(w, http.StatusOK, dto.UpstreamsHealthResponse{
		Status:   status,
		Service:  serviceName,
		Upstream: results,
	})
}
