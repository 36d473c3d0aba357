package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := NewClient("backend", srv.URL, &http.Client{Timeout: 5 * time.Second})

	res := CheckHealth(context.Background(), HealthProbe{Name: "backend", Client: c, Path: "/ok"})
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, res.Error)

	res = CheckHealth(context.Background(), HealthProbe{Name: "backend", Client: c, Path: "/down"})
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	res = CheckHealth(context.Background(), HealthProbe{Name: "backend", Client: c, Path: "/slow", Timeout: 50 * time.Millisecond})
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
	assert.Less(t, res.LatencyMS, int64(900))
}
