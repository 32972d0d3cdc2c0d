package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/types"
)

type fakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	searches []types.SearchRequest
	fail     bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search-locations", func(w http.ResponseWriter, r *http.Request) {
		var req types.SearchRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fb.mu.Lock()
		fb.searches = append(fb.searches, req)
		fail := fb.fail
		fb.mu.Unlock()
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":               "search-42",
			"user_id":          req.UserID,
			"current_location": req.CurrentLocation,
			"target_cities":    req.TargetCities,
			"budget_range":     map[string]int{"min": req.BudgetRange.Min, "max": req.BudgetRange.Max},
			"preferences":      map[string]string{"climate": "moderate", "cost_of_living": "medium"},
			"timestamp":        "2025-01-01T12:34:56.123456",
		})
	})
	mux.HandleFunc("GET /api/system/status", func(w http.ResponseWriter, _ *http.Request) {
		if fb.failing(w) {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"version": "6.1", "uptime": "97.5%"})
	})
	mux.HandleFunc("GET /api/jobs/recommendations/{user_id}", func(w http.ResponseWriter, _ *http.Request) {
		if fb.failing(w) {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"recommendations": []map[string]any{
				{
					"title":           "Platform Engineer",
					"company":         "Initech",
					"location":        "Remote",
					"remote_friendly": true,
					"salary_range":    map[string]int{"min": 130000, "max": 160000},
					"required_skills": []string{"Go", "Terraform"},
					"description":     "<p>Own the <b>platform</b>.</p>",
				},
			},
		})
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBackend) failing(w http.ResponseWriter) bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if fb.fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		return true
	}
	return false
}

func (fb *fakeBackend) setFail(fail bool) {
	fb.mu.Lock()
	fb.fail = fail
	fb.mu.Unlock()
}

func (fb *fakeBackend) searchRequests() []types.SearchRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]types.SearchRequest, len(fb.searches))
	copy(out, fb.searches)
	return out
}

func (fb *fakeBackend) client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.NewClient(fb.URL+"/api", nil)
	require.NoError(t, err)
	return c
}
