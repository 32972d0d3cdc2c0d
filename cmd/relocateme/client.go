package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/config"
	"github.com/jonathan/relocateme/internal/types"
)

// loadConfig resolves file, environment, and the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func newBackendClient(cfg config.Config) (*backend.Client, error) {
	opts := backend.DefaultOptions()
	opts.Timeout = cfg.RequestTimeout
	opts.UserAgent = cfg.UserAgent

	client, err := backend.NewClient(cfg.APIBase(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// recorder keeps the last results passing through an API so commands can print them.
type recorder struct {
	backend.API

	mu     sync.Mutex
	search *types.LocationSearch
	status *types.SystemStatus
	jobs   []types.JobRecommendation
}

func (r *recorder) SearchLocations(ctx context.Context, req types.SearchRequest) (*types.LocationSearch, error) {
	search, err := r.API.SearchLocations(ctx, req)
	if err == nil {
		r.mu.Lock()
		r.search = search
		r.mu.Unlock()
	}
	return search, err
}

func (r *recorder) SystemStatus(ctx context.Context) (*types.SystemStatus, error) {
	status, err := r.API.SystemStatus(ctx)
	if err == nil {
		r.mu.Lock()
		r.status = status
		r.mu.Unlock()
	}
	return status, err
}

func (r *recorder) JobRecommendations(ctx context.Context, userID string) ([]types.JobRecommendation, error) {
	jobs, err := r.API.JobRecommendations(ctx, userID)
	if err == nil {
		r.mu.Lock()
		r.jobs = jobs
		r.mu.Unlock()
	}
	return jobs, err
}
