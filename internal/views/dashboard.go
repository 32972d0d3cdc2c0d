// Package views holds the per-request state of the dashboard and destination screens.
// A view instance belongs to one page render and is discarded afterwards.
package views

import (
	"context"
	"log"
	"sync"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/types"
)

// Dashboard is the relocation search form.
type Dashboard struct {
	api backend.Searcher

	mu       sync.Mutex
	criteria types.SearchCriteria

	inflight sync.WaitGroup
}

// DashboardSnapshot is what the dashboard template renders.
type DashboardSnapshot struct {
	CurrentLocation string
	TargetCities    string
	BudgetMin       int
	BudgetMax       int
	Featured        []types.FeaturedLocation
}

// NewDashboard returns a dashboard with the default form state.
func NewDashboard(api backend.Searcher) *Dashboard {
	return &Dashboard{
		api:      api,
		criteria: types.NewSearchCriteria(),
	}
}

// Criteria returns the current form state.
func (d *Dashboard) Criteria() types.SearchCriteria {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.criteria
}

// SetCurrentLocation updates the current location field.
func (d *Dashboard) SetCurrentLocation(location string) {
	d.apply(func(c types.SearchCriteria) types.SearchCriteria { return c.WithCurrentLocation(location) })
}

// SetTargetCities updates the target cities from the comma separated input.
func (d *Dashboard) SetTargetCities(raw string) {
	d.apply(func(c types.SearchCriteria) types.SearchCriteria { return c.WithTargetCities(raw) })
}

// SetBudgetMin updates the lower budget bound.
func (d *Dashboard) SetBudgetMin(raw string) {
	d.apply(func(c types.SearchCriteria) types.SearchCriteria { return c.WithBudgetMin(raw) })
}

// SetBudgetMax updates the upper budget bound.
func (d *Dashboard) SetBudgetMax(raw string) {
	d.apply(func(c types.SearchCriteria) types.SearchCriteria { return c.WithBudgetMax(raw) })
}

func (d *Dashboard) apply(fn func(types.SearchCriteria) types.SearchCriteria) {
	d.mu.Lock()
	d.criteria = fn(d.criteria)
	d.mu.Unlock()
}

// Submit sends the search in the background and reports whether a request was started.
// Nothing is sent while the current location is empty. The outcome is only logged.
func (d *Dashboard) Submit(ctx context.Context) bool {
	criteria := d.Criteria()
	if err := criteria.Validate(); err != nil {
		return false
	}
	req := criteria.Request()

	// The request outlives the page render that triggered it.
	ctx = context.WithoutCancel(ctx)

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		search, err := d.api.SearchLocations(ctx, req)
		if err != nil {
			log.Printf("Search failed: %v", err)
			return
		}
		log.Printf("Search created: id=%s user=%s location=%q cities=%v", search.ID, search.UserID, search.CurrentLocation, search.TargetCities)
	}()
	return true
}

// Wait blocks until every submitted search has finished.
func (d *Dashboard) Wait() {
	d.inflight.Wait()
}

// Snapshot returns the render state.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	c := d.Criteria()
	return DashboardSnapshot{
		CurrentLocation: c.CurrentLocation,
		TargetCities:    c.TargetCitiesInput(),
		BudgetMin:       c.BudgetRange.Min,
		BudgetMax:       c.BudgetRange.Max,
		Featured:        types.FeaturedLocations(),
	}
}
