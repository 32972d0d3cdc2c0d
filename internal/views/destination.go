package views

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/types"
)

// Destination is the post-relocation overview screen.
type Destination struct {
	api    backend.Fetcher
	userID string

	once sync.Once
	done chan struct{}

	mu       sync.Mutex
	disposed bool
	loaded   bool
	status   *types.SystemStatus
	jobs     []types.JobRecommendation
}

// JobCard is one rendered job recommendation.
type JobCard struct {
	Title          string
	Company        string
	Location       string
	LocationClass  string
	Salary         string
	Skills         []string
	Description    string
	ApplicationURL string
}

// DestinationSnapshot is what the destination template renders.
type DestinationSnapshot struct {
	Version  string
	Uptime   string
	Loaded   bool
	Jobs     []JobCard
	Insights []types.Insight
}

// NewDestination returns an unmounted destination view for the default user.
func NewDestination(api backend.Fetcher) *Destination {
	return &Destination{
		api:    api,
		userID: types.DefaultUserID,
		done:   make(chan struct{}),
	}
}

// Mount starts loading the system status and job recommendations. Only the first call starts a load.
// The returned channel closes when the load has finished, successfully or not.
func (v *Destination) Mount(ctx context.Context) <-chan struct{} {
	v.once.Do(func() {
		go v.load(context.WithoutCancel(ctx))
	})
	return v.done
}

func (v *Destination) load(ctx context.Context) {
	defer close(v.done)

	var (
		status *types.SystemStatus
		jobs   []types.JobRecommendation
	)

	// A failed read does not cancel the other one; both run to completion.
	var g errgroup.Group
	g.Go(func() error {
		s, err := v.api.SystemStatus(ctx)
		if err != nil {
			return err
		}
		status = s
		return nil
	})
	g.Go(func() error {
		j, err := v.api.JobRecommendations(ctx, v.userID)
		if err != nil {
			return err
		}
		jobs = j
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("Failed to fetch system data: %v", err)
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.disposed {
		return
	}
	v.status = status
	v.jobs = jobs
	v.loaded = true
}

// Dispose detaches the view. A load finishing afterwards is discarded.
func (v *Destination) Dispose() {
	v.mu.Lock()
	v.disposed = true
	v.mu.Unlock()
}

// Snapshot returns the render state. Before a successful load it carries the default version and uptime
// and no jobs.
func (v *Destination) Snapshot() DestinationSnapshot {
	v.mu.Lock()
	status := v.status
	jobs := v.jobs
	loaded := v.loaded
	v.mu.Unlock()

	snap := DestinationSnapshot{
		Version:  status.VersionOrDefault(),
		Uptime:   status.UptimeOrDefault(),
		Loaded:   loaded,
		Jobs:     make([]JobCard, 0, len(jobs)),
		Insights: types.LocationInsights(),
	}
	for _, j := range jobs {
		snap.Jobs = append(snap.Jobs, newJobCard(j))
	}
	return snap
}

func newJobCard(j types.JobRecommendation) JobCard {
	return JobCard{
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		LocationClass:  j.LocationClass(),
		Salary:         j.SalaryRange.Display(),
		Skills:         j.SkillTags(),
		Description:    backend.PlainText(j.Description),
		ApplicationURL: j.ApplicationURL,
	}
}
