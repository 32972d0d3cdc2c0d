package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/relocateme/internal/routes"
	"github.com/jonathan/relocateme/internal/scheduler"
	"github.com/jonathan/relocateme/internal/transition"
	"github.com/jonathan/relocateme/internal/views"
)

// Form fields posted by the dashboard.
const (
	fieldCurrentLocation = "current_location"
	fieldTargetCities    = "target_cities"
	fieldBudgetMin       = "budget_min"
	fieldBudgetMax       = "budget_max"
)

type dashboardPage struct {
	Title string
	Form  views.DashboardSnapshot
}

type bridgePage struct {
	Title     string
	State     transition.State
	StreamURL string
}

type destinationPage struct {
	Title string
	View  views.DestinationSnapshot
}

// handleDashboard renders an empty search form
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	d := views.NewDashboard(s.api)
	s.render(w, http.StatusOK, "dashboard.html", dashboardPage{
		Title: "RelocateMe",
		Form:  d.Snapshot(),
	})
}

// handleRelocate applies the posted fields, submits the search, and re-renders the form.
// The outcome of the search is only logged.
func (s *Server) handleRelocate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		verr := &ErrValidation{Field: "form", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	d := views.NewDashboard(s.api)
	if _, ok := r.PostForm[fieldCurrentLocation]; ok {
		d.SetCurrentLocation(r.PostForm.Get(fieldCurrentLocation))
	}
	if _, ok := r.PostForm[fieldTargetCities]; ok {
		d.SetTargetCities(r.PostForm.Get(fieldTargetCities))
	}
	if _, ok := r.PostForm[fieldBudgetMin]; ok {
		d.SetBudgetMin(r.PostForm.Get(fieldBudgetMin))
	}
	if _, ok := r.PostForm[fieldBudgetMax]; ok {
		d.SetBudgetMax(r.PostForm.Get(fieldBudgetMax))
	}

	if d.Submit(r.Context()) {
		log.Printf("[relocate] search submitted request_id=%s", RequestIDFrom(r.Context()))
	}

	s.render(w, http.StatusOK, "dashboard.html", dashboardPage{
		Title: "RelocateMe",
		Form:  d.Snapshot(),
	})
}

// handleBridge renders the transition screen in its initial state; the page script follows the stream.
func (s *Server) handleBridge(w http.ResponseWriter, _ *http.Request) {
	c := transition.New(routes.Channel(func(routes.Command) error { return nil }))
	s.render(w, http.StatusOK, "bridge.html", bridgePage{
		Title:     "RelocateMe",
		State:     c.State(),
		StreamURL: routes.PathBridge + "/stream",
	})
}

type streamEvent struct {
	name string
	data any
}

// handleBridgeStream runs one choreography for the connection and streams its state changes.
// The stream ends after the navigate event, or when the client goes away.
func (s *Server) handleBridgeStream(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	reqID := RequestIDFrom(r.Context())

	events := make(chan streamEvent, 16)
	deliver := func(ev streamEvent) error {
		select {
		case events <- ev:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	nav := routes.Channel(func(cmd routes.Command) error {
		return deliver(streamEvent{name: eventNavigate, data: cmd})
	})
	c := transition.New(nav,
		transition.WithTimings(s.timings),
		transition.WithObserver(func(st transition.State) {
			_ = deliver(streamEvent{name: eventState, data: st})
		}),
	)

	loop := scheduler.NewLoop(ctx)
	defer loop.Close()
	defer c.Teardown()
	defer cancel()

	if err := sse.WriteEvent(eventState, c.State()); err != nil {
		log.Printf("[bridge] write failed request_id=%s: %v", reqID, err)
		return
	}
	c.Start(loop)

	navigated := false
	for {
		select {
		case <-ctx.Done():
			log.Printf("[bridge] client left before navigation request_id=%s", reqID)
			return
		case ev := <-events:
			if err := sse.WriteEvent(ev.name, ev.data); err != nil {
				log.Printf("[bridge] write failed request_id=%s: %v", reqID, err)
				return
			}
			if ev.name == eventNavigate {
				navigated = true
			}
			if st, ok := ev.data.(transition.State); ok && navigated && st.Navigated {
				return
			}
		}
	}
}

// handleDestination loads the destination data, waiting at most the render timeout, and renders
// whatever state the view holds by then.
func (s *Server) handleDestination(w http.ResponseWriter, r *http.Request) {
	v := views.NewDestination(s.api)
	defer v.Dispose()

	done := v.Mount(r.Context())

	timer := time.NewTimer(s.renderTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		log.Printf("[thrive-os] data not ready after %v, rendering defaults request_id=%s", s.renderTimeout, RequestIDFrom(r.Context()))
	case <-r.Context().Done():
		return
	}

	s.render(w, http.StatusOK, "destination.html", destinationPage{
		Title: "ThriveRemoteOS",
		View:  v.Snapshot(),
	})
}
