// Package transition implements the bridge screen: a fixed, non-interactive sequence of messages and
// glitch toggles that ends by navigating to the destination screen.
package transition

import (
	"log"
	"sync"
	"time"

	"github.com/jonathan/relocateme/internal/routes"
	"github.com/jonathan/relocateme/internal/scheduler"
)

// InitialMessage is shown before the first message tick.
const InitialMessage = "INITIALIZING..."

// Messages is the scripted sequence, one per message tick.
var Messages = [...]string{
	"INITIALIZING RELOCATION MATRIX...",
	"SCANNING REMOTE OPPORTUNITIES...",
	"CONNECTING TO THRIVE OS...",
	"WELCOME TO YOUR NEW LIFE.",
}

// Destination is where the sequence navigates when it completes.
const Destination = routes.PathThriveOS

// Timings controls the three timers.
type Timings struct {
	MessageInterval time.Duration
	GlitchInterval  time.Duration
	RedirectAfter   time.Duration
}

// DefaultTimings returns the production schedule.
func DefaultTimings() Timings {
	return Timings{
		MessageInterval: 700 * time.Millisecond,
		GlitchInterval:  200 * time.Millisecond,
		RedirectAfter:   3500 * time.Millisecond,
	}
}

// Phase is the lifecycle position of a Choreography.
type Phase int

// Phases.
const (
	PhaseIdle Phase = iota
	PhaseDisplaying
	PhaseTerminal
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDisplaying:
		return "displaying"
	case PhaseTerminal:
		return "terminal"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the screen.
type State struct {
	Phase        Phase  `json:"-"`
	PhaseName    string `json:"phase"`
	Index        int    `json:"index"`
	Message      string `json:"message"`
	GlitchActive bool   `json:"glitch_active"`
	Navigated    bool   `json:"navigated"`
	NavigatedTo  string `json:"navigated_to,omitempty"`
}

// Observer receives every state change. It is called with the choreography's lock released.
type Observer func(State)

// Option configures a Choreography.
type Option func(*Choreography)

// WithTimings overrides the schedule.
func WithTimings(t Timings) Option {
	return func(c *Choreography) { c.timings = t }
}

// WithObserver registers a state change callback.
func WithObserver(o Observer) Option {
	return func(c *Choreography) { c.observer = o }
}

// Choreography drives one showing of the bridge screen.
type Choreography struct {
	nav      routes.Navigator
	timings  Timings
	observer Observer

	mu    sync.Mutex
	state State
	bag   scheduler.Bag
}

// New returns an idle choreography that will navigate through nav.
func New(nav routes.Navigator, opts ...Option) *Choreography {
	c := &Choreography{
		nav:     nav,
		timings: DefaultTimings(),
		state: State{
			Phase:        PhaseIdle,
			Message:      InitialMessage,
			GlitchActive: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.PhaseName = c.state.Phase.String()
	return c
}

// State returns the current snapshot.
func (c *Choreography) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start schedules the message, glitch, and redirect timers. Calling Start on a choreography
// that is not idle does nothing.
func (c *Choreography) Start(s scheduler.Scheduler) {
	c.mu.Lock()
	if c.state.Phase != PhaseIdle {
		c.mu.Unlock()
		return
	}
	c.state.Phase = PhaseDisplaying
	c.state.PhaseName = c.state.Phase.String()
	c.mu.Unlock()

	c.bag.Add(s.EveryUntil(c.timings.MessageInterval, c.messagesExhausted, c.nextMessage))
	c.bag.Add(s.EveryUntil(c.timings.GlitchInterval, scheduler.Never, c.toggleGlitch))
	c.bag.Add(s.After(c.timings.RedirectAfter, c.redirect))
}

// Teardown cancels every pending timer. No state change or navigation happens afterwards.
func (c *Choreography) Teardown() {
	c.mu.Lock()
	if c.state.Phase != PhaseTerminal {
		c.state.Phase = PhaseDisposed
		c.state.PhaseName = c.state.Phase.String()
	}
	c.mu.Unlock()

	c.bag.Release()
}

func (c *Choreography) messagesExhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Index >= len(Messages)
}

func (c *Choreography) nextMessage() {
	c.update(func(s *State) bool {
		if s.Index >= len(Messages) {
			return false
		}
		s.Message = Messages[s.Index]
		s.Index++
		return true
	})
}

func (c *Choreography) toggleGlitch() {
	c.update(func(s *State) bool {
		s.GlitchActive = !s.GlitchActive
		return true
	})
}

func (c *Choreography) redirect() {
	c.mu.Lock()
	if c.state.Phase != PhaseDisplaying {
		c.mu.Unlock()
		return
	}
	c.state.Phase = PhaseTerminal
	c.state.PhaseName = c.state.Phase.String()
	c.mu.Unlock()

	// The screen is gone once navigation happens.
	c.bag.Release()

	target := Destination
	if err := c.nav.Navigate(target); err != nil {
		log.Printf("[transition] navigation to %s failed, falling back to %s: %v", target, routes.Fallback, err)
		target = routes.Fallback
		if err := c.nav.Navigate(target); err != nil {
			log.Printf("[transition] fallback navigation failed: %v", err)
		}
	}

	c.mu.Lock()
	c.state.Navigated = true
	c.state.NavigatedTo = target
	snapshot := c.state
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(snapshot)
	}
}

// update applies fn while displaying and notifies the observer when fn reports a change.
func (c *Choreography) update(fn func(*State) bool) {
	c.mu.Lock()
	if c.state.Phase != PhaseDisplaying {
		c.mu.Unlock()
		return
	}
	changed := fn(&c.state)
	snapshot := c.state
	c.mu.Unlock()

	if changed && c.observer != nil {
		c.observer(snapshot)
	}
}
