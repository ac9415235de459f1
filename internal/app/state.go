// Package app provides application state, events, and theming.
package app

import (
	"log"
	"sync"

	"charge-field/internal/charge"
	"charge-field/internal/settings"
	"charge-field/internal/sim"
	"charge-field/internal/solver"
)

// State holds the session: the placed charges, the settings, and the simulation runner.
// Charges and settings are mutated only from the UI goroutine.
type State struct {
	mu sync.RWMutex

	Charges  *charge.Set
	Settings *settings.Store
	Runner   *sim.Runner

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventChargesChanged EventType = iota // data: []charge.Charge
	EventSettingsChanged                 // data: settings.Settings
	EventBoundaryChanged                 // data: float64 (new radius)
	EventRunStarted                      // data: nil
	EventRunProgress                     // data: Progress
	EventRunComplete                     // data: *sim.DisplayData
	EventRunFailed                       // data: error
)

// Progress is the payload of EventRunProgress.
type Progress struct {
	Stage    sim.Stage
	Fraction float64
}

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with the given default settings and solver.
func NewState(defaults settings.Settings, s solver.Solver) *State {
	return &State{
		Charges:   charge.NewSet(),
		Settings:  settings.NewStore(defaults),
		Runner:    sim.NewRunner(s),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// AddChargeText parses the add-charge form fields and adds the charge.
// Parse errors are reported before bounds and duplicate errors.
func (s *State) AddChargeText(xText, yText, qText string) error {
	c, err := charge.ParseCharge(xText, yText, qText)
	if err != nil {
		return err
	}
	return s.AddCharge(c)
}

// AddCharge adds a charge and notifies listeners on success.
func (s *State) AddCharge(c charge.Charge) error {
	if err := s.Charges.AddCharge(c); err != nil {
		return err
	}
	log.Printf("Added charge %v", c)
	s.Emit(EventChargesChanged, s.Charges.List())
	return nil
}

// ClearCharges removes every charge and notifies listeners.
func (s *State) ClearCharges() {
	s.Charges.Clear()
	s.Emit(EventChargesChanged, s.Charges.List())
}

// UpdateSettings applies a settings form. When the boundary radius changes,
// the placed charges are cleared.
func (s *State) UpdateSettings(c settings.Candidate) (settings.Change, error) {
	change, err := s.Settings.Update(c)
	if err != nil {
		return change, err
	}
	current := s.Settings.Get()
	s.Emit(EventSettingsChanged, current)

	if change.BoundaryChanged {
		log.Printf("Boundary radius changed to %g, clearing charges", current.Radius)
		s.Emit(EventBoundaryChanged, current.Radius)
		s.ClearCharges()
	}
	return change, nil
}

// StartRun snapshots the charges and settings and runs the simulation on a
// worker goroutine. done, if not nil, is called from that goroutine.
// Returns sim.ErrBusy without starting when a run is already in flight.
func (s *State) StartRun(done func(*sim.DisplayData, error)) error {
	res, err := s.Runner.Reserve()
	if err != nil {
		return err
	}
	charges, current := s.Charges.List(), s.Settings.Get()
	go func() {
		data, err := s.run(res, charges, current)
		if done != nil {
			done(data, err)
		}
	}()
	return nil
}

func (s *State) run(res *sim.Reservation, charges []charge.Charge, current settings.Settings) (*sim.DisplayData, error) {
	s.Emit(EventRunStarted, nil)
	progress := sim.ProgressFunc(func(stage sim.Stage, fraction float64) {
		s.Emit(EventRunProgress, Progress{Stage: stage, Fraction: fraction})
	})

	data, err := res.Run(charges, current, progress)
	if err != nil {
		s.Emit(EventRunFailed, err)
		return nil, err
	}

	s.Emit(EventRunComplete, data)
	return data, nil
}
