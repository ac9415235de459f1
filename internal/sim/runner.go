// Package sim orchestrates a simulation run from the placed charges to display-ready field data.
package sim

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"charge-field/internal/charge"
	"charge-field/internal/settings"
	"charge-field/internal/solver"
	"charge-field/pkg/geometry"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// cmToM converts centimetres to metres.
const cmToM = 1e-2

// ErrBusy is returned when a run is requested while another is in flight.
var ErrBusy = errors.New("a simulation is already running")

// ErrReservationUsed is returned when a Reservation is run a second time.
var ErrReservationUsed = errors.New("run reservation already used")

// SolverError reports a failed solver invocation. The run produces no data.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("field solver failed: %v", e.Err)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}

// Marker is a charge position prepared for plotting.
type Marker struct {
	Position geometry.Point2D // m
	Symbol   string           // "+", "-" or "0"
	Charge   float64
}

// DisplayData is the output of a run, ready for rendering.
// All matrices are NPoints×NPoints with rows indexing y and columns indexing x.
type DisplayData struct {
	Axis      []float64 // sample coordinates, m
	Ex, Ey    *mat.Dense
	Magnitude *mat.Dense
	Markers   []Marker
	Radius    float64           // boundary circle radius
	Settings  settings.Settings // snapshot used for the run
}

// Runner drives the solver. At most one run is in flight at a time.
type Runner struct {
	solver solver.Solver

	mu      sync.Mutex
	running bool
}

// NewRunner creates a runner using the given solver.
func NewRunner(s solver.Solver) *Runner {
	return &Runner{solver: s}
}

// Running reports whether a run is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Run computes the field of charges with settings s, reporting progress to sink (which may be nil).
// The inputs are copied before any work starts. A failed run leaves progress at the last
// completed stage. Returns ErrBusy when another run is in flight.
func (r *Runner) Run(charges []charge.Charge, s settings.Settings, sink ProgressSink) (*DisplayData, error) {
	res, err := r.Reserve()
	if err != nil {
		return nil, err
	}
	return res.Run(charges, s, sink)
}

// Reserve claims the runner for one run without starting it. It returns ErrBusy
// when a run is in flight. The claim ends with the reservation's Run or Release.
func (r *Runner) Reserve() (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil, ErrBusy
	}
	r.running = true
	return &Reservation{runner: r}, nil
}

func (r *Runner) release() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

// Reservation is a claim on a Runner for a single run.
type Reservation struct {
	once   sync.Once
	runner *Runner
}

// Run performs the reserved run and releases the runner.
// A reservation runs at most once; later calls return ErrReservationUsed.
func (rv *Reservation) Run(charges []charge.Charge, s settings.Settings, sink ProgressSink) (*DisplayData, error) {
	used := true
	rv.once.Do(func() { used = false })
	if used {
		return nil, ErrReservationUsed
	}
	defer rv.runner.release()
	return rv.runner.run(charges, s, sink)
}

// Release gives the runner back without running.
func (rv *Reservation) Release() {
	rv.once.Do(rv.runner.release)
}

func (r *Runner) run(charges []charge.Charge, s settings.Settings, sink ProgressSink) (*DisplayData, error) {
	report := func(stage Stage) {
		if sink != nil {
			sink.Report(stage, stage.Fraction())
		}
	}

	snapshot := make([]charge.Charge, len(charges))
	copy(snapshot, charges)
	start := time.Now()
	log.Printf("Simulation: %d charges, %dx%d grid", len(snapshot), s.NPoints, s.NPoints)
	report(StageStart)

	sources := make([]solver.Source, len(snapshot))
	for i, c := range snapshot {
		sources[i] = solver.Source{
			Position: r3.Vec{X: c.X * cmToM, Y: c.Y * cmToM},
			Charge:   c.Q,
		}
	}
	report(StageSources)

	lattice, err := solver.NewSquareLattice(s.Lim*cmToM, s.NPoints)
	if err != nil {
		return nil, fmt.Errorf("building sampling grid: %w", err)
	}
	report(StageLattice)

	field, err := r.solver.Solve(sources, lattice, 0)
	if err != nil {
		log.Printf("Simulation: solver failed: %v", err)
		return nil, &SolverError{Err: err}
	}
	if err := checkShape(field, s.NPoints); err != nil {
		log.Printf("Simulation: solver failed: %v", err)
		return nil, &SolverError{Err: err}
	}
	report(StageSolve)

	ey := field.Ey
	mag := mat.NewDense(s.NPoints, s.NPoints, nil)
	mag.Apply(func(i, j int, ex float64) float64 {
		return math.Hypot(ex, ey.At(i, j))
	}, field.Ex)
	report(StageMagnitude)

	markers := make([]Marker, len(snapshot))
	for i, c := range snapshot {
		markers[i] = Marker{
			Position: geometry.NewPoint2D(c.X*cmToM, c.Y*cmToM),
			Symbol:   c.Symbol(),
			Charge:   c.Q,
		}
	}
	data := &DisplayData{
		Axis:      lattice.Axis(),
		Ex:        field.Ex,
		Ey:        field.Ey,
		Magnitude: mag,
		Markers:   markers,
		Radius:    s.Radius,
		Settings:  s,
	}
	report(StagePackage)

	log.Printf("Simulation: finished in %v", time.Since(start).Round(time.Millisecond))
	report(StageDone)
	return data, nil
}

func checkShape(f *solver.Field, n int) error {
	if f == nil || f.Ex == nil || f.Ey == nil {
		return errors.New("solver returned no field")
	}
	for _, m := range []*mat.Dense{f.Ex, f.Ey} {
		if r, c := m.Dims(); r != n || c != n {
			return fmt.Errorf("solver returned %dx%d field, want %dx%d", r, c, n, n)
		}
	}
	return nil
}
