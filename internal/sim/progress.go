package sim

// Stage identifies a step of a simulation run.
type Stage int

const (
	StageStart Stage = iota
	StageSources
	StageLattice
	StageSolve
	StageMagnitude
	StagePackage
	StageDone
)

var stageFractions = [...]float64{0, 0.1, 0.35, 0.65, 0.75, 0.9, 1.0}

var stageNames = [...]string{
	"Starting",
	"Converting charges",
	"Building sampling grid",
	"Solving field",
	"Computing magnitude",
	"Preparing display",
	"Done",
}

// Fraction returns the progress value reported once the stage completes.
func (s Stage) Fraction() float64 {
	if s < StageStart || s > StageDone {
		return 0
	}
	return stageFractions[s]
}

func (s Stage) String() string {
	if s < StageStart || s > StageDone {
		return "Unknown"
	}
	return stageNames[s]
}

// ProgressSink receives progress updates in non-decreasing order.
type ProgressSink interface {
	Report(stage Stage, fraction float64)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(stage Stage, fraction float64)

// Report calls f.
func (f ProgressFunc) Report(stage Stage, fraction float64) {
	f(stage, fraction)
}
