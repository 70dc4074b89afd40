package workout

import (
	"fmt"
	"strconv"
	"time"

	"backend-mapty/internal/shared/geo"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const idDigits = 10

var titleCaser = cases.Title(language.English)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Running, Cycling:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown workout type %q", s)
}

// Icon is the glyph shown next to a workout in popups and list rows.
func (t Type) Icon() string {
	if t == Running {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// ComputeMetric returns pace (min/km) for running and speed for cycling.
// Cycling speed is distance / duration / 60, kept as the log has always
// stored it.
func ComputeMetric(t Type, distance, duration float64) float64 {
	if t == Running {
		return duration / distance
	}
	return distance / duration / 60
}

// IDAt derives a workout ID from the last ten digits of the Unix millisecond
// timestamp.
func IDAt(at time.Time) string {
	ms := strconv.FormatInt(at.UnixMilli(), 10)
	if len(ms) <= idDigits {
		return ms
	}
	return ms[len(ms)-idDigits:]
}

// Describe builds "Running on October 3". The trailing number is the day of
// the week (Sunday is 0), not the day of the month.
func Describe(t Type, at time.Time) string {
	return fmt.Sprintf("%s on %s %d", titleCaser.String(string(t)), at.Month(), int(at.Weekday()))
}

func NewRunning(coords geo.Coordinates, distance, duration, cadence float64, at time.Time) Workout {
	w := newWorkout(Running, coords, distance, duration, at)
	w.Cadence = cadence
	w.Pace = ComputeMetric(Running, distance, duration)
	return w
}

func NewCycling(coords geo.Coordinates, distance, duration, elevationGain float64, at time.Time) Workout {
	w := newWorkout(Cycling, coords, distance, duration, at)
	w.ElevationGain = elevationGain
	w.Speed = ComputeMetric(Cycling, distance, duration)
	return w
}

// New builds the variant named by t. extra is cadence for running and
// elevation gain for cycling.
func New(t Type, coords geo.Coordinates, distance, duration, extra float64, at time.Time) (Workout, error) {
	switch t {
	case Running:
		return NewRunning(coords, distance, duration, extra, at), nil
	case Cycling:
		return NewCycling(coords, distance, duration, extra, at), nil
	}
	return Workout{}, fmt.Errorf("unknown workout type %q", t)
}

func newWorkout(t Type, coords geo.Coordinates, distance, duration float64, at time.Time) Workout {
	return Workout{
		Type:        t,
		ID:          IDAt(at),
		Date:        at,
		Coords:      coords,
		Distance:    distance,
		Duration:    duration,
		Description: Describe(t, at),
	}
}

// Metric is the derived value for the variant: pace or speed.
func (w Workout) Metric() float64 {
	if w.Type == Running {
		return w.Pace
	}
	return w.Speed
}

// Extra is the variant-specific input: cadence or elevation gain.
func (w Workout) Extra() float64 {
	if w.Type == Running {
		return w.Cadence
	}
	return w.ElevationGain
}
