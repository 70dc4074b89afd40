package workout

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRecord = errors.New("invalid workout record")

func (w Workout) Record() Record {
	coords := w.Coords
	r := Record{
		Type:        w.Type,
		ID:          w.ID,
		Date:        w.Date,
		Coords:      &coords,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Description: w.Description,
		Clicks:      w.Clicks,
	}
	switch w.Type {
	case Running:
		cadence, pace := w.Cadence, w.Pace
		r.Cadence, r.Pace = &cadence, &pace
	case Cycling:
		elevation, speed := w.ElevationGain, w.Speed
		r.ElevationGain, r.Speed = &elevation, &speed
	}
	return r
}

// FromRecord rebuilds a typed workout from a stored snapshot. Stored id, date,
// description and derived metric win over recomputation; a missing metric or
// description is recomputed from the base fields. A record without
// coordinates, with a non-positive distance or duration, or whose metric is
// not finite is rejected with ErrInvalidRecord.
func FromRecord(r Record) (Workout, error) {
	t, err := ParseType(string(r.Type))
	if err != nil {
		return Workout{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if r.ID == "" {
		return Workout{}, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if r.Coords == nil {
		return Workout{}, fmt.Errorf("%w: missing coordinates", ErrInvalidRecord)
	}
	if err := r.Coords.Validate(); err != nil {
		return Workout{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if !positive(r.Distance) || !positive(r.Duration) {
		return Workout{}, fmt.Errorf("%w: distance and duration must be positive", ErrInvalidRecord)
	}

	w := Workout{
		Type:        t,
		ID:          r.ID,
		Date:        r.Date,
		Coords:      *r.Coords,
		Distance:    r.Distance,
		Duration:    r.Duration,
		Description: r.Description,
		Clicks:      r.Clicks,
	}
	if w.Description == "" {
		w.Description = Describe(t, r.Date)
	}

	switch t {
	case Running:
		w.Cadence = deref(r.Cadence)
		w.Pace = metricOr(r.Pace, t, r.Distance, r.Duration)
	case Cycling:
		w.ElevationGain = deref(r.ElevationGain)
		w.Speed = metricOr(r.Speed, t, r.Distance, r.Duration)
	}
	// A non-finite value cannot be serialized back into the log.
	if !finite(w.Metric()) || !finite(w.Extra()) {
		return Workout{}, fmt.Errorf("%w: non-finite metric", ErrInvalidRecord)
	}
	return w, nil
}

func metricOr(stored *float64, t Type, distance, duration float64) float64 {
	if stored != nil {
		return *stored
	}
	return ComputeMetric(t, distance, duration)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
