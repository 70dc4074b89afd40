package workout

import (
	"time"

	"backend-mapty/internal/shared/geo"
)

type Type string

const (
	Running Type = "running"
	Cycling Type = "cycling"
)

// Workout is a single logged session. The header fields are shared; Cadence
// and Pace are only meaningful for Running, ElevationGain and Speed only for
// Cycling.
type Workout struct {
	Type        Type
	ID          string
	Date        time.Time
	Coords      geo.Coordinates
	Distance    float64 // km
	Duration    float64 // min
	Description string
	Clicks      int

	Cadence float64 // steps/min
	Pace    float64 // min/km

	ElevationGain float64 // m
	Speed         float64
}

// Record is the plain-data snapshot written to storage.
type Record struct {
	Type          Type             `json:"type"`
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	Coords        *geo.Coordinates `json:"coordinates"`
	Distance      float64          `json:"distance"`
	Duration      float64          `json:"duration"`
	Description   string           `json:"description"`
	Clicks        int              `json:"clicks"`
	Cadence       *float64         `json:"cadence,omitempty"`
	Pace          *float64         `json:"pace,omitempty"`
	ElevationGain *float64         `json:"elevationGain,omitempty"`
	Speed         *float64         `json:"speed,omitempty"`
}
