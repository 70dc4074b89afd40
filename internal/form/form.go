package form

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"backend-mapty/internal/shared/geo"
	"backend-mapty/internal/workout"
)

// InvalidInputMessage is the alert shown for a rejected submission.
const InvalidInputMessage = "Input Invalid!"

var ErrInvalidInput = errors.New("invalid workout input")

type Field string

const (
	FieldCadence   Field = "cadence"
	FieldElevation Field = "elevation"
)

// Values are the raw form inputs as typed by the user.
type Values struct {
	Type      string `json:"type" form:"type"`
	Distance  string `json:"distance" form:"distance"`
	Duration  string `json:"duration" form:"duration"`
	Cadence   string `json:"cadence" form:"cadence"`
	Elevation string `json:"elevation" form:"elevation"`
}

// Form tracks the workout form: which type is selected, which of the cadence
// and elevation rows is visible, and whether the form is shown.
type Form struct {
	selected workout.Type
	visible  bool
}

func New() *Form {
	return &Form{selected: workout.Running}
}

func (f *Form) Selected() workout.Type { return f.selected }

func (f *Form) Visible() bool { return f.visible }

// VisibleField is the type-specific row currently shown.
func (f *Form) VisibleField() Field {
	return fieldFor(f.selected)
}

// Select switches the visible fieldset to match the type selector.
func (f *Form) Select(t workout.Type) Field {
	if t == workout.Running || t == workout.Cycling {
		f.selected = t
	}
	return f.VisibleField()
}

func (f *Form) Show() { f.visible = true }

// Hide closes the form. Entered values are cleared by the caller's view; the
// selected type is kept, as a browser form keeps its select value.
func (f *Form) Hide() { f.visible = false }

// Submit parses and validates v and builds the workout at coords. Numbers
// follow unary-plus semantics: blank is 0, garbage is NaN. All three numbers
// must be finite and distance and duration must be positive; the sign of
// cadence or elevation is not checked.
func (f *Form) Submit(v Values, coords geo.Coordinates, at time.Time) (workout.Workout, error) {
	t, err := workout.ParseType(strings.TrimSpace(v.Type))
	if err != nil {
		return workout.Workout{}, ErrInvalidInput
	}

	distance := ParseNumber(v.Distance)
	duration := ParseNumber(v.Duration)
	extra := ParseNumber(v.Cadence)
	if t == workout.Cycling {
		extra = ParseNumber(v.Elevation)
	}

	if !allFinite(distance, duration, extra) || !allPositive(distance, duration) {
		return workout.Workout{}, ErrInvalidInput
	}
	return workout.New(t, coords, distance, duration, extra, at)
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)

var basePrefixes = map[string]int{"0x": 16, "0o": 8, "0b": 2}

// ParseNumber converts a raw input string the way a browser's unary plus
// does: surrounding space is ignored, blank is 0, decimal and Infinity
// literals may be signed, 0x/0o/0b integers may not, and anything else is NaN.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if len(s) > 2 {
		if base, ok := basePrefixes[strings.ToLower(s[:2])]; ok {
			digits := s[2:]
			if digits[0] == '+' || digits[0] == '-' {
				return math.NaN()
			}
			n, ok := new(big.Int).SetString(digits, base)
			if !ok {
				return math.NaN()
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n
		}
		return math.NaN()
	}
	return n
}

func fieldFor(t workout.Type) Field {
	if t == workout.Cycling {
		return FieldElevation
	}
	return FieldCadence
}

func allFinite(inputs ...float64) bool {
	for _, in := range inputs {
		if math.IsNaN(in) || math.IsInf(in, 0) {
			return false
		}
	}
	return true
}

func allPositive(inputs ...float64) bool {
	for _, in := range inputs {
		if in <= 0 {
			return false
		}
	}
	return true
}
