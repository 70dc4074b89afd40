package workout

import (
	"encoding/json"
	"testing"

	"backend-mapty/internal/shared/geo"

	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	originals := []Workout{
		NewRunning(geo.New(39, -12), 5.2, 24, 178, createdAt),
		NewCycling(geo.New(39, -12), 34, 2, 500, createdAt),
	}
	for _, w := range originals {
		got, err := FromRecord(w.Record())
		require.NoError(t, err)
		require.Equal(t, w, got)
	}
}

func TestRecordJSONLayout(t *testing.T) {
	raw, err := json.Marshal(NewRunning(geo.New(39, -12), 5, 25, 170, createdAt).Record())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"type", "id", "date", "coordinates", "distance", "duration", "description", "clicks", "cadence", "pace"} {
		require.Contains(t, fields, key)
	}
	require.NotContains(t, fields, "speed")
	require.NotContains(t, fields, "elevationGain")
	require.Equal(t, []any{39.0, -12.0}, fields["coordinates"])
}

func TestFromRecordKeepsStoredSnapshot(t *testing.T) {
	pace := 9.99
	cadence := 150.0
	w, err := FromRecord(Record{
		Type:        Running,
		ID:          "1234567890",
		Date:        createdAt,
		Coords:      coordsAt(1, 1),
		Distance:    2,
		Duration:    10,
		Description: "Running on October 3",
		Cadence:     &cadence,
		Pace:        &pace,
	})
	require.NoError(t, err)
	require.Equal(t, 9.99, w.Pace)
	require.Equal(t, 150.0, w.Cadence)
}

func TestFromRecordRecomputesMissingFields(t *testing.T) {
	w, err := FromRecord(Record{
		Type:     Cycling,
		ID:       "1",
		Date:     createdAt,
		Coords:   coordsAt(1, 1),
		Distance: 30,
		Duration: 60,
	})
	require.NoError(t, err)
	require.Equal(t, 30.0/60/60, w.Speed)
	require.Equal(t, "Cycling on October 3", w.Description)
	require.Zero(t, w.ElevationGain)
}

func coordsAt(lat, lng float64) *geo.Coordinates {
	c := geo.New(lat, lng)
	return &c
}

func TestFromRecordRejectsBadRecords(t *testing.T) {
	pace := 5.0
	bad := []Record{
		{Type: "hiking", ID: "1", Coords: coordsAt(0, 0), Distance: 1, Duration: 1},
		{Type: Running, ID: "", Coords: coordsAt(0, 0), Distance: 1, Duration: 1},
		{Type: Running, ID: "1", Coords: coordsAt(120, 0), Distance: 1, Duration: 1},
		{Type: Running, ID: "1", Coords: nil, Distance: 1, Duration: 1},
		{Type: Running, ID: "1", Coords: coordsAt(1, 1), Distance: 0, Duration: 20},
		{Type: Cycling, ID: "1", Coords: coordsAt(1, 1), Distance: 20, Duration: 0},
		{Type: Running, ID: "1", Coords: coordsAt(1, 1), Distance: -3, Duration: 20, Pace: &pace},
	}
	for _, r := range bad {
		_, err := FromRecord(r)
		require.ErrorIs(t, err, ErrInvalidRecord)
	}
}

func TestFromRecordMissingCoordinatesKey(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"type":"running","id":"1","distance":5,"duration":25,"cadence":170}`), &r))

	_, err := FromRecord(r)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestFromRecordZeroDistanceNeverYieldsInfiniteMetric(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"type":"running","id":"1","coordinates":[1,1],"distance":0,"duration":20,"cadence":170}`), &r))

	_, err := FromRecord(r)
	require.ErrorIs(t, err, ErrInvalidRecord)
}
