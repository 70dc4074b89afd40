package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"backend-mapty/internal/workout"
)

// Store persists the whole workout log as one JSON array in a Slot. Every
// Save overwrites the previous snapshot.
type Store struct {
	slot Slot
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

func (s *Store) Save(ctx context.Context, workouts []workout.Workout) error {
	records := make([]workout.Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, w.Record())
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.slot.Set(ctx, string(payload))
}

// Load returns the stored log. An empty slot or an undecodable payload is an
// empty log, and single records that cannot be rebuilt are skipped. Only a
// failure to reach the slot is returned as an error.
func (s *Store) Load(ctx context.Context) ([]workout.Workout, error) {
	raw, err := s.slot.Get(ctx)
	if errors.Is(err, ErrEmptySlot) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []workout.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("discarding unreadable workout log: %v", err)
		return nil, nil
	}

	workouts := make([]workout.Workout, 0, len(records))
	for _, r := range records {
		w, err := workout.FromRecord(r)
		if err != nil {
			log.Printf("skipping workout %q: %v", r.ID, err)
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.slot.Delete(ctx)
}
