package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-mapty/internal/shared/geo"
	"backend-mapty/internal/workout"
)

var loggedAt = time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)

type failingSlot struct{}

func (failingSlot) Get(context.Context) (string, error) { return "", errSlot }
func (failingSlot) Set(context.Context, string) error   { return errSlot }
func (failingSlot) Delete(context.Context) error        { return errSlot }

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemorySlot())

	saved := []workout.Workout{
		workout.NewRunning(geo.New(39, -12), 5.2, 24, 178, loggedAt),
		workout.NewCycling(geo.New(39, -12), 34, 2, 500, loggedAt.Add(time.Minute)),
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("expected %d workouts, got %d", len(saved), len(loaded))
	}
	for i, want := range saved {
		got := loaded[i]
		if got.Type != want.Type || got.ID != want.ID || got.Coords != want.Coords {
			t.Fatalf("header mismatch at %d: %+v vs %+v", i, got, want)
		}
		if got.Distance != want.Distance || got.Duration != want.Duration || got.Description != want.Description {
			t.Fatalf("base fields mismatch at %d", i)
		}
		if got.Cadence != want.Cadence || got.Pace != want.Pace || got.ElevationGain != want.ElevationGain || got.Speed != want.Speed {
			t.Fatalf("variant fields mismatch at %d", i)
		}
		if !got.Date.Equal(want.Date) {
			t.Fatalf("date mismatch at %d", i)
		}
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemorySlot())

	first := []workout.Workout{workout.NewRunning(geo.New(1, 1), 1, 1, 1, loggedAt)}
	second := append(first, workout.NewRunning(geo.New(2, 2), 2, 2, 2, loggedAt.Add(time.Second)))
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, _ := store.Load(ctx)
	if len(loaded) != 2 {
		t.Fatalf("expected full snapshot, got %d entries", len(loaded))
	}
}

func TestStoreLoadEmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	store := NewStore(slot)

	loaded, err := store.Load(ctx)
	if err != nil || len(loaded) != 0 {
		t.Fatalf("expected empty log, got %v %v", loaded, err)
	}

	for _, raw := range []string{"not json", "null", `{"type":"running"}`} {
		_ = slot.Set(ctx, raw)
		loaded, err = store.Load(ctx)
		if err != nil || len(loaded) != 0 {
			t.Fatalf("expected empty log for %q, got %v %v", raw, loaded, err)
		}
	}
}

func TestStoreLoadSkipsBadRecords(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	_ = slot.Set(ctx, `[
		{"type":"running","id":"1","date":"2026-10-14T09:30:00Z","coordinates":[39,-12],"distance":5,"duration":25,"description":"Running on October 3","clicks":0,"cadence":170,"pace":5},
		{"type":"rowing","id":"2","coordinates":[0,0],"distance":1,"duration":1}
	]`)

	loaded, err := NewStore(slot).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "1" || loaded[0].Pace != 5 {
		t.Fatalf("unexpected workouts: %+v", loaded)
	}
}

func TestStoreSavesAfterLoadingZeroDistanceRecord(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	_ = slot.Set(ctx, `[
		{"type":"running","id":"1","coordinates":[1,1],"distance":0,"duration":20,"cadence":170},
		{"type":"cycling","id":"2","coordinates":[1,1],"distance":20,"duration":0,"elevationGain":10},
		{"type":"running","id":"3","distance":5,"duration":25,"cadence":170}
	]`)
	store := NewStore(slot)

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected bad records skipped, got %+v", loaded)
	}

	loaded = append(loaded, workout.NewRunning(geo.New(39, -12), 5, 25, 170, loggedAt))
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("save after load: %v", err)
	}
	reloaded, err := store.Load(ctx)
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("expected the new workout persisted, got %d (%v)", len(reloaded), err)
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemorySlot())
	_ = store.Save(ctx, []workout.Workout{workout.NewRunning(geo.New(1, 1), 1, 1, 1, loggedAt)})

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil || len(loaded) != 0 {
		t.Fatalf("expected empty log after clear")
	}
}

func TestStoreSlotErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingSlot{})
	if _, err := store.Load(ctx); !errors.Is(err, errSlot) {
		t.Fatalf("expected load error, got %v", err)
	}
	if err := store.Save(ctx, nil); !errors.Is(err, errSlot) {
		t.Fatalf("expected save error, got %v", err)
	}
	if err := store.Clear(ctx); !errors.Is(err, errSlot) {
		t.Fatalf("expected clear error, got %v", err)
	}
}
