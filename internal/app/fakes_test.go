package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"backend-mapty/internal/bridge"
	"backend-mapty/internal/form"
	"backend-mapty/internal/render"
	"backend-mapty/internal/shared/geo"
	"backend-mapty/internal/storage"
	"backend-mapty/internal/workout"
)

var (
	clock   = time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)
	errDown = errors.New("slot down")
)

type fakeLocator struct {
	requests  int
	onSuccess func(geo.Coordinates)
	onFailure func(error)
}

func (l *fakeLocator) RequestPosition(onSuccess func(geo.Coordinates), onFailure func(error)) {
	l.requests++
	l.onSuccess, l.onFailure = onSuccess, onFailure
}

type viewCall struct {
	coords geo.Coordinates
	zoom   int
	opts   bridge.ViewOptions
}

type fakeMap struct {
	container string
	center    geo.Coordinates
	zoom      int
	markers   []geo.Coordinates
	popups    []render.Popup
	views     []viewCall
	onClick   func(geo.Coordinates)
}

func (m *fakeMap) OnClick(handler func(geo.Coordinates)) { m.onClick = handler }

func (m *fakeMap) AddMarker(coords geo.Coordinates) bridge.MarkerRef {
	m.markers = append(m.markers, coords)
	return bridge.MarkerRef(fmt.Sprintf("marker-%d", len(m.markers)))
}

func (m *fakeMap) BindPopup(_ bridge.MarkerRef, popup render.Popup) {
	m.popups = append(m.popups, popup)
}

func (m *fakeMap) SetView(coords geo.Coordinates, zoom int, opts bridge.ViewOptions) {
	m.views = append(m.views, viewCall{coords: coords, zoom: zoom, opts: opts})
}

type fakeView struct {
	alerts  []string
	rows    []string
	shown   int
	hidden  int
	toggles []form.Field
	reloads int
	drops   int
}

func (v *fakeView) Alert(message string)                 { v.alerts = append(v.alerts, message) }
func (v *fakeView) InsertRow(id string, _ template.HTML) { v.rows = append(v.rows, id) }
func (v *fakeView) ShowForm()                            { v.shown++ }
func (v *fakeView) HideForm()                            { v.hidden++ }
func (v *fakeView) ToggleFieldset(visible form.Field)    { v.toggles = append(v.toggles, visible) }
func (v *fakeView) Reload()                              { v.reloads++ }
func (v *fakeView) DropMap()                             { v.drops++ }

type failingStore struct{}

func (failingStore) Save(context.Context, []workout.Workout) error   { return errDown }
func (failingStore) Load(context.Context) ([]workout.Workout, error) { return nil, errDown }
func (failingStore) Clear(context.Context) error                     { return errDown }

type harness struct {
	ctrl    *Controller
	store   *storage.Store
	locator *fakeLocator
	view    *fakeView
	maps    []*fakeMap
}

func newHarness(store Store) *harness {
	h := &harness{locator: &fakeLocator{}, view: &fakeView{}}
	if s, ok := store.(*storage.Store); ok {
		h.store = s
	}
	h.ctrl = NewController(Deps{
		Store:   store,
		Locator: h.locator,
		View:    h.view,
		Now:     func() time.Time { return clock },
		NewMap: func(container string, center geo.Coordinates, zoom int) Map {
			m := &fakeMap{container: container, center: center, zoom: zoom}
			h.maps = append(h.maps, m)
			return m
		},
	})
	return h
}

func newMemoryHarness() *harness {
	return newHarness(storage.NewStore(storage.NewMemorySlot()))
}

func (h *harness) currentMap() *fakeMap {
	if len(h.maps) == 0 {
		return nil
	}
	return h.maps[len(h.maps)-1]
}

// ready boots the controller and grants the position request.
func (h *harness) ready(pos geo.Coordinates) *fakeMap {
	h.ctrl.Boot(context.Background())
	h.locator.onSuccess(pos)
	return h.currentMap()
}
