package app

import (
	"context"
	"errors"
	"html/template"
	"log"
	"sync"
	"time"

	"backend-mapty/internal/bridge"
	"backend-mapty/internal/form"
	"backend-mapty/internal/observability"
	"backend-mapty/internal/render"
	"backend-mapty/internal/shared/geo"
	"backend-mapty/internal/workout"
)

type State string

const (
	StateAwaitingGeolocation State = "awaiting-geolocation"
	StateMapReady            State = "map-ready-idle"
	StateFormOpen            State = "form-open"
	StateNoMap               State = "no-map"
)

const (
	MapContainer         = "map"
	DefaultZoom          = 13
	PositionErrorMessage = "Could not get your position!"
	panDuration          = 1.0
)

// ErrNoLocation is returned by Submit when no map click opened the form.
var ErrNoLocation = errors.New("no map location selected")

type Locator interface {
	RequestPosition(onSuccess func(geo.Coordinates), onFailure func(error))
}

type Map interface {
	OnClick(handler func(geo.Coordinates))
	AddMarker(coords geo.Coordinates) bridge.MarkerRef
	BindPopup(marker bridge.MarkerRef, popup render.Popup)
	SetView(coords geo.Coordinates, zoom int, opts bridge.ViewOptions)
}

type MapFactory func(container string, center geo.Coordinates, zoom int) Map

// View is the page outside the map: alerts, the form and the list.
type View interface {
	Alert(message string)
	InsertRow(id string, html template.HTML)
	ShowForm()
	HideForm()
	ToggleFieldset(visible form.Field)
	Reload()
	DropMap()
}

type Store interface {
	Save(ctx context.Context, workouts []workout.Workout) error
	Load(ctx context.Context) ([]workout.Workout, error)
	Clear(ctx context.Context) error
}

type Deps struct {
	Store   Store
	Locator Locator
	NewMap  MapFactory
	View    View
	Zoom    int
	Now     func() time.Time
}

// Controller owns the workout log and mediates between geolocation, the map,
// the form, the list and storage. All operations are serialized; callbacks
// into collaborators never run back into the controller while it holds its
// lock.
type Controller struct {
	store   Store
	locator Locator
	newMap  MapFactory
	view    View
	zoom    int
	now     func() time.Time

	mu         sync.Mutex
	generation int
	state      State
	workouts   []workout.Workout
	form       *form.Form
	list       *render.List
	mapw       Map
	clicked    geo.Coordinates
}

func NewController(deps Deps) *Controller {
	c := &Controller{
		store:   deps.Store,
		locator: deps.Locator,
		newMap:  deps.NewMap,
		view:    deps.View,
		zoom:    deps.Zoom,
		now:     deps.Now,
		state:   StateAwaitingGeolocation,
		form:    form.New(),
		list:    render.NewList(),
	}
	if c.zoom <= 0 {
		c.zoom = DefaultZoom
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Boot starts the controller as a fresh page load does: the stored log is
// loaded and rendered as list rows, then the position is requested. Markers
// follow once the map exists.
func (c *Controller) Boot(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateAwaitingGeolocation
	c.form = form.New()
	c.list = render.NewList()
	c.mapw = nil
	c.view.DropMap()
	c.workouts = c.load(ctx)
	for _, w := range c.workouts {
		c.renderRow(w, false)
	}
	observability.SetWorkoutCount(len(c.workouts))
	c.mu.Unlock()

	c.locator.RequestPosition(
		func(pos geo.Coordinates) { c.positionFound(gen, pos) },
		func(err error) { c.positionFailed(gen, err) },
	)
}

func (c *Controller) load(ctx context.Context) []workout.Workout {
	workouts, err := c.store.Load(ctx)
	if err != nil {
		log.Printf("load workouts: %v", err)
		observability.RecordPersistenceError("load")
		return nil
	}
	return workouts
}

func (c *Controller) positionFound(gen int, pos geo.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state != StateAwaitingGeolocation {
		return
	}

	m := c.newMap(MapContainer, pos, c.zoom)
	c.mapw = m
	for _, w := range c.workouts {
		c.renderMarker(w)
	}
	m.OnClick(func(coords geo.Coordinates) { c.mapClicked(gen, coords) })
	c.state = StateMapReady
}

func (c *Controller) positionFailed(gen int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state != StateAwaitingGeolocation {
		return
	}
	log.Printf("geolocation failed: %v", err)
	c.state = StateNoMap
	c.view.Alert(PositionErrorMessage)
}

func (c *Controller) mapClicked(gen int, coords geo.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.openForm(coords)
}

// MapClick opens the form at coords. It reports false when there is no map
// or the coordinates are out of range.
func (c *Controller) MapClick(coords geo.Coordinates) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openForm(coords)
}

func (c *Controller) openForm(coords geo.Coordinates) bool {
	if c.mapw == nil || coords.Validate() != nil {
		return false
	}
	c.clicked = coords
	c.form.Show()
	c.state = StateFormOpen
	c.view.ShowForm()
	return true
}

// SelectType switches the form's type-specific row.
func (c *Controller) SelectType(raw string) (form.Field, error) {
	t, err := workout.ParseType(raw)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	field := c.form.Select(t)
	c.view.ToggleFieldset(field)
	return field, nil
}

// Submit validates the form values and logs a workout at the last clicked
// location. Invalid input raises the alert and leaves the log untouched.
func (c *Controller) Submit(ctx context.Context, values form.Values) (workout.Workout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFormOpen {
		return workout.Workout{}, ErrNoLocation
	}

	w, err := c.form.Submit(values, c.clicked, c.nextInstant())
	if err != nil {
		observability.RecordSubmissionRejected()
		c.view.Alert(form.InvalidInputMessage)
		return workout.Workout{}, err
	}

	c.workouts = append(c.workouts, w)
	c.renderMarker(w)
	c.renderRow(w, true)
	c.form.Hide()
	c.view.HideForm()
	c.state = StateMapReady

	if err := c.store.Save(ctx, c.workouts); err != nil {
		log.Printf("save workouts: %v", err)
		observability.RecordPersistenceError("save")
	}
	observability.RecordWorkoutCreated(string(w.Type))
	observability.SetWorkoutCount(len(c.workouts))
	return w, nil
}

// nextInstant returns the creation time for a new workout, nudged forward a
// millisecond at a time until its derived id is free.
func (c *Controller) nextInstant() time.Time {
	at := c.now()
	for c.idTaken(workout.IDAt(at)) {
		at = at.Add(time.Millisecond)
	}
	return at
}

func (c *Controller) idTaken(id string) bool {
	for _, w := range c.workouts {
		if w.ID == id {
			return true
		}
	}
	return false
}

// SelectRow re-centers the map on the workout with the given id. Unknown ids
// and a missing map are ignored.
func (c *Controller) SelectRow(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mapw == nil {
		return false
	}
	for _, w := range c.workouts {
		if w.ID == id {
			c.mapw.SetView(w.Coords, c.zoom, bridge.ViewOptions{Animate: true, PanDuration: panDuration})
			return true
		}
	}
	return false
}

// Reset wipes the stored log and restarts from a fresh load. The page is told
// to reload even when clearing the slot fails.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	err := c.store.Clear(ctx)
	c.mu.Unlock()
	if err != nil {
		log.Printf("clear workouts: %v", err)
		observability.RecordPersistenceError("clear")
	}

	c.Boot(ctx)
	c.view.Reload()
	return err
}

func (c *Controller) renderMarker(w workout.Workout) {
	ref := c.mapw.AddMarker(w.Coords)
	c.mapw.BindPopup(ref, render.PopupFor(w))
}

func (c *Controller) renderRow(w workout.Workout, live bool) {
	row, err := render.Row(w)
	if err != nil {
		log.Printf("render workout %s: %v", w.ID, err)
		return
	}
	c.list.InsertAfterForm(w.ID, row)
	if live {
		c.view.InsertRow(w.ID, row)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Workouts returns the log in creation order.
func (c *Controller) Workouts() []workout.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]workout.Workout, len(c.workouts))
	copy(out, c.workouts)
	return out
}

// Rows returns the rendered list in display order, newest first.
func (c *Controller) Rows() []render.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Rows()
}

// PageData describes the page as it should be rendered right now. The caller
// fills in the stream topic.
func (c *Controller) PageData() render.PageData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.PageData{
		Container:    MapContainer,
		SelectedType: string(c.form.Selected()),
		VisibleField: string(c.form.VisibleField()),
		FormVisible:  c.form.Visible(),
		Rows:         c.list.Rows(),
	}
}
