package bridge

import (
	"fmt"
	"html/template"
	"log"
	"sync"

	"backend-mapty/internal/form"
	"backend-mapty/internal/render"
	"backend-mapty/internal/shared/geo"
)

// Publisher delivers encoded commands to the page. *stream.Hub satisfies it.
type Publisher interface {
	Publish(topic string, v any) error
}

// Browser drives the page that hosts the map widget and the DOM. Calls are
// turned into commands published on one stream topic.
type Browser struct {
	pub   Publisher
	topic string
	tiles Tiles

	mu      sync.Mutex
	current *Map
}

func NewBrowser(pub Publisher, topic string, tiles Tiles) *Browser {
	return &Browser{pub: pub, topic: topic, tiles: tiles}
}

func (b *Browser) send(cmd any) {
	if err := b.pub.Publish(b.topic, cmd); err != nil {
		log.Printf("bridge publish error: %v", err)
	}
}

// CreateMap asks the page to build a map and returns a handle to it. A new
// map replaces any previous one.
func (b *Browser) CreateMap(container string, center geo.Coordinates, zoom int) *Map {
	m := &Map{browser: b}
	b.mu.Lock()
	b.current = m
	b.mu.Unlock()

	b.send(CreateMap{Op: OpCreateMap, Container: container, Center: center, Zoom: zoom, Tiles: b.tiles})
	return m
}

// DropMap forgets the current map; later clicks are ignored until the page
// builds a new one.
func (b *Browser) DropMap() {
	b.mu.Lock()
	b.current = nil
	b.mu.Unlock()
}

// Click dispatches a map click reported by the page. It reports false when
// there is no map or nobody listens.
func (b *Browser) Click(coords geo.Coordinates) bool {
	b.mu.Lock()
	m := b.current
	b.mu.Unlock()
	if m == nil {
		return false
	}
	return m.dispatch(coords)
}

func (b *Browser) Alert(message string) {
	b.send(Alert{Op: OpAlert, Message: message})
}

func (b *Browser) InsertRow(id string, html template.HTML) {
	b.send(InsertRow{Op: OpInsertRow, ID: id, HTML: html})
}

func (b *Browser) ShowForm() { b.send(Bare{Op: OpShowForm}) }

func (b *Browser) HideForm() { b.send(Bare{Op: OpHideForm}) }

func (b *Browser) ToggleFieldset(visible form.Field) {
	b.send(ToggleFieldset{Op: OpToggleFieldset, Visible: visible})
}

func (b *Browser) Reload() { b.send(Bare{Op: OpReload}) }

// Map is the page's map widget.
type Map struct {
	browser *Browser

	mu      sync.Mutex
	onClick func(geo.Coordinates)
	markers int
}

func (m *Map) OnClick(handler func(geo.Coordinates)) {
	m.mu.Lock()
	m.onClick = handler
	m.mu.Unlock()
}

func (m *Map) AddMarker(coords geo.Coordinates) MarkerRef {
	m.mu.Lock()
	m.markers++
	ref := MarkerRef(fmt.Sprintf("marker-%d", m.markers))
	m.mu.Unlock()

	m.browser.send(AddMarker{Op: OpAddMarker, Marker: ref, Coords: coords})
	return ref
}

func (m *Map) BindPopup(marker MarkerRef, popup render.Popup) {
	m.browser.send(BindPopup{Op: OpBindPopup, Marker: marker, Popup: popup})
}

func (m *Map) SetView(coords geo.Coordinates, zoom int, opts ViewOptions) {
	m.browser.send(SetView{Op: OpSetView, Coords: coords, Zoom: zoom, Options: opts})
}

func (m *Map) dispatch(coords geo.Coordinates) bool {
	m.mu.Lock()
	handler := m.onClick
	m.mu.Unlock()
	if handler == nil {
		return false
	}
	handler(coords)
	return true
}
