package bridge

import (
	"html/template"

	"backend-mapty/internal/form"
	"backend-mapty/internal/render"
	"backend-mapty/internal/shared/geo"
)

// Command ops understood by the page script.
const (
	OpCreateMap      = "createMap"
	OpAddMarker      = "addMarker"
	OpBindPopup      = "bindPopup"
	OpSetView        = "setView"
	OpAlert          = "alert"
	OpInsertRow      = "insertRow"
	OpShowForm       = "showForm"
	OpHideForm       = "hideForm"
	OpToggleFieldset = "toggleFieldset"
	OpReload         = "reload"
)

type Tiles struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// MarkerRef names a marker placed on the browser map.
type MarkerRef string

type ViewOptions struct {
	Animate     bool    `json:"animate"`
	PanDuration float64 `json:"panDuration"` // seconds
}

type CreateMap struct {
	Op        string          `json:"op"`
	Container string          `json:"container"`
	Center    geo.Coordinates `json:"center"`
	Zoom      int             `json:"zoom"`
	Tiles     Tiles           `json:"tiles"`
}

type AddMarker struct {
	Op     string          `json:"op"`
	Marker MarkerRef       `json:"marker"`
	Coords geo.Coordinates `json:"coords"`
}

type BindPopup struct {
	Op     string       `json:"op"`
	Marker MarkerRef    `json:"marker"`
	Popup  render.Popup `json:"popup"`
}

type SetView struct {
	Op      string          `json:"op"`
	Coords  geo.Coordinates `json:"coords"`
	Zoom    int             `json:"zoom"`
	Options ViewOptions     `json:"options"`
}

type Alert struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

type InsertRow struct {
	Op   string        `json:"op"`
	ID   string        `json:"id"`
	HTML template.HTML `json:"html"`
}

type ToggleFieldset struct {
	Op      string     `json:"op"`
	Visible form.Field `json:"visible"`
}

// Bare is a command with no arguments.
type Bare struct {
	Op string `json:"op"`
}
