package render

import "backend-mapty/internal/workout"

type PopupOptions struct {
	MaxWidth     int    `json:"maxWidth"`
	MinWidth     int    `json:"minWidth"`
	AutoClose    bool   `json:"autoClose"`
	CloseOnClick bool   `json:"closeOnClick"`
	ClassName    string `json:"className"`
}

// Popup is the marker popup for a workout. Content is plain text; the map
// widget sets it as text, not markup.
type Popup struct {
	Content string       `json:"content"`
	Options PopupOptions `json:"options"`
	Open    bool         `json:"open"`
}

func PopupFor(w workout.Workout) Popup {
	return Popup{
		Content: PopupContent(w),
		Options: PopupOptions{
			MaxWidth:     250,
			MinWidth:     100,
			AutoClose:    false,
			CloseOnClick: false,
			ClassName:    string(w.Type) + "-popup",
		},
		Open: true,
	}
}

func PopupContent(w workout.Workout) string {
	return w.Type.Icon() + " " + w.Description
}
