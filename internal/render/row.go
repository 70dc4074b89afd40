package render

import (
	"bytes"
	"html/template"
	"strconv"

	"backend-mapty/internal/workout"
)

var funcs = template.FuncMap{
	"num":    formatNumber,
	"fixed1": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
}

var rowTemplate = template.Must(template.New("row").Funcs(funcs).Parse(
	`<li class="workout workout--{{.Type}}" data-id="{{.ID}}">
  <h2 class="workout__title">{{.Description}}</h2>
  <div class="workout__details">
    <span class="workout__icon">{{.Type.Icon}}</span>
    <span class="workout__value">{{num .Distance}}</span>
    <span class="workout__unit">km</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">⏱</span>
    <span class="workout__value">{{num .Duration}}</span>
    <span class="workout__unit">min</span>
  </div>
{{- if eq .Type "running"}}
  <div class="workout__details">
    <span class="workout__icon">⚡️</span>
    <span class="workout__value">{{fixed1 .Pace}}</span>
    <span class="workout__unit">min/km</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">🦶🏼</span>
    <span class="workout__value">{{num .Cadence}}</span>
    <span class="workout__unit">spm</span>
  </div>
{{- else}}
  <div class="workout__details">
    <span class="workout__icon">⚡️</span>
    <span class="workout__value">{{fixed1 .Speed}}</span>
    <span class="workout__unit">km/h</span>
  </div>
  <div class="workout__details">
    <span class="workout__icon">⛰</span>
    <span class="workout__value">{{num .ElevationGain}}</span>
    <span class="workout__unit">m</span>
  </div>
{{- end}}
</li>`))

// Row renders the list entry for w, keyed by its id.
func Row(w workout.Workout) (template.HTML, error) {
	var buf bytes.Buffer
	if err := rowTemplate.Execute(&buf, w); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// formatNumber prints the shortest representation, 5 rather than 5.000000.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
