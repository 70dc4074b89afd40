package bridge

import (
	"sync"

	"backend-mapty/internal/shared/geo"
)

// Locator parks a position request until the page reports the browser's
// geolocation result. Each request gets exactly one callback.
type Locator struct {
	mu        sync.Mutex
	onSuccess func(geo.Coordinates)
	onFailure func(error)
}

func NewLocator() *Locator {
	return &Locator{}
}

// RequestPosition replaces any request still pending.
func (l *Locator) RequestPosition(onSuccess func(geo.Coordinates), onFailure func(error)) {
	l.mu.Lock()
	l.onSuccess, l.onFailure = onSuccess, onFailure
	l.mu.Unlock()
}

// Pending reports whether a request is waiting for the page.
func (l *Locator) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.onSuccess != nil
}

func (l *Locator) Resolve(coords geo.Coordinates) bool {
	onSuccess, _ := l.take()
	if onSuccess == nil {
		return false
	}
	onSuccess(coords)
	return true
}

func (l *Locator) Fail(err error) bool {
	_, onFailure := l.take()
	if onFailure == nil {
		return false
	}
	onFailure(err)
	return true
}

func (l *Locator) take() (func(geo.Coordinates), func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	onSuccess, onFailure := l.onSuccess, l.onFailure
	l.onSuccess, l.onFailure = nil, nil
	return onSuccess, onFailure
}
