// Package input tracks the latest pointer position and held keys, and decodes
// terminal byte streams into those updates.
package input

import (
	"math"
	"strings"
	"sync"
)

// Key identifiers shared by all hosts (W3C KeyboardEvent.key names).
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeySpace      = " "
)

// KeyName maps a host key name such as "ArrowUp", "A", "Space" or "Digit1"
// to the identifier held in a Snapshot.
func KeyName(name string) string {
	switch {
	case name == "Space":
		return KeySpace
	case len(name) == 1:
		return strings.ToLower(name)
	case len(name) == 6 && strings.HasPrefix(name, "Digit"):
		return name[5:]
	}
	return name
}

// Snapshot is the latest known input state. Hosts mutate it as events
// arrive; the game loop polls it once per tick. Last write wins.
type Snapshot struct {
	mu   sync.RWMutex
	x, y float64 // Pointer position in display pixels
	held map[string]struct{}
}

// NewSnapshot returns a snapshot with no keys held and the pointer at (-1, -1).
func NewSnapshot() *Snapshot {
	return &Snapshot{
		x:    -1,
		y:    -1,
		held: make(map[string]struct{}),
	}
}

// MoveTo records a pointer move, in display-local pixels.
func (s *Snapshot) MoveTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x = x
	s.y = y
}

// Press marks key as held.
func (s *Snapshot) Press(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[key] = struct{}{}
}

// Release marks key as no longer held.
func (s *Snapshot) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, key)
}

// Sync replaces the held set with keys. Used by hosts that poll the full
// keyboard state instead of delivering key events.
func (s *Snapshot) Sync(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.held)
	for _, k := range keys {
		s.held[k] = struct{}{}
	}
}

// ReleaseAll clears every held key.
func (s *Snapshot) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.held)
}

// Held reports whether key is currently held.
func (s *Snapshot) Held(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.held[key]
	return ok
}

// HeldAny reports whether any of keys is held.
func (s *Snapshot) HeldAny(keys ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range keys {
		if _, ok := s.held[k]; ok {
			return true
		}
	}
	return false
}

// Pointer returns the pointer position in logical surface pixels for a
// width×height surface shown at scale, clamped to [0, width-1]×[0, height-1].
func (s *Snapshot) Pointer(width, height int, scale float64) (x, y float64) {
	s.mu.RLock()
	px, py := s.x, s.y
	s.mu.RUnlock()

	if scale <= 0 {
		scale = 1
	}
	x = clamp(px/scale, 0, float64(width-1))
	y = clamp(py/scale, 0, float64(height-1))
	return x, y
}

// PointerInt is Pointer floored to whole pixels.
func (s *Snapshot) PointerInt(width, height int, scale float64) (x, y int) {
	fx, fy := s.Pointer(width, height, scale)
	return int(math.Floor(fx)), int(math.Floor(fy))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
