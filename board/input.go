package board

// Layout reports where the surface currently is on screen.
type Layout interface {
	// SurfaceRect is the on-screen rectangle of the surface, in logical
	// pixels, as laid out at the time of the call.
	SurfaceRect() Rect
}

// PointerSession is one pointer-down to pointer-up interaction.
type PointerSession struct {
	PointerID int
	Last      Point
}

// Tracker maps client coordinates to surface coordinates and owns the
// single active pointer session.
type Tracker struct {
	layout  Layout
	session *PointerSession
}

// NewTracker returns a tracker reading the surface position from layout.
func NewTracker(layout Layout) *Tracker {
	return &Tracker{layout: layout}
}

// ToLocal converts client coordinates to surface coordinates. The surface
// origin is read on every call since scrolling and resizing move it.
func (t *Tracker) ToLocal(clientX, clientY float64) Point {
	return Pt(clientX, clientY).Sub(t.layout.SurfaceRect().Min)
}

// Begin starts a session for pointer id and returns its first local point.
// It is rejected while another pointer is drawing. A second Begin from the
// same pointer, whose release got lost, replaces the old session.
func (t *Tracker) Begin(id int, clientX, clientY float64) (Point, bool) {
	if t.session != nil && t.session.PointerID != id {
		Logger().Debug("input: pointer ignored", "pointer", id, "active", t.session.PointerID)
		return Point{}, false
	}
	p := t.ToLocal(clientX, clientY)
	t.session = &PointerSession{PointerID: id, Last: p}
	return p, true
}

// Extend returns the next local point of the session of pointer id. It
// reports false if id has no active session.
func (t *Tracker) Extend(id int, clientX, clientY float64) (Point, bool) {
	if t.session == nil || t.session.PointerID != id {
		return Point{}, false
	}
	p := t.ToLocal(clientX, clientY)
	t.session.Last = p
	return p, true
}

// End closes the session of pointer id. It serves both release and
// cancellation and reports whether a session was closed.
func (t *Tracker) End(id int) bool {
	if t.session == nil || t.session.PointerID != id {
		return false
	}
	t.session = nil
	return true
}

// Active returns the active session, if any.
func (t *Tracker) Active() (PointerSession, bool) {
	if t.session == nil {
		return PointerSession{}, false
	}
	return *t.session, true
}
