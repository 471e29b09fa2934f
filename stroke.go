package blurmate

// Stroke is one continuous freehand drag: an ordered sequence of points and
// the brush diameter in effect when the drag started.
//
// A Stroke is immutable. Points returns a copy, and strokes handed out by a
// Recorder never share storage with the stroke being drawn.
type Stroke struct {
	points []Point
	width  float64
}

// NewStroke returns a stroke through the given points with the given brush
// diameter. The points are copied.
func NewStroke(width float64, points ...Point) Stroke {
	return Stroke{
		points: append([]Point(nil), points...),
		width:  width,
	}
}

// Width returns the brush diameter.
func (s Stroke) Width() float64 { return s.width }

// Len returns the number of points.
func (s Stroke) Len() int { return len(s.points) }

// At returns the i-th point.
func (s Stroke) At(i int) Point { return s.points[i] }

// Points returns a copy of the points.
func (s Stroke) Points() []Point {
	return append([]Point(nil), s.points...)
}

// mapped returns the stroke with x scaled by sx, y by sy and the width by
// ws.
func (s Stroke) mapped(sx, sy, ws float64) Stroke {
	pts := make([]Point, len(s.points))
	for i, p := range s.points {
		pts[i] = p.Scale(sx, sy)
	}
	return Stroke{points: pts, width: s.width * ws}
}

// Recorder accumulates drag samples into strokes and keeps the committed
// history for undo.
//
// A Recorder is not safe for concurrent use; Session serializes access.
type Recorder struct {
	committed []Stroke

	current []Point
	active  bool
	curW    float64

	width float64
}

// NewRecorder returns an empty recorder whose strokes start with the given
// brush diameter.
func NewRecorder(width float64) *Recorder {
	return &Recorder{width: width}
}

// SetWidth changes the brush diameter used for strokes started from now on.
// A stroke in progress keeps the width it started with.
func (r *Recorder) SetWidth(width float64) {
	r.width = width
}

// Width returns the brush diameter for the next stroke.
func (r *Recorder) Width() float64 { return r.width }

// DragUpdate starts a stroke at p if none is in progress, otherwise appends
// p to the current stroke. Points with NaN or infinite coordinates are
// ignored and reported as ErrInvalidPoint. Repeated points are accepted.
func (r *Recorder) DragUpdate(p Point) error {
	if !p.IsFinite() {
		return ErrInvalidPoint
	}
	if !r.active {
		r.active = true
		r.curW = r.width
		r.current = nil
	}
	r.current = append(r.current, p)
	return nil
}

// DragEnd commits the stroke in progress, if it has at least one point, and
// reports whether a stroke was committed.
func (r *Recorder) DragEnd() bool {
	if !r.active {
		return false
	}
	pts := r.current
	r.active = false
	r.current = nil
	if len(pts) == 0 {
		return false
	}
	r.committed = append(r.committed, Stroke{points: pts, width: r.curW})
	return true
}

// Undo removes the most recently committed stroke and reports whether there
// was one. The stroke in progress is not affected.
func (r *Recorder) Undo() bool {
	n := len(r.committed)
	if n == 0 {
		return false
	}
	r.committed[n-1] = Stroke{}
	r.committed = r.committed[:n-1]
	return true
}

// Clear removes every committed stroke and discards the stroke in progress.
func (r *Recorder) Clear() {
	r.committed = nil
	r.current = nil
	r.active = false
}

// Len returns the number of committed strokes.
func (r *Recorder) Len() int { return len(r.committed) }

// Strokes returns the committed strokes in commit order. The returned slice
// is a copy; the strokes themselves are immutable.
func (r *Recorder) Strokes() []Stroke {
	return append([]Stroke(nil), r.committed...)
}

// InProgress returns a copy of the stroke being drawn, if any.
func (r *Recorder) InProgress() (Stroke, bool) {
	if !r.active {
		return Stroke{}, false
	}
	return NewStroke(r.curW, r.current...), true
}
