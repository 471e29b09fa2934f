package blurmate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/junhyuckkkk/BlurMate/internal/i18n"
)

// Session is one edit of one photo: the source image, the strokes painted
// over it, the blur parameters, the viewport the strokes were captured in
// and the export state machine.
//
// All methods are safe for concurrent use. Strokes are recorded on the
// caller's goroutine; Export renders and saves on a worker goroutine and
// reports the outcome through Subscribe listeners.
//
// At most one export runs at a time. A request made while exporting is
// rejected with ErrExportInProgress; it is never queued.
type Session struct {
	opts    sessionOptions
	sink    Sink
	printer *i18n.Printer

	mu       sync.Mutex
	id       string
	img      *Image
	rec      *Recorder
	params   BlurParams
	geometry DisplayGeometry

	state  ExportState
	err    error
	reason string
	result *Image

	// gen identifies the current export. A worker or timer whose
	// generation no longer matches has been abandoned.
	gen    uint64
	cancel context.CancelFunc
	timer  *time.Timer

	listeners    map[int]func(Event)
	nextListener int
}

// NewSession creates a session for img. img may be nil; Export then fails
// with ErrNoImage until Load is called.
func NewSession(img *Image, opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sink := o.sink
	if sink == nil {
		sink = &MemorySink{}
	}

	return &Session{
		opts:      o,
		sink:      sink,
		printer:   i18n.NewPrinter(o.lang),
		id:        uuid.NewString(),
		img:       img,
		rec:       NewRecorder(o.params.BrushSize),
		params:    o.params,
		geometry:  o.geometry,
		listeners: make(map[int]func(Event)),
	}
}

// ID returns the session identifier. It changes on Load.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Image returns the source image, or nil.
func (s *Session) Image() *Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Sink returns the sink exports are saved to.
func (s *Session) Sink() Sink { return s.sink }

// Load replaces the source image and starts a fresh edit: strokes are
// cleared, the state returns to Idle and the session gets a new ID. An
// export in flight is abandoned; its result is discarded. Blur parameters
// and the display geometry are kept.
func (s *Session) Load(img *Image) {
	s.mu.Lock()
	s.abandonLocked()
	s.id = uuid.NewString()
	s.img = img
	s.rec.Clear()
	s.setStateLocked(StateIdle, nil, nil)
	ev := s.eventLocked()
	ls := s.listenersLocked()
	s.mu.Unlock()

	s.logger(ev.SessionID).Info("blurmate: image loaded",
		"width", widthOf(img),
		"height", heightOf(img))
	notify(ls, ev)
}

// SetDisplayGeometry records the viewport the photo is drawn into. Strokes
// already recorded are not re-mapped; the geometry in effect when Export
// is called applies to every stroke.
func (s *Session) SetDisplayGeometry(g DisplayGeometry) {
	s.mu.Lock()
	s.geometry = g
	s.mu.Unlock()
}

// DisplayGeometry returns the viewport set by SetDisplayGeometry.
func (s *Session) DisplayGeometry() DisplayGeometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geometry
}

// SetBrushSize sets the brush diameter, in display units, for strokes
// started from now on. Negative and non-finite values are treated as zero.
func (s *Session) SetBrushSize(size float64) {
	s.mu.Lock()
	s.params.BrushSize = size
	s.params = s.params.sanitize()
	s.rec.SetWidth(s.params.BrushSize)
	s.mu.Unlock()
}

// SetBlurIntensity sets the blur radius in display units. Zero disables
// the blur. Negative and non-finite values are treated as zero.
func (s *Session) SetBlurIntensity(v float64) {
	s.mu.Lock()
	s.params.Intensity = v
	s.params = s.params.sanitize()
	s.mu.Unlock()
}

// SetBlurStyle selects the blur style.
func (s *Session) SetBlurStyle(style BlurStyle) {
	s.mu.Lock()
	s.params.Style = style
	s.mu.Unlock()
}

// Params returns the current blur parameters.
func (s *Session) Params() BlurParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// DragUpdate starts or extends the stroke in progress at p, in display
// coordinates.
func (s *Session) DragUpdate(p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.DragUpdate(p)
}

// DragEnd commits the stroke in progress.
func (s *Session) DragEnd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.DragEnd()
}

// Undo removes the most recently committed stroke.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Undo()
}

// Clear removes every stroke.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Clear()
}

// Strokes returns a snapshot of the committed strokes.
func (s *Session) Strokes() []Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Strokes()
}

// InProgress returns a copy of the stroke being drawn, if any.
func (s *Session) InProgress() (Stroke, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.InProgress()
}

// State returns the export state.
func (s *Session) State() ExportState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure of the last export, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Reason returns the localized description of the last outcome, or "".
func (s *Session) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Result returns the image saved by the last successful export, or nil.
func (s *Session) Result() *Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Describe returns the localized, user-facing text for err, as used in
// event reasons. Use it for the errors Export returns synchronously.
func (s *Session) Describe(err error) string {
	return describe(s.printer, err)
}

// Subscribe registers fn to receive every state transition. Listeners run
// on the goroutine that made the transition, never while the session is
// locked, so they may call back into the session. The returned function
// removes the listener.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Export starts rendering the current strokes onto the source image and
// saving the result. It returns once the export has started; the outcome
// is delivered as a Succeeded or Failed event.
//
// Export returns ErrNoImage or ErrNoStrokes without changing state or
// starting any work, and ErrExportInProgress while another export runs.
//
// ctx supplies values to the sink. Cancelling it does not stop the export;
// only the session timeout does.
func (s *Session) Export(ctx context.Context) error {
	s.mu.Lock()
	if s.img.Empty() {
		s.mu.Unlock()
		return ErrNoImage
	}
	if s.state == StateExporting {
		s.mu.Unlock()
		return ErrExportInProgress
	}
	strokes := s.rec.Strokes()
	if len(strokes) == 0 {
		s.mu.Unlock()
		return ErrNoStrokes
	}

	s.gen++
	j := job{
		gen:      s.gen,
		id:       s.id,
		img:      s.img,
		strokes:  strokes,
		params:   s.params,
		geometry: s.geometry,
	}
	wctx, cancel := context.WithCancel(withSessionID(context.WithoutCancel(ctx), j.id))
	s.cancel = cancel
	s.setStateLocked(StateExporting, nil, nil)
	ev := s.eventLocked()
	ls := s.listenersLocked()
	s.mu.Unlock()

	log := s.logger(j.id)
	log.Info("blurmate: export started",
		"strokes", len(strokes),
		"timeout", s.opts.timeout,
		"lang", s.printer.Language())
	notify(ls, ev)

	s.mu.Lock()
	if s.gen == j.gen && s.state == StateExporting {
		s.timer = time.AfterFunc(s.opts.timeout, func() {
			s.finish(j.gen, nil, fmt.Errorf("%w after %v", ErrTimeout, s.opts.timeout))
		})
	}
	s.mu.Unlock()

	go s.run(wctx, log, j)
	return nil
}

// SaveWithGate runs the configured Gate and lets it start the export. The
// gate may call its export function once; a second call returns
// ErrGateReused. Without a gate SaveWithGate is Export.
func (s *Session) SaveWithGate(ctx context.Context) error {
	gate := s.opts.gate
	if gate == nil {
		return s.Export(ctx)
	}

	var used atomic.Bool
	return gate(ctx, func(ctx context.Context) error {
		if !used.CompareAndSwap(false, true) {
			return ErrGateReused
		}
		return s.Export(ctx)
	})
}

// Reset clears the strokes and returns a finished session to Idle, as
// after the user dismisses the result of a save. It returns
// ErrExportInProgress while exporting.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.state == StateExporting {
		s.mu.Unlock()
		return ErrExportInProgress
	}
	s.rec.Clear()
	if s.state == StateIdle {
		s.mu.Unlock()
		return nil
	}
	s.setStateLocked(StateIdle, nil, nil)
	ev := s.eventLocked()
	ls := s.listenersLocked()
	s.mu.Unlock()

	notify(ls, ev)
	return nil
}

// Wait blocks until no export is running and returns the event describing
// the current state. It returns ctx.Err() if ctx is done first.
func (s *Session) Wait(ctx context.Context) (Event, error) {
	done := make(chan Event, 1)
	cancel := s.Subscribe(func(e Event) {
		if e.State != StateExporting {
			select {
			case done <- e:
			default:
			}
		}
	})
	defer cancel()

	s.mu.Lock()
	if s.state != StateExporting {
		ev := s.eventLocked()
		s.mu.Unlock()
		return ev, nil
	}
	s.mu.Unlock()

	select {
	case ev := <-done:
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// job is the snapshot an export worker operates on.
type job struct {
	gen      uint64
	id       string
	img      *Image
	strokes  []Stroke
	params   BlurParams
	geometry DisplayGeometry
}

// run renders and saves one export, then reports the outcome.
func (s *Session) run(ctx context.Context, log *slog.Logger, j job) {
	start := time.Now()
	out, err := render(ctx, log, j.img, j.geometry, j.strokes, j.params)
	if err == nil {
		if serr := s.sink.Save(ctx, out); serr != nil {
			err = classifySinkError(serr)
			out = nil
		}
	}
	log.Debug("blurmate: export worker done", "elapsed", time.Since(start), "err", err)
	s.finish(j.gen, out, err)
}

// finish moves export gen to its terminal state. Results for an export
// that already finished, timed out or was abandoned are dropped.
func (s *Session) finish(gen uint64, out *Image, err error) {
	s.mu.Lock()
	if gen != s.gen || s.state != StateExporting {
		id := s.id
		s.mu.Unlock()
		s.logger(id).Warn("blurmate: discarding late export result", "generation", gen, "err", err)
		return
	}

	s.stopLocked()
	if err != nil {
		s.setStateLocked(StateFailed, err, nil)
	} else {
		s.setStateLocked(StateSucceeded, nil, out)
	}
	ev := s.eventLocked()
	ls := s.listenersLocked()
	s.mu.Unlock()

	log := s.logger(ev.SessionID)
	if err != nil {
		log.Warn("blurmate: export failed", "kind", ev.Kind, "err", err)
	} else {
		log.Info("blurmate: export saved", "width", ev.Width, "height", ev.Height)
	}
	notify(ls, ev)
}

// abandonLocked drops the export in flight, if any.
func (s *Session) abandonLocked() {
	if s.state == StateExporting {
		s.gen++
	}
	s.stopLocked()
}

// stopLocked stops the timer and cancels the worker of the current export.
func (s *Session) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) setStateLocked(state ExportState, err error, out *Image) {
	s.state = state
	s.err = err
	s.result = out
	switch {
	case err != nil:
		s.reason = describe(s.printer, err)
	case state == StateSucceeded:
		s.reason = s.printer.Sprint(i18n.Saved)
	default:
		s.reason = ""
	}
}

func (s *Session) eventLocked() Event {
	ev := Event{
		SessionID: s.id,
		State:     s.state,
		Kind:      KindOf(s.err),
		Err:       s.err,
		Reason:    s.reason,
	}
	if s.result != nil {
		ev.Width, ev.Height = s.result.Width(), s.result.Height()
	}
	return ev
}

func (s *Session) listenersLocked() []func(Event) {
	ls := make([]func(Event), 0, len(s.listeners))
	for i := 0; i < s.nextListener; i++ {
		if fn, ok := s.listeners[i]; ok {
			ls = append(ls, fn)
		}
	}
	return ls
}

func (s *Session) logger(id string) *slog.Logger {
	l := s.opts.logger
	if l == nil {
		l = Logger()
	}
	return l.With("session", id)
}

func notify(ls []func(Event), ev Event) {
	for _, fn := range ls {
		fn(ev)
	}
}

// describe maps err to its localized reason. Persistence failures carry the
// sink's own message.
func describe(p *i18n.Printer, err error) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindNoImage:
		return p.Sprint(i18n.NoImage)
	case KindNoStrokes:
		return p.Sprint(i18n.NoStrokes)
	case KindCompositeFailure:
		return p.Sprint(i18n.CompositeFailure)
	case KindPersistenceDenied:
		return p.Sprint(i18n.PermissionDenied)
	case KindPersistenceFailed:
		return p.Sprint(i18n.SaveFailed) + " " + err.Error()
	case KindTimeout:
		return p.Sprint(i18n.Timeout)
	case KindInProgress:
		return p.Sprint(i18n.InProgress)
	default:
		return p.Sprint(i18n.SaveFailed) + " " + err.Error()
	}
}

func widthOf(img *Image) int {
	if img.Empty() {
		return 0
	}
	return img.Width()
}

func heightOf(img *Image) int {
	if img.Empty() {
		return 0
	}
	return img.Height()
}
