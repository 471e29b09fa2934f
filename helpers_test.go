package blurmate

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"testing"
	"time"
)

// stripes returns a w×h opaque image of 8 px vertical black and white
// stripes, which any blur visibly changes.
func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/8)%2 == 1 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// testImage wraps stripes(w, h) in an Image.
func testImage(w, h int) *Image {
	return NewImage(stripes(w, h))
}

// paintDot records a one-point stroke at (x, y).
func paintDot(t *testing.T, s *Session, x, y float64) {
	t.Helper()
	if err := s.DragUpdate(Pt(x, y)); err != nil {
		t.Fatalf("DragUpdate(%v, %v) = %v", x, y, err)
	}
	if !s.DragEnd() {
		t.Fatal("DragEnd() = false, want true")
	}
}

// testContext returns a context that fails the test if it expires.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// eventRecorder collects session events.
type eventRecorder struct {
	ch chan Event
}

func recordEvents(t *testing.T, s *Session) *eventRecorder {
	t.Helper()
	r := &eventRecorder{ch: make(chan Event, 32)}
	cancel := s.Subscribe(func(e Event) { r.ch <- e })
	t.Cleanup(cancel)
	return r
}

// next returns the next event or fails after a timeout.
func (r *eventRecorder) next(t *testing.T) Event {
	t.Helper()
	select {
	case e := <-r.ch:
		return e
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

// none fails if an event is pending.
func (r *eventRecorder) none(t *testing.T) {
	t.Helper()
	select {
	case e := <-r.ch:
		t.Fatalf("unexpected event %v", e)
	default:
	}
}

// warnHandler forwards the messages of Warn and Error records to a channel.
type warnHandler struct {
	ch chan string
}

func newWarnLogger() (*slog.Logger, <-chan string) {
	ch := make(chan string, 16)
	return slog.New(warnHandler{ch: ch}), ch
}

func (h warnHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= slog.LevelWarn }
func (h warnHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h warnHandler) WithGroup(string) slog.Handler { return h }

func (h warnHandler) Handle(_ context.Context, r slog.Record) error {
	select {
	case h.ch <- r.Message:
	default:
	}
	return nil
}

// waitMessage waits for msg on ch.
func waitMessage(t *testing.T, ch <-chan string, msg string) {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == msg {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for log %q", msg)
		}
	}
}
