package blurmate

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestRecorderDragLifecycle(t *testing.T) {
	r := NewRecorder(30)

	if r.DragEnd() {
		t.Error("DragEnd() without a drag = true, want false")
	}

	for _, p := range []Point{Pt(1, 1), Pt(2, 2), Pt(2, 2), Pt(3, 4)} {
		if err := r.DragUpdate(p); err != nil {
			t.Fatalf("DragUpdate(%v) = %v", p, err)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Len() during drag = %d, want 0", r.Len())
	}
	cur, ok := r.InProgress()
	if !ok || cur.Len() != 4 {
		t.Fatalf("InProgress() = %v, %v; want 4 points", cur.Len(), ok)
	}

	if !r.DragEnd() {
		t.Fatal("DragEnd() = false, want true")
	}
	if _, ok := r.InProgress(); ok {
		t.Error("InProgress() after DragEnd reports a stroke")
	}

	got := r.Strokes()
	if len(got) != 1 {
		t.Fatalf("len(Strokes()) = %d, want 1", len(got))
	}
	want := []Point{Pt(1, 1), Pt(2, 2), Pt(2, 2), Pt(3, 4)}
	if !reflect.DeepEqual(got[0].Points(), want) {
		t.Errorf("Points() = %v, want %v", got[0].Points(), want)
	}
	if got[0].Width() != 30 {
		t.Errorf("Width() = %v, want 30", got[0].Width())
	}
}

func TestRecorderWidthCapturedAtStart(t *testing.T) {
	r := NewRecorder(20)
	_ = r.DragUpdate(Pt(0, 0))
	r.SetWidth(50)
	_ = r.DragUpdate(Pt(1, 0))
	r.DragEnd()

	_ = r.DragUpdate(Pt(5, 5))
	r.DragEnd()

	s := r.Strokes()
	if s[0].Width() != 20 {
		t.Errorf("first stroke width = %v, want 20", s[0].Width())
	}
	if s[1].Width() != 50 {
		t.Errorf("second stroke width = %v, want 50", s[1].Width())
	}
}

func TestRecorderRejectsNonFinite(t *testing.T) {
	r := NewRecorder(10)
	bad := []Point{
		Pt(math.NaN(), 0),
		Pt(0, math.Inf(1)),
		Pt(math.Inf(-1), math.NaN()),
	}
	for _, p := range bad {
		if err := r.DragUpdate(p); !errors.Is(err, ErrInvalidPoint) {
			t.Errorf("DragUpdate(%v) = %v, want ErrInvalidPoint", p, err)
		}
	}
	if _, ok := r.InProgress(); ok {
		t.Error("invalid points started a stroke")
	}
	if r.DragEnd() {
		t.Error("DragEnd() committed a stroke made of invalid points")
	}
}

func TestRecorderUndoIsInverseOfCommit(t *testing.T) {
	tests := []struct {
		name   string
		before [][]Point
		stroke []Point
	}{
		{"empty history", nil, []Point{Pt(1, 2)}},
		{"one stroke", [][]Point{{Pt(0, 0), Pt(5, 5)}}, []Point{Pt(9, 9), Pt(10, 10)}},
		{"duplicate of previous", [][]Point{{Pt(3, 3)}}, []Point{Pt(3, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder(15)
			for _, pts := range tt.before {
				for _, p := range pts {
					_ = r.DragUpdate(p)
				}
				r.DragEnd()
			}
			want := r.Strokes()

			for _, p := range tt.stroke {
				_ = r.DragUpdate(p)
			}
			r.DragEnd()
			if !r.Undo() {
				t.Fatal("Undo() = false, want true")
			}

			if got := r.Strokes(); !reflect.DeepEqual(got, want) {
				t.Errorf("Strokes() after commit+undo = %v, want %v", got, want)
			}
		})
	}
}

func TestRecorderUndoLeavesDragAlone(t *testing.T) {
	r := NewRecorder(10)
	if r.Undo() {
		t.Error("Undo() on empty history = true, want false")
	}

	_ = r.DragUpdate(Pt(1, 1))
	r.DragEnd()
	_ = r.DragUpdate(Pt(2, 2))

	r.Undo()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	cur, ok := r.InProgress()
	if !ok || cur.Len() != 1 || cur.At(0) != Pt(2, 2) {
		t.Errorf("InProgress() = %v, %v; want the (2, 2) stroke", cur.Points(), ok)
	}
}

func TestRecorderClear(t *testing.T) {
	r := NewRecorder(10)
	_ = r.DragUpdate(Pt(1, 1))
	r.DragEnd()
	_ = r.DragUpdate(Pt(2, 2))

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if _, ok := r.InProgress(); ok {
		t.Error("Clear() kept the stroke in progress")
	}
}

func TestStrokeSnapshotsDoNotAlias(t *testing.T) {
	r := NewRecorder(10)
	_ = r.DragUpdate(Pt(1, 1))
	r.DragEnd()

	snap := r.Strokes()
	pts := snap[0].Points()
	pts[0] = Pt(99, 99)

	_ = r.DragUpdate(Pt(7, 7))
	_ = r.DragUpdate(Pt(8, 8))
	r.DragEnd()

	if got := r.Strokes()[0].At(0); got != Pt(1, 1) {
		t.Errorf("committed stroke changed to %v", got)
	}
	if len(snap) != 1 {
		t.Errorf("snapshot grew to %d strokes", len(snap))
	}
}

func TestStrokeMapped(t *testing.T) {
	s := NewStroke(10, Pt(1, 2), Pt(3, 4))
	m := s.mapped(2, 3, 2)
	want := []Point{Pt(2, 6), Pt(6, 12)}
	if !reflect.DeepEqual(m.Points(), want) {
		t.Errorf("mapped points = %v, want %v", m.Points(), want)
	}
	if m.Width() != 20 {
		t.Errorf("mapped width = %v, want 20", m.Width())
	}
	if s.At(0) != Pt(1, 2) {
		t.Error("mapped modified the original stroke")
	}
}
