package blurmate

import (
	"strings"
	"testing"
)

func TestExportStateString(t *testing.T) {
	tests := []struct {
		s        ExportState
		want     string
		terminal bool
	}{
		{StateIdle, "idle", false},
		{StateExporting, "exporting", false},
		{StateSucceeded, "succeeded", true},
		{StateFailed, "failed", true},
		{ExportState(7), "ExportState(7)", false},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.s.Terminal(); got != tt.terminal {
			t.Errorf("%v.Terminal() = %v, want %v", tt.s, got, tt.terminal)
		}
	}
}

func TestEventString(t *testing.T) {
	e := Event{SessionID: "abc", State: StateFailed, Kind: KindTimeout, Err: ErrTimeout}
	if got := e.String(); !strings.Contains(got, "failed (timeout)") {
		t.Errorf("String() = %q", got)
	}
	if got := (Event{SessionID: "abc", State: StateIdle}).String(); got != "abc idle" {
		t.Errorf("String() = %q, want %q", got, "abc idle")
	}
}
