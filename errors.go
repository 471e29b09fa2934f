package blurmate

import (
	"errors"
	"fmt"
	"io/fs"
)

// Export errors. Failures reported through the Failed state wrap exactly one
// of ErrCompositeFailure, ErrPermissionDenied, ErrPersistenceFailed or
// ErrTimeout; test with errors.Is.
var (
	// ErrNoImage is returned when an export is requested before an image
	// has been loaded.
	ErrNoImage = errors.New("blurmate: no image loaded")

	// ErrNoStrokes is returned when an export is requested with nothing
	// painted.
	ErrNoStrokes = errors.New("blurmate: nothing to blur")

	// ErrExportInProgress is returned when an export is requested while
	// another is still running. Requests are rejected, never queued.
	ErrExportInProgress = errors.New("blurmate: export already in progress")

	// ErrCompositeFailure reports that mapping, rasterizing, blurring or
	// compositing did not produce an image.
	ErrCompositeFailure = errors.New("blurmate: composite failed")

	// ErrPermissionDenied reports that the sink was not allowed to write.
	// Sinks may return it (or any error wrapping fs.ErrPermission).
	ErrPermissionDenied = errors.New("blurmate: permission denied")

	// ErrPersistenceFailed reports any other sink error.
	ErrPersistenceFailed = errors.New("blurmate: save failed")

	// ErrTimeout reports that the export did not finish before its deadline.
	ErrTimeout = errors.New("blurmate: export timed out")

	// ErrInvalidPoint is returned for drag samples with NaN or infinite
	// coordinates.
	ErrInvalidPoint = errors.New("blurmate: invalid point")

	// ErrGateReused is returned when a gate calls its export function more
	// than once for the same save action.
	ErrGateReused = errors.New("blurmate: gate invoked export twice")
)

// ErrorKind classifies export errors.
type ErrorKind int

const (
	// KindNone means no error.
	KindNone ErrorKind = iota
	// KindNoImage corresponds to ErrNoImage.
	KindNoImage
	// KindNoStrokes corresponds to ErrNoStrokes.
	KindNoStrokes
	// KindCompositeFailure corresponds to ErrCompositeFailure.
	KindCompositeFailure
	// KindPersistenceDenied corresponds to ErrPermissionDenied.
	KindPersistenceDenied
	// KindPersistenceFailed corresponds to ErrPersistenceFailed.
	KindPersistenceFailed
	// KindTimeout corresponds to ErrTimeout.
	KindTimeout
	// KindInProgress corresponds to ErrExportInProgress.
	KindInProgress
	// KindOther is any error outside the taxonomy.
	KindOther
)

var kindNames = [...]string{
	KindNone:              "none",
	KindNoImage:           "no-image",
	KindNoStrokes:         "no-strokes",
	KindCompositeFailure:  "composite-failure",
	KindPersistenceDenied: "persistence-denied",
	KindPersistenceFailed: "persistence-failed",
	KindTimeout:           "timeout",
	KindInProgress:        "in-progress",
	KindOther:             "other",
}

// String returns a short, stable name for the kind.
func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// KindOf classifies err. A nil error is KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNoImage):
		return KindNoImage
	case errors.Is(err, ErrNoStrokes):
		return KindNoStrokes
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrPermissionDenied):
		return KindPersistenceDenied
	case errors.Is(err, ErrPersistenceFailed):
		return KindPersistenceFailed
	case errors.Is(err, ErrCompositeFailure):
		return KindCompositeFailure
	case errors.Is(err, ErrExportInProgress):
		return KindInProgress
	default:
		return KindOther
	}
}

// classifySinkError wraps an error returned by a Sink into the export
// taxonomy.
func classifySinkError(err error) error {
	if errors.Is(err, ErrPermissionDenied) {
		return err
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
}
