// Package blurmate is the editing core of a selective-blur photo editor.
//
// # Overview
//
// The user paints a freehand mask over a photo and exports a full
// resolution copy in which only the painted region is blurred. The core
// records strokes in display coordinates, maps them onto the source image,
// rasterizes them into an alpha mask, blurs the whole source and composites
// source and blurred layers through the mask:
//
//	out = src*(1-m) + blur*m
//
// # Quick Start
//
//	img, err := blurmate.LoadImage("photo.jpg")
//	if err != nil {
//	    return err
//	}
//
//	s := blurmate.NewSession(img,
//	    blurmate.WithDisplayGeometry(blurmate.DisplayGeometry{Width: 500, Height: 250}),
//	    blurmate.WithSink(&blurmate.FileSink{Dir: "out"}))
//
//	// Pointer input, in display units
//	s.DragUpdate(blurmate.Pt(100, 100))
//	s.DragUpdate(blurmate.Pt(140, 120))
//	s.DragEnd()
//
//	if err := s.Export(ctx); err != nil {
//	    return err // ErrNoImage, ErrNoStrokes or ErrExportInProgress
//	}
//	ev, err := s.Wait(ctx)
//
// # Coordinate Spaces
//
// Strokes are captured relative to the viewport the photo is drawn into
// (DisplayGeometry). At export each point is scaled per axis by
// sx = imageWidth/viewportWidth and sy = imageHeight/viewportHeight.
// Lengths (stroke widths, brush size, blur radius) are scaled by
// min(sx, sy). The viewport is assumed fixed for the whole session.
//
// # Export
//
// Export snapshots the session and renders on a worker goroutine. The
// session moves Idle → Exporting → Succeeded or Failed and notifies
// Subscribe listeners on each transition. An export that does not finish
// within the timeout (15 s by default) fails with ErrTimeout and its late
// result is discarded.
//
// # Pixel Format
//
// Images are 8-bit premultiplied RGBA. Masks are 8-bit; a value of 255 is
// fully blurred.
package blurmate

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
