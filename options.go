package blurmate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"
)

// DefaultExportTimeout bounds a single export, from the request to the sink
// returning.
const DefaultExportTimeout = 15 * time.Second

// Gate runs before an export that was requested through SaveWithGate, for
// example to show a confirmation or an interstitial. It must call export at
// most once to proceed and return its error; returning without calling it
// cancels the save.
type Gate func(ctx context.Context, export func(context.Context) error) error

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// In-memory sink, 15 s timeout, English reasons
//	s := blurmate.NewSession(img)
//
//	// Save to disk with Korean reasons
//	s := blurmate.NewSession(img,
//	    blurmate.WithSink(&blurmate.FileSink{Dir: "out"}),
//	    blurmate.WithLanguage(language.Korean))
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	timeout  time.Duration
	sink     Sink
	gate     Gate
	params   BlurParams
	geometry DisplayGeometry
	lang     language.Tag
	logger   *slog.Logger
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		timeout: DefaultExportTimeout,
		sink:    nil, // MemorySink if nil
		params:  DefaultBlurParams(),
		lang:    language.English,
		logger:  nil, // package logger if nil
	}
}

// WithTimeout sets the export deadline. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) SessionOption {
	return func(o *sessionOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSink sets where exported images are saved. The default is a
// MemorySink.
func WithSink(s Sink) SessionOption {
	return func(o *sessionOptions) {
		o.sink = s
	}
}

// WithGate sets the gate run by SaveWithGate.
func WithGate(g Gate) SessionOption {
	return func(o *sessionOptions) {
		o.gate = g
	}
}

// WithBlurParams sets the initial brush size, blur intensity and style.
func WithBlurParams(p BlurParams) SessionOption {
	return func(o *sessionOptions) {
		o.params = p.sanitize()
	}
}

// WithDisplayGeometry sets the initial viewport size. Without it, and
// until SetDisplayGeometry is called, exports use the fallback geometry.
func WithDisplayGeometry(g DisplayGeometry) SessionOption {
	return func(o *sessionOptions) {
		o.geometry = g
	}
}

// WithLanguage selects the language of event reasons. Unsupported
// languages fall back to English.
func WithLanguage(tag language.Tag) SessionOption {
	return func(o *sessionOptions) {
		o.lang = tag
	}
}

// WithLogger sets the session's logger instead of the package logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = l
	}
}
