package blurmate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/junhyuckkkk/BlurMate/internal/imageio"
)

// Sink persists a finished image, typically into the user's photo library.
//
// Save is called from the export worker. A Sink should return an error
// wrapping ErrPermissionDenied or fs.ErrPermission when it is not allowed
// to write; every other error is reported as a persistence failure. Save
// should honor ctx, which is cancelled when the export times out.
type Sink interface {
	Save(ctx context.Context, img *Image) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, img *Image) error

// Save calls f(ctx, img).
func (f SinkFunc) Save(ctx context.Context, img *Image) error {
	return f(ctx, img)
}

type sessionIDKey struct{}

// withSessionID returns a context carrying the exporting session's id.
func withSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionID returns the id of the session whose export passed ctx to a
// Sink.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}

// MemorySink keeps saved images in memory. It is the default sink of a
// session and is safe for concurrent use.
type MemorySink struct {
	mu     sync.Mutex
	images []*Image
}

// Save records img.
func (s *MemorySink) Save(ctx context.Context, img *Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.images = append(s.images, img)
	s.mu.Unlock()
	return nil
}

// Images returns the saved images in save order.
func (s *MemorySink) Images() []*Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Image(nil), s.images...)
}

// Last returns the most recently saved image, or nil.
func (s *MemorySink) Last() *Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.images) == 0 {
		return nil
	}
	return s.images[len(s.images)-1]
}

// Len returns the number of saved images.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// DefaultFilePrefix names exported files when FileSink.Prefix is empty.
const DefaultFilePrefix = "blurmate"

// FileSink writes each exported image to Dir as
// <Prefix>-<session id>.<png|jpg>. A later export of the same session
// replaces the earlier file.
type FileSink struct {
	// Dir is the output directory. It must exist.
	Dir string

	// Prefix starts every file name. Empty means DefaultFilePrefix.
	Prefix string

	// Format is "png" (default) or "jpeg".
	Format string

	// Quality is the JPEG quality, 1..100. Zero selects a default.
	Quality int
}

// Path returns the file a session's export is written to.
func (s *FileSink) Path(sessionID string) (string, error) {
	f, err := s.format()
	if err != nil {
		return "", err
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultFilePrefix
	}
	if sessionID == "" {
		sessionID = "untitled"
	}
	return filepath.Join(s.Dir, prefix+"-"+sessionID+f.Ext()), nil
}

func (s *FileSink) format() (imageio.Format, error) {
	if s.Format == "" {
		return imageio.FormatPNG, nil
	}
	return imageio.ParseFormat(s.Format)
}

// Save encodes img into its file. Permission errors are reported as
// ErrPermissionDenied.
func (s *FileSink) Save(ctx context.Context, img *Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, _ := SessionID(ctx)
	path, err := s.Path(id)
	if err != nil {
		return err
	}
	f, _ := s.format()

	if err := imageio.Save(path, img.rgba, f, s.Quality); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
		return err
	}
	return nil
}
