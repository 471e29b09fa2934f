// Command blurmate blurs the painted regions of a photo.
//
// Strokes are given in display coordinates, as a user would paint them on a
// viewport of the -display size:
//
//	blurmate -in photo.jpg -out out -display 500x250 \
//	    -brush 20 -blur 5 -stroke "100,100 140,120" -stroke "300,80"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	blurmate "github.com/junhyuckkkk/BlurMate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// strokeList collects repeated -stroke flags.
type strokeList [][]blurmate.Point

func (l *strokeList) String() string {
	parts := make([]string, len(*l))
	for i, pts := range *l {
		s := make([]string, len(pts))
		for j, p := range pts {
			s[j] = strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
		}
		parts[i] = strings.Join(s, " ")
	}
	return strings.Join(parts, "; ")
}

func (l *strokeList) Set(v string) error {
	pts, err := parseStroke(v)
	if err != nil {
		return err
	}
	*l = append(*l, pts)
	return nil
}

type config struct {
	in      string
	out     string
	format  string
	prefix  string
	display blurmate.DisplayGeometry
	brush   float64
	blur    float64
	style   blurmate.BlurStyle
	strokes strokeList
	timeout time.Duration
	lang    language.Tag
	preview string
	verbose bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("blurmate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg     config
		display = fs.String("display", "", "viewport size the strokes were painted on, WxH (default: 300 wide)")
		style   = fs.String("style", "gaussian", "blur style: gaussian, mosaic or pixel")
		lang    = fs.String("lang", "en", "language of status messages (en, ko)")
	)
	fs.StringVar(&cfg.in, "in", "", "input image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	fs.StringVar(&cfg.out, "out", ".", "output directory")
	fs.StringVar(&cfg.format, "format", "png", "output format: png or jpeg")
	fs.StringVar(&cfg.prefix, "prefix", blurmate.DefaultFilePrefix, "output file name prefix")
	fs.Float64Var(&cfg.brush, "brush", blurmate.DefaultBrushSize, "brush diameter in display units")
	fs.Float64Var(&cfg.blur, "blur", blurmate.DefaultBlurIntensity, "blur intensity in display units")
	fs.Var(&cfg.strokes, "stroke", `stroke points "x,y x,y ..." in display units (repeatable)`)
	fs.DurationVar(&cfg.timeout, "timeout", blurmate.DefaultExportTimeout, "export timeout")
	fs.StringVar(&cfg.preview, "preview", "", "also write a display-size preview PNG to this path")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.in == "" {
		return nil, errors.New("-in is required")
	}
	if *display != "" {
		g, err := parseSize(*display)
		if err != nil {
			return nil, err
		}
		cfg.display = g
	}
	s, err := blurmate.ParseBlurStyle(*style)
	if err != nil {
		return nil, err
	}
	cfg.style = s
	tag, err := language.Parse(*lang)
	if err != nil {
		return nil, fmt.Errorf("invalid -lang %q: %w", *lang, err)
	}
	cfg.lang = tag
	return &cfg, nil
}

// parseSize parses "WxH".
func parseSize(s string) (blurmate.DisplayGeometry, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return blurmate.DisplayGeometry{}, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil {
		return blurmate.DisplayGeometry{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil {
		return blurmate.DisplayGeometry{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	g := blurmate.DisplayGeometry{Width: w, Height: h}
	if !g.Valid() {
		return blurmate.DisplayGeometry{}, fmt.Errorf("size %q must be positive", s)
	}
	return g, nil
}

// parseStroke parses space-separated "x,y" pairs.
func parseStroke(s string) ([]blurmate.Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("empty stroke")
	}
	pts := make([]blurmate.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q, want x,y", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", f, err)
		}
		p := blurmate.Pt(x, y)
		if !p.IsFinite() {
			return nil, fmt.Errorf("invalid point %q", f)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "blurmate:", err)
		return 2
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	blurmate.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	img, err := blurmate.LoadImage(cfg.in)
	if err != nil {
		fmt.Fprintln(stderr, "blurmate:", err)
		return 1
	}

	s := blurmate.NewSession(img,
		blurmate.WithSink(&blurmate.FileSink{Dir: cfg.out, Prefix: cfg.prefix, Format: cfg.format}),
		blurmate.WithTimeout(cfg.timeout),
		blurmate.WithLanguage(cfg.lang),
		blurmate.WithBlurParams(blurmate.BlurParams{BrushSize: cfg.brush, Intensity: cfg.blur, Style: cfg.style}),
		blurmate.WithDisplayGeometry(cfg.display))

	for _, pts := range cfg.strokes {
		for _, p := range pts {
			if err := s.DragUpdate(p); err != nil {
				fmt.Fprintln(stderr, "blurmate:", err)
				return 2
			}
		}
		s.DragEnd()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout+time.Second)
	defer cancel()

	if cfg.preview != "" {
		pv, err := s.Preview(ctx, true)
		if err != nil {
			fmt.Fprintln(stderr, "blurmate: preview:", err)
			return 1
		}
		if err := blurmate.NewImage(pv).SavePNG(cfg.preview); err != nil {
			fmt.Fprintln(stderr, "blurmate: preview:", err)
			return 1
		}
	}

	if err := s.Export(ctx); err != nil {
		fmt.Fprintln(stderr, "blurmate:", s.Describe(err))
		return 1
	}
	ev, err := s.Wait(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "blurmate:", err)
		return 1
	}
	if ev.State != blurmate.StateSucceeded {
		fmt.Fprintln(stderr, "blurmate:", ev.Reason)
		return 1
	}

	sink := s.Sink().(*blurmate.FileSink)
	path, _ := sink.Path(ev.SessionID)
	fmt.Fprintf(stdout, "%s (%dx%d) %s\n", ev.Reason, ev.Width, ev.Height, path)
	return 0
}
