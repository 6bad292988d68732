package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epicycles/internal/canvas"
	"github.com/olivier-w/epicycles/internal/curve"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/sound"
	"github.com/olivier-w/epicycles/internal/ui"
	"github.com/olivier-w/epicycles/internal/xyaudio"
)

const (
	exportPoints     = 4096
	exportSampleRate = 44100
)

type options struct {
	preset       string
	pointsFile   string
	audioFile    string
	audioFrames  int
	samples      int
	backend      fourier.Backend
	fps          int
	period       time.Duration
	velocity     float64
	resolution   int
	circlePoints int
	color        canvas.Profile
	headless     int
	exportWAV    string
	listen       bool
	list         bool
	debug        bool
}

func parseFlags(args []string) (options, error) {
	def := ui.DefaultConfig()
	fs := flag.NewFlagSet("epicycles", flag.ContinueOnError)

	var o options
	var backendName, colorName string
	fs.StringVar(&o.preset, "preset", def.Preset, "built-in curve: "+strings.Join(curve.PresetNames(), ", "))
	fs.StringVar(&o.pointsFile, "points", "", "trace the points in `FILE`, one \"x,y\" pair per line")
	fs.StringVar(&o.audioFile, "audio", "", "trace an XY oscilloscope `FILE` (left=x, right=y): "+strings.Join(xyaudio.SupportedExts, ", "))
	fs.IntVar(&o.audioFrames, "frames-from-audio", xyaudio.DefaultFrames, "stereo frames read from -audio")
	fs.IntVar(&o.samples, "samples", def.Samples, fmt.Sprintf("samples taken from a preset (at least %d)", curve.MinSamples))
	fs.StringVar(&backendName, "fft", def.Backend.Name(), "FFT backend: gonum, radix2, godsp, dft")
	fs.IntVar(&o.fps, "fps", def.FPS, "frames per second")
	fs.DurationVar(&o.period, "period", def.Period, "wall time of one lap at velocity 1")
	fs.Float64Var(&o.velocity, "velocity", def.Velocity, "signed speed; whole sub-steps per frame")
	fs.IntVar(&o.resolution, "resolution", 0, "number of circles (0 = all)")
	fs.IntVar(&o.circlePoints, "circle-points", def.PointsPerCircle, "outline points per circle")
	fs.StringVar(&colorName, "color", "auto", "color mode: auto, truecolor, 256, 16, none")
	fs.IntVar(&o.headless, "headless", 0, "step `N` frames without the TUI and print the trace")
	fs.StringVar(&o.exportWAV, "export-wav", "", "write one reconstructed lap to `FILE` as XY audio")
	fs.BoolVar(&o.listen, "listen", false, "play the chain as XY audio (toggle with a)")
	fs.BoolVar(&o.list, "list", false, "list the built-in curves and exit")
	fs.BoolVar(&o.debug, "debug", false, "write a debug log to "+filepath.Join(logDir, logFileName))

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	b, err := fourier.ParseBackend(backendName)
	if err != nil {
		return options{}, err
	}
	o.backend = b

	if o.color, err = canvas.ParseProfile(colorName); err != nil {
		return options{}, err
	}

	if o.fps <= 0 {
		return options{}, fmt.Errorf("-fps must be positive, got %d", o.fps)
	}
	if o.period <= 0 {
		return options{}, fmt.Errorf("-period must be positive, got %v", o.period)
	}
	if o.pointsFile != "" && o.audioFile != "" {
		return options{}, errors.New("-points and -audio are mutually exclusive")
	}
	return o, nil
}

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses args, runs the program and returns the process exit code.
// The debug log is closed before it returns.
func runMain(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logFile := setupLogging(o.debug)
	defer func() {
		if logFile != nil {
			log.SetOutput(io.Discard)
			logFile.Close()
		}
	}()

	if err := run(o, stdout); err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(o options, stdout io.Writer) error {
	if o.list {
		for _, p := range curve.Presets() {
			names := make([]string, len(p.Params))
			for i, param := range p.Params {
				names[i] = fmt.Sprintf("%s=%g", param.Name, param.Default)
			}
			fmt.Fprintf(stdout, "%-12s %s\n", p.Name, strings.Join(names, " "))
		}
		return nil
	}

	c, title, err := loadCurve(o)
	if err != nil {
		return err
	}

	if o.exportWAV != "" {
		if err := exportLap(o, c); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", o.exportWAV)
		return nil
	}
	if o.headless > 0 {
		return runHeadless(o, c, stdout)
	}

	cfg := ui.Config{
		FPS:             o.fps,
		Period:          o.period,
		Velocity:        o.velocity,
		Resolution:      o.resolution,
		Samples:         o.samples,
		PointsPerCircle: o.circlePoints,
		Preset:          o.preset,
		Title:           title,
		Backend:         o.backend,
		Profile:         o.color,
	}
	if o.pointsFile != "" || o.audioFile != "" {
		cfg.Curve = c
	}
	if o.listen {
		s, err := sound.New()
		if err != nil {
			return fmt.Errorf("opening audio device: %w", err)
		}
		defer s.Close()
		s.TogglePause()
		cfg.Sound = s
	}
	log.Printf("starting tui: %s colour, %s fft", o.color, o.backend.Name())
	model, err := ui.New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// loadCurve reads the curve named by the flags: a points file, an XY audio
// file or a sampled preset, in that order of precedence.
func loadCurve(o options) (curve.Curve, string, error) {
	switch {
	case o.pointsFile != "":
		f, err := os.Open(o.pointsFile)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		pts, err := readPoints(f)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", o.pointsFile, err)
		}
		if len(pts) == 0 {
			return nil, "", fmt.Errorf("%s: %w", o.pointsFile, epicycle.ErrEmptyCurve)
		}
		log.Printf("loaded %d points from %s", len(pts), o.pointsFile)
		return curve.FromPoints(pts), filepath.Base(o.pointsFile), nil

	case o.audioFile != "":
		c, err := xyaudio.Load(o.audioFile, o.audioFrames)
		if err != nil {
			return nil, "", err
		}
		log.Printf("loaded %d frames from %s", len(c), o.audioFile)
		return c, xyaudio.Title(o.audioFile), nil
	}

	p, err := curve.Preset(o.preset)
	if err != nil {
		return nil, "", err
	}
	c, err := curve.Sample(p, o.samples, nil)
	if err != nil {
		return nil, "", fmt.Errorf("sampling %s: %w", p.Name, err)
	}
	return c, p.Name, nil
}

// readPoints parses one "x,y" (or "x y") pair per line. Blank lines and lines
// starting with '#' are skipped.
func readPoints(r io.Reader) ([]curve.Point, error) {
	var pts []curve.Point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 values, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		pts = append(pts, curve.Pt(x, y))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}

func newEngine(o options, c curve.Curve) (*epicycle.Engine, error) {
	e := epicycle.New(
		epicycle.WithBackend(o.backend),
		epicycle.WithPointsPerCircle(o.circlePoints),
		epicycle.WithVelocity(o.velocity),
	)
	if err := e.StartTracing(c); err != nil {
		return nil, err
	}
	if o.resolution > 0 {
		e.SetResolution(min(o.resolution, e.CoefficientCount()))
	}
	return e, nil
}

// runHeadless steps the engine o.headless times at a fixed 1/fps frame and
// prints the tip after each frame as "frame x y".
func runHeadless(o options, c curve.Curve, stdout io.Writer) error {
	e, err := newEngine(o, c)
	if err != nil {
		return err
	}
	dt := 1 / (float64(o.fps) * o.period.Seconds())

	w := bufio.NewWriter(stdout)
	for i := range o.headless {
		if err := e.Step(dt); err != nil {
			return err
		}
		tip := e.Tip()
		fmt.Fprintf(w, "%d %.6f %.6f\n", i+1, real(tip), imag(tip))
	}
	log.Printf("headless: %d frames, %d trace points", o.headless, len(e.TracePoints()))
	return w.Flush()
}

// exportLap writes one lap of the reconstructed curve, at the configured
// resolution, as stereo XY audio.
func exportLap(o options, c curve.Curve) error {
	e, err := newEngine(o, c)
	if err != nil {
		return err
	}
	pts := e.Reconstruct(exportPoints)

	f, err := os.Create(o.exportWAV)
	if err != nil {
		return err
	}
	if err := xyaudio.WriteWAV(f, pts, exportSampleRate); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", o.exportWAV, err)
	}
	return f.Close()
}
