// Package ui is the terminal frame driver: it ticks the epicycle engine at a
// fixed frame rate, draws it on a braille canvas and maps keys and mouse
// drags onto engine operations.
package ui

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/epicycles/internal/canvas"
	"github.com/olivier-w/epicycles/internal/clock"
	"github.com/olivier-w/epicycles/internal/curve"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/util"
)

const (
	// canvasTop is the screen row of the first canvas line.
	canvasTop = 3
	// canvasLeft is the indent before every canvas line.
	canvasLeft = 2
	// footerLines counts the rows below the canvas.
	footerLines = 7

	zoomStep = 1.25
	panStep  = 0.1

	// soundLapPoints is one lap of XY audio, 100 laps a second at 44.1 kHz.
	soundLapPoints = 441
	volumeStep     = 0.1
	// traceLaps is how many laps of the trace stay on screen.
	traceLaps = 2
)

// Sounder plays the traced curve as XY audio.
type Sounder interface {
	SetCurve(pts []curve.Point)
	TogglePause()
	Paused() bool
	AdjustVolume(delta float64)
	Volume() float64
}

// Config collects the command-line settings of the frame driver.
type Config struct {
	FPS int
	// Period is the wall time one lap takes at velocity 1.
	Period   time.Duration
	Velocity float64
	// Resolution caps the number of circles; 0 uses all of them.
	Resolution      int
	Samples         int
	PointsPerCircle int
	Preset          string
	// Curve, when set, is traced instead of Preset.
	Curve   curve.Curve
	Title   string
	Backend fourier.Backend
	Profile canvas.Profile
	// Sound, when set, follows the chain as XY audio; "a" toggles it.
	Sound Sounder
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		FPS:             60,
		Period:          8 * time.Second,
		Velocity:        epicycle.DefaultVelocity,
		Samples:         256,
		PointsPerCircle: epicycle.DefaultPointsPerCircle,
		Preset:          "heart",
		Backend:         fourier.Gonum,
		Profile:         canvas.ProfileTrueColor,
	}
}

// Model is the Bubbletea model for the epicycles TUI.
type Model struct {
	cfg    Config
	engine *epicycle.Engine
	clock  *clock.Clock
	scene  *canvas.Scene
	lap    progress.Model

	view   canvas.Viewport
	target canvas.Viewport
	zoom   easer
	speed  easer

	presets []curve.Parametric
	preset  int // -1 when the curve was sketched or loaded
	params  []float64
	param   int
	source  curve.Curve
	title   string

	mouse    MouseMode
	dragging bool
	lastCol  int
	lastRow  int

	spectrum  bool
	status    string
	statusErr bool
	statusAt  time.Time
	started   time.Time

	width    int
	height   int
	quitting bool
}

// New builds a Model and starts tracing the configured curve.
func New(cfg Config) (Model, error) {
	def := DefaultConfig()
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.Period <= 0 {
		cfg.Period = def.Period
	}
	if cfg.Samples <= 0 {
		cfg.Samples = def.Samples
	}
	if cfg.PointsPerCircle <= 0 {
		cfg.PointsPerCircle = def.PointsPerCircle
	}
	if cfg.Backend == nil {
		cfg.Backend = def.Backend
	}

	clk := clock.New(nil)
	clk.SetScale(1 / cfg.Period.Seconds())

	m := Model{
		cfg: cfg,
		engine: epicycle.New(
			epicycle.WithBackend(cfg.Backend),
			epicycle.WithPointsPerCircle(cfg.PointsPerCircle),
			epicycle.WithVelocity(cfg.Velocity),
		),
		clock:   clk,
		lap:     newLapBar(),
		view:    canvas.DefaultViewport(),
		target:  canvas.DefaultViewport(),
		zoom:    newEaser(cfg.FPS, 6, 1, canvas.DefaultViewport().HalfHeight),
		speed:   newEaser(cfg.FPS, 4, 1, cfg.Velocity),
		presets: curve.Presets(),
		preset:  -1,
		started: time.Now(),
	}
	m.scene = newScene(m.engine)

	if len(cfg.Curve) > 0 {
		m.title = cfg.Title
		if m.title == "" {
			m.title = "custom curve"
		}
		if err := m.restart(cfg.Curve, true); err != nil {
			return Model{}, err
		}
		m.settleView()
		return m, nil
	}

	name := cfg.Preset
	if name == "" {
		name = def.Preset
	}
	if _, err := curve.Preset(name); err != nil {
		return Model{}, err
	}
	for i, p := range m.presets {
		if p.Name == name {
			if err := m.loadPreset(i); err != nil {
				return Model{}, err
			}
		}
	}
	m.settleView()
	return m, nil
}

// settleView skips the zoom animation, used for the first frame.
func (m *Model) settleView() {
	m.view = m.target
	m.zoom.jump(m.target.HalfHeight)
}

// newScene registers the drawing layers, back to front.
func newScene(e *epicycle.Engine) *canvas.Scene {
	s := &canvas.Scene{}
	s.Register(canvas.Layer{
		Name:  "input",
		Color: canvas.RGB{R: 90, G: 90, B: 90},
		Source: func() [][]curve.Point {
			pts := e.InputCurvePoints()
			if e.State() == epicycle.Tracing && len(pts) > 1 {
				pts = append(pts, pts[0])
			}
			return canvas.Polylines(pts)
		},
	})
	s.Register(canvas.Layer{
		Name:    "chain",
		Color:   canvas.RGB{R: 255, G: 140, B: 0},
		Palette: canvas.Rainbow(0.08, 0.6),
		Source:  e.ChainCircles,
	})
	dim := canvas.RGB{R: 60, G: 60, B: 80}
	s.Register(canvas.Layer{
		Name:   "trace",
		Color:  canvas.RGB{R: 255, G: 255, B: 255},
		Fade:   &dim,
		Source: func() [][]curve.Point {
			return e.RecentTrace(traceLaps)
		},
	})
	return s
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.cfg.FPS), tea.SetWindowTitle(windowTitle(m.title)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case frameMsg:
		m.frame()
		return m, frameCmd(m.cfg.FPS)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

// frame advances the easers and the engine by one tick.
func (m *Model) frame() {
	m.engine.SetVelocity(m.speed.step())
	m.view.HalfHeight = m.zoom.step()
	m.view.Center = m.target.Center

	if err := m.engine.Step(m.clock.Tick()); err != nil {
		log.Printf("frame skipped: %v", err)
		m.setStatus(fmt.Sprintf("frame skipped: %v", err), true)
	}
	if m.status != "" && time.Since(m.statusAt) > 5*time.Second {
		m.status = ""
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		m.startTracing()
	case "c":
		m.clearToSketch()
		m.mouse = MouseSketch
		m.setStatus("drag with the mouse to sketch a curve", false)
		return m, tea.SetWindowTitle(windowTitle(m.title))
	case "+", "=":
		m.speed.set(m.speed.target + 1)
	case "-", "_":
		m.speed.set(m.speed.target - 1)
	case "]":
		if r := m.engine.Resolution(); r < m.engine.CoefficientCount() {
			m.engine.SetResolution(r + 1)
			m.updateSound()
		}
	case "[":
		if m.engine.SetResolution(m.engine.Resolution() - 1) {
			m.updateSound()
		}
	case "n":
		m.cyclePreset(1)
		return m, tea.SetWindowTitle(windowTitle(m.title))
	case "p":
		m.cyclePreset(-1)
		return m, tea.SetWindowTitle(windowTitle(m.title))
	case "tab":
		if len(m.params) > 0 {
			m.param = (m.param + 1) % len(m.params)
		}
	case "left":
		m.adjustParam(-1)
	case "right":
		m.adjustParam(1)
	case "z":
		m.zoomBy(1 / zoomStep)
	case "x":
		m.zoomBy(zoomStep)
	case "h":
		m.panBy(-panStep, 0)
	case "l":
		m.panBy(panStep, 0)
	case "k":
		m.panBy(0, panStep)
	case "j":
		m.panBy(0, -panStep)
	case "f":
		m.fit()
	case "m":
		m.mouse = m.mouse.Next()
	case "s":
		m.spectrum = !m.spectrum
	case "a":
		if m.cfg.Sound != nil {
			m.cfg.Sound.TogglePause()
		}
	case ",", ".":
		if m.cfg.Sound != nil {
			delta := volumeStep
			if msg.String() == "," {
				delta = -delta
			}
			m.cfg.Sound.AdjustVolume(delta)
		}
	}
	return m, nil
}

// startTracing restarts the current curve, or turns a fresh sketch into one.
func (m *Model) startTracing() {
	if m.engine.State() == epicycle.Idle && len(m.source) == 0 {
		m.finishSketch()
		return
	}
	if len(m.source) == 0 {
		return
	}
	if err := m.restart(m.source, false); err != nil {
		m.setStatus(err.Error(), true)
	}
}

// restart hands c to the engine and resets the clock.
func (m *Model) restart(c curve.Curve, fit bool) error {
	if err := m.engine.StartTracing(c); err != nil {
		return err
	}
	m.source = c
	if r := m.cfg.Resolution; r > 0 {
		m.engine.SetResolution(min(r, m.engine.CoefficientCount()))
	}
	m.clock.Reset()
	m.updateSound()
	log.Printf("tracing %q: %d points, resolution %d", m.title, len(c), m.engine.Resolution())
	if fit {
		m.fit()
	}
	return nil
}

func (m *Model) updateSound() {
	if m.cfg.Sound != nil {
		m.cfg.Sound.SetCurve(m.engine.Reconstruct(soundLapPoints))
	}
}

func (m *Model) fit() {
	m.target = canvas.Fit(m.source.Points())
	m.view.Center = m.target.Center
	m.zoom.set(m.target.HalfHeight)
}

func (m *Model) cyclePreset(delta int) {
	n := len(m.presets)
	if n == 0 {
		return
	}
	i := m.preset + delta
	if m.preset < 0 && delta < 0 {
		i = n - 1
	}
	i = ((i % n) + n) % n
	if err := m.loadPreset(i); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) loadPreset(i int) error {
	p := m.presets[i]
	params := curve.Defaults(p)
	c, err := curve.Sample(p, m.cfg.Samples, params)
	if err != nil {
		return fmt.Errorf("sampling %s: %w", p.Name, err)
	}
	m.preset = i
	m.params = params
	m.param = 0
	m.title = p.Name
	return m.restart(c, true)
}

// adjustParam nudges the selected preset parameter by a tenth of its default
// and re-samples. A value the preset cannot evaluate is rolled back.
func (m *Model) adjustParam(dir float64) {
	if m.preset < 0 || len(m.params) == 0 {
		return
	}
	p := m.presets[m.preset]
	def := p.Params[m.param].Default
	step := math.Max(math.Abs(def)*0.1, 0.1)

	next := append([]float64(nil), m.params...)
	next[m.param] += dir * step
	c, err := curve.Sample(p, m.cfg.Samples, next)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.params = next
	if err := m.restart(c, false); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) zoomBy(f float64) {
	m.target.Zoom(f)
	m.zoom.set(m.target.HalfHeight)
}

// panBy moves the view by fractions of its height.
func (m *Model) panBy(fx, fy float64) {
	h := m.target.HalfHeight * 2
	m.target.Pan(fx*h, fy*h)
	m.view.Center = m.target.Center
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.zoomBy(1 / zoomStep)
		return m
	case tea.MouseButtonWheelDown:
		m.zoomBy(zoomStep)
		return m
	}

	cols, rows := m.canvasSize()
	col, row := msg.X-canvasLeft, msg.Y-canvasTop
	inside := col >= 0 && col < cols && row >= 0 && row < rows

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m
		}
		m.dragging = true
		m.lastCol, m.lastRow = col, row
		if m.mouse == MouseSketch {
			m.clearToSketch()
			m.engine.Append(m.view.CellToWorld(col, row, cols, rows))
		}
	case tea.MouseActionMotion:
		if !m.dragging || !inside {
			return m
		}
		if m.mouse == MouseSketch {
			m.engine.Append(m.view.CellToWorld(col, row, cols, rows))
		} else {
			d := m.view.WorldPerDot(rows * 4)
			m.target.Pan(-float64(col-m.lastCol)*2*d, float64(row-m.lastRow)*4*d)
			m.view.Center = m.target.Center
		}
		m.lastCol, m.lastRow = col, row
	case tea.MouseActionRelease:
		if !m.dragging {
			return m
		}
		m.dragging = false
		if m.mouse == MouseSketch {
			m.finishSketch()
		}
	}
	return m
}

// clearToSketch empties the engine for a new sketch. The curve no longer
// comes from a preset, so the parameter controls go away with it.
func (m *Model) clearToSketch() {
	m.engine.Clear()
	m.updateSound()
	m.source = nil
	m.title = "sketch"
	m.preset = -1
	m.params = nil
	m.param = 0
}

// finishSketch closes and resamples the authored points and traces them.
func (m *Model) finishSketch() {
	pts := m.engine.InputCurvePoints()
	if len(pts) < 2 {
		return
	}
	if err := m.restart(curve.Sketch(pts), false); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.preset = -1
	m.params = nil
	m.param = 0
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
	m.statusAt = time.Now()
}

// canvasSize returns the canvas dimensions in cells for the current window.
func (m Model) canvasSize() (cols, rows int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cols = w - canvasLeft*2
	if m.spectrum {
		cols -= spectrumWidth + 2
	}
	rows = h - canvasTop - footerLines
	return max(cols, 10), max(rows, 4)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols, rows := m.canvasSize()
	w := cols + canvasLeft*2

	c := canvas.New(cols, rows, m.cfg.Profile)
	m.scene.Draw(c, m.view)
	var body strings.Builder
	for i, line := range strings.Split(c.String(), "\n") {
		if i > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(spaces(canvasLeft) + line)
	}
	board := body.String()
	if m.spectrum {
		panel := renderSpectrum(m.engine.Coefficients(), m.engine.Resolution(), rows)
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, spaces(2), panel)
	}

	header := headerStyle.Render("epicycles") + "  " + titleStyle.Render(m.title)
	if icon := m.mouse.Icon(); icon != "" {
		header += "  " + subtleStyle.Render(icon)
	}
	if m.cfg.Sound != nil && !m.cfg.Sound.Paused() {
		header += "  " + subtleStyle.Render(fmt.Sprintf("[sound] vol %d%%", int(math.Round(m.cfg.Sound.Volume()*100))))
	}

	state := m.engine.State().String()
	if m.dragging && m.mouse == MouseSketch {
		state = "sketching"
	}
	tip := m.engine.Tip()
	leftText := fmt.Sprintf("%s  %s  circles %d/%d",
		state,
		util.FormatSpeed(m.speed.target),
		m.engine.Resolution(),
		m.engine.CoefficientCount(),
	)
	rightText := fmt.Sprintf("tip %s  t %.2f  %s",
		util.FormatPoint(real(tip), imag(tip)),
		m.engine.ElapsedTime(),
		util.FormatDuration(time.Since(m.started)),
	)
	gap := w - len(leftText) - len(rightText) - 4
	statusLine := statusStyle.Render(leftText) + spaces(max(gap, 2)) + timeStyle.Render(rightText)

	lapLine := timeStyle.Render("lap ") + renderLapBar(m.lap, m.engine.LapProgress(), w-8)

	var paramLine string
	if m.preset >= 0 {
		paramLine = renderParams(m.presets[m.preset].Params, m.params, m.param)
	}

	msgLine := ""
	if m.status != "" {
		if m.statusErr {
			msgLine = warnStyle.Render(m.status)
		} else {
			msgLine = subtleStyle.Render(m.status)
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + header + "\n")
	b.WriteString("\n")
	b.WriteString(board + "\n")
	b.WriteString("\n")
	b.WriteString("  " + statusLine + "\n")
	b.WriteString("  " + lapLine + "\n")
	b.WriteString("  " + paramLine + "\n")
	b.WriteString("  " + msgLine + "\n")
	b.WriteString("\n")
	b.WriteString("  " + helpStyle.Render(helpText(len(m.params) > 0, m.cfg.Sound != nil)) + "\n")
	return b.String()
}

func windowTitle(title string) string {
	if title == "" {
		return "epicycles"
	}
	return title + " · epicycles"
}
