package puddle

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/metrics"
	"github.com/san-kum/puddle/internal/palette"
	"github.com/san-kum/puddle/internal/physics"
	"github.com/san-kum/puddle/internal/rain"
)

const historyCapacity = 600

type Options struct {
	Config  *config.Config
	Surface Surface
	Flags   *Flags
	// Rand defaults to a source seeded from Config.Seed, or the clock when
	// the seed is zero.
	Rand   *rand.Rand
	Logger *log.Logger
}

// Engine advances and renders the ripple field, one frame per call to Frame.
type Engine struct {
	cfg     *config.Config
	surface Surface
	flags   *Flags
	log     *log.Logger

	pair    *field.Pair
	resize  *field.ResizeManager
	sim     physics.Simulator
	sched   *rain.Scheduler
	mapper  palette.Mapper
	metrics []metrics.Metric

	displacement  *metrics.Displacement
	energy        *metrics.Energy
	energyHistory *metrics.History

	frames   int
	drops    int
	lastDrop rain.Event
	paused   bool
	done     bool
}

// New validates the configuration, picks a palette the surface can show and
// allocates buffers for the surface's current size. A degenerate size at
// startup allocates a single cell and leaves a resize pending.
func New(o Options) (*Engine, error) {
	cfg := o.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := o.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	flags := o.Flags
	if flags == nil {
		flags = &Flags{}
	}

	requested, err := palette.Parse(cfg.Palette)
	if err != nil {
		return nil, err
	}
	pal, fellBack, err := palette.Select(requested, o.Surface.SupportsColors, cfg.Fallback)
	if err != nil {
		return nil, err
	}
	if fellBack {
		logger.Printf("terminal cannot show %s palette, using %s", requested.Name, pal.Name)
	}

	rows, cols := o.Surface.Dimensions()
	vp := field.ViewportState{Rows: rows, Cols: cols}
	pending := !vp.Valid()
	if pending {
		vp = field.ViewportState{Rows: 1, Cols: 1}
	}
	pair, err := field.NewPair(vp.Rows, vp.Cols)
	if err != nil {
		return nil, fmt.Errorf("allocate display buffers: %w", err)
	}
	resize := field.NewResizeManager(vp)
	if pending {
		resize.Request()
	}

	opts, err := cfg.PhysicsOptions()
	if err != nil {
		return nil, err
	}
	sim, err := physics.New(cfg.Simulator, opts)
	if err != nil {
		return nil, err
	}

	rng := o.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	sched, err := rain.NewScheduler(rng, cfg.FrameRate, cfg.Intensity, cfg.Drops())
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:           cfg,
		surface:       o.Surface,
		flags:         flags,
		log:           logger,
		pair:          pair,
		resize:        resize,
		sim:           sim,
		sched:         sched,
		mapper:        palette.Mapper{Palette: pal, MaxDisplacement: cfg.MaxDisplacement},
		displacement:  metrics.NewDisplacement(),
		energy:        metrics.NewEnergy(sim),
		energyHistory: metrics.NewHistory(historyCapacity),
	}
	e.metrics = []metrics.Metric{e.displacement, e.energy}

	logger.Printf("start: %s viewport, %s simulator, %s palette, damping %.3f, intensity %.2f (mean wait %.1f frames)",
		vp, sim.Name(), pal.Name, cfg.Damping, sched.Intensity(), sched.MeanWait())
	return e, nil
}

func (e *Engine) AddMetric(m metrics.Metric) { e.metrics = append(e.metrics, m) }

// Frame runs one loop iteration. An error is fatal: the buffers could not be
// reallocated and the run cannot continue.
func (e *Engine) Frame() error {
	if e.done {
		return nil
	}
	if e.flags.ShutdownRequested() {
		e.log.Printf("shutdown requested after %d frames", e.frames)
		e.done = true
		return nil
	}
	if e.flags.TakeResize() {
		e.resize.Request()
	}
	if e.resize.Pending() {
		if err := e.applyResize(); err != nil {
			return err
		}
	}

	if key, ok := e.surface.PollKey(); ok {
		e.handleKey(key)
		if e.done {
			return nil
		}
	}

	if !e.paused {
		e.Step()
	}
	e.Render()
	return nil
}

// Step drops at most one raindrop and advances the simulation once.
func (e *Engine) Step() {
	if ev, ok := e.sched.MaybePerturb(e.pair.Current); ok {
		e.lastDrop = ev
		e.drops++
	}
	e.sim.Step(e.pair, e.cfg.Damping)
	e.frames++

	for _, m := range e.metrics {
		m.Observe(e.pair)
	}
	e.energyHistory.Push(e.energy.Value())
}

func (e *Engine) applyResize() error {
	rows, cols := e.surface.Dimensions()
	before := e.resize.Viewport()
	applied, err := e.resize.Apply(e.pair, rows, cols)
	if err != nil {
		return fmt.Errorf("reallocate display buffers: %w", err)
	}
	if !applied {
		e.log.Printf("resize deferred: terminal reports %dx%d", rows, cols)
		return nil
	}
	if after := e.resize.Viewport(); after != before {
		e.log.Printf("resize %s -> %s", before, after)
	}
	return nil
}

func (e *Engine) handleKey(k rune) {
	switch k {
	case 'q', 'Q':
		e.log.Printf("quit after %d frames", e.frames)
		e.done = true
	case ' ':
		e.paused = !e.paused
	case 'r':
		e.pair.Reset()
		e.energyHistory.Reset()
	}
}

// Render draws the displayed buffer. It reads the viewport, not the surface,
// so a resize that has not been applied yet never desynchronizes the two.
func (e *Engine) Render() {
	vp := e.resize.Viewport()
	cur := e.pair.Current
	for r := 1; r <= vp.Rows; r++ {
		row := cur.Row(r)
		for c := 1; c <= vp.Cols; c++ {
			e.surface.DrawCell(r-1, c-1, e.mapper.Swatch(row[c]))
		}
	}
	e.surface.Present()
}

// Drop injects a raindrop at a viewport cell (0-based).
func (e *Engine) Drop(row, col int, magnitude float64) bool {
	ev := rain.Event{Row: row + 1, Col: col + 1, Magnitude: magnitude}
	if !rain.Drop(e.pair.Current, ev) {
		return false
	}
	e.lastDrop = ev
	e.drops++
	return true
}

func (e *Engine) Done() bool                      { return e.done }
func (e *Engine) Paused() bool                    { return e.paused }
func (e *Engine) Frames() int                     { return e.frames }
func (e *Engine) Drops() int                      { return e.drops }
func (e *Engine) LastDrop() rain.Event            { return e.lastDrop }
func (e *Engine) Pair() *field.Pair               { return e.pair }
func (e *Engine) Viewport() field.ViewportState   { return e.resize.Viewport() }
func (e *Engine) ResizePending() bool             { return e.resize.Pending() }
func (e *Engine) Palette() *palette.Palette       { return e.mapper.Palette }
func (e *Engine) Simulator() physics.Simulator    { return e.sim }
func (e *Engine) Scheduler() *rain.Scheduler      { return e.sched }
func (e *Engine) Config() *config.Config          { return e.cfg }
func (e *Engine) Flags() *Flags                   { return e.flags }
func (e *Engine) Displacement() float64           { return e.displacement.Value() }
func (e *Engine) Energy() float64                 { return e.energy.Value() }
func (e *Engine) EnergyHistory() *metrics.History { return e.energyHistory }
