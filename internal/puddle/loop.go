package puddle

import (
	"context"
	"time"
)

// Loop paces an engine to its configured frame rate. The sleep at the end of
// each frame is the only place the loop yields.
type Loop struct {
	engine *Engine
	period time.Duration
	sleep  func(time.Duration)
}

func NewLoop(e *Engine) *Loop {
	return &Loop{
		engine: e,
		period: time.Second / time.Duration(e.cfg.FrameRate),
		sleep:  time.Sleep,
	}
}

func (l *Loop) Period() time.Duration { return l.period }

// Run drives frames until the engine finishes, a frame fails, or ctx is
// canceled.
func (l *Loop) Run(ctx context.Context) error {
	for !l.engine.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		if err := l.engine.Frame(); err != nil {
			return err
		}
		if l.engine.Done() {
			break
		}
		if d := l.period - time.Since(start); d > 0 {
			l.sleep(d)
		}
	}
	return nil
}
