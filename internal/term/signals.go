package term

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/puddle/internal/puddle"
)

// WatchSignals turns SIGINT and SIGTERM into a shutdown request. The
// returned function stops watching.
func WatchSignals(flags *puddle.Flags) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ch:
				flags.RequestShutdown()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
