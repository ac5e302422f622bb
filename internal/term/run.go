package term

import (
	"context"
	"time"

	"sand-ca/internal/core"

	"github.com/gdamore/tcell/v2"
)

// frameInterval paces redraws independently of the tick rate.
const frameInterval = 16 * time.Millisecond

// Run drives sim on screen until the user quits or ctx is cancelled. The
// caller owns the screen and must Init it before and Fini it after.
func Run(ctx context.Context, screen tcell.Screen, sim core.Sim, tps int, seed int64) error {
	v := NewView(screen, sim, seed)
	screen.EnableMouse()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	step := core.NewFixedStep(tps)
	frame := time.NewTicker(frameInterval)
	defer frame.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case now := <-frame.C:
			for n := step.Advance(now); n > 0; n-- {
				v.Tick()
			}
			v.Draw()
			screen.Show()
		}
	}
}
