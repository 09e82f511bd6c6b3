package batch

import (
	"github.com/WIZARDISHUNGRY/logo-synth/internal/logger"
	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Job states.
const (
	StateQueued    = "queued"
	StateRendering = "rendering"
	StateEncoding  = "encoding"
	StateDone      = "done"
	StateSkipped   = "skipped"
	StateFailed    = "failed"
)

var lifecycleEvents = fsm.Events{
	{Name: "render", Src: []string{StateQueued}, Dst: StateRendering},
	{Name: "encode", Src: []string{StateRendering}, Dst: StateEncoding},
	{Name: "finish", Src: []string{StateEncoding}, Dst: StateDone},
	{Name: "skip", Src: []string{StateRendering}, Dst: StateSkipped},
	{Name: "fail", Src: []string{StateQueued, StateRendering, StateEncoding}, Dst: StateFailed},
}

func newLifecycle(log *logrus.Entry) *fsm.FSM {
	return fsm.NewFSM(
		StateQueued,
		lifecycleEvents,
		fsm.Callbacks{
			"after_event": func(e *fsm.Event) {
				if e.Src != e.Dst {
					log.Tracef("[%s -> %s] %s", e.Src, e.Dst, e.Event)
				}
			},
		},
	)
}

// transition fires event on f. Firing an event that does not change the
// state is not an error.
func transition(f *fsm.FSM, event string) error {
	err := f.Event(event)
	if _, ok := err.(fsm.NoTransitionError); err != nil && !ok {
		return err
	}
	return nil
}

// LifecycleGraph is the job state machine as graphviz source.
func LifecycleGraph() string {
	return fsm.Visualize(newLifecycle(logrus.NewEntry(logger.Std())))
}
