package machina

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amp-labs/amp-common/future"
)

// newLampDefinition builds the canonical two-state on/off machine used
// throughout the tests.
func newLampDefinition() *Definition {
	return NewDefinition().
		State("off").Permit("turnOn", "on").
		State("on").Permit("turnOff", "off")
}

// awaitSettled waits for a future with a test timeout so a broken settlement
// path fails the test instead of hanging it.
func awaitSettled(t *testing.T, fut *future.Future[any]) (any, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	value, err := fut.AwaitContext(ctx)
	if ctx.Err() != nil {
		t.Fatal("future did not settle within the test timeout")
	}
	return value, err
}

// recordingObserver captures every notification for assertions
type recordingObserver struct {
	mu          sync.Mutex
	Transitions [][3]string
	Entered     []string
	Rejected    [][2]string
	HookErrors  []error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{}
}

func (o *recordingObserver) OnTransition(from, to, transition string, payload any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Transitions = append(o.Transitions, [3]string{from, to, transition})
}

func (o *recordingObserver) OnStateEnter(state string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Entered = append(o.Entered, state)
}

func (o *recordingObserver) OnTransitionRejected(transition, state string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Rejected = append(o.Rejected, [2]string{transition, state})
}

func (o *recordingObserver) OnHookError(state string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.HookErrors = append(o.HookErrors, err)
}

func (o *recordingObserver) EnterCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.Entered)
}

func (o *recordingObserver) HookErrorCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.HookErrors)
}

// manualDeferred is a hand-rolled asynchronous result used to exercise the
// duck-typed Deferred path, independent of the future package.
type manualDeferred struct {
	mu    sync.Mutex
	fns   []func(value any, err error)
	done  bool
	value any
	err   error
}

func (d *manualDeferred) OnComplete(fn func(value any, err error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		fn(d.value, d.err)
		return
	}
	d.fns = append(d.fns, fn)
}

func (d *manualDeferred) complete(value any, err error) {
	d.mu.Lock()
	d.done = true
	d.value = value
	d.err = err
	fns := d.fns
	d.fns = nil
	d.mu.Unlock()

	for _, fn := range fns {
		fn(value, err)
	}
}
