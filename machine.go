// Package machina provides a minimal, explicitly-configured finite state
// machine engine. States and named transitions are declared up front and
// validated at construction; entering a state triggers a global entry hook
// and a per-state entry hook, in that order, and either hook's outcome —
// immediate or asynchronous — is propagated unchanged to the caller that
// initiated the transition.
package machina

import (
	"fmt"
	"sync"

	"github.com/amp-labs/amp-common/future"
	"github.com/google/uuid"
)

// Machine is a running state machine instance
type Machine interface {
	// ID returns the unique identifier of this instance
	ID() string

	// CurrentState returns the name of the presently active state
	CurrentState() string

	// Transition performs the named transition from the current state. The
	// state commit is synchronous; the returned future settles with the entry
	// hook's result, or fails with *TransitionError if the name is not
	// available from the current state (in which case the state is unchanged).
	Transition(name string, payload any) *future.Future[any]

	// Ready returns the asynchronous result of the implicit initial entry
	// performed at construction
	Ready() *future.Future[any]

	// ExportDiagram renders the configuration as a Graphviz digraph
	ExportDiagram() string

	AddObserver(observer Observer)
	RemoveObserver(observer Observer)
}

// StateMachine implements the Machine interface
type StateMachine struct {
	id           string
	def          *Definition
	currentState string
	ready        *future.Future[any]
	observers    *ObserverManager
	diagram      bool
	mutex        sync.RWMutex
}

// New validates the definition and creates a machine in the initial state.
// The initial entry runs through the identical hook path as any transition,
// with empty oldState and transition name; its asynchronous result is
// available through Ready. The definition is referenced, not copied, and must
// not be mutated afterwards.
func New(def *Definition, initialState string, opts ...Option) (Machine, error) {
	if err := validate(def, initialState); err != nil {
		return nil, err
	}

	sm := &StateMachine{
		id:        uuid.NewString(),
		def:       def,
		observers: NewObserverManager(),
		diagram:   true,
	}

	for _, opt := range opts {
		opt(sm)
	}

	sm.currentState = initialState
	sm.ready = sm.enterState(nil, initialState, "", "")
	sm.observers.NotifyStateEnter(initialState)

	return sm, nil
}

// ID returns the unique identifier of this instance
func (sm *StateMachine) ID() string {
	return sm.id
}

// CurrentState returns the current state
func (sm *StateMachine) CurrentState() string {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

// Ready returns the asynchronous result of the initial entry
func (sm *StateMachine) Ready() *future.Future[any] {
	return sm.ready
}

// Transition performs the named transition from the current state.
//
// The current state is committed before any hook runs, so a caller observing
// CurrentState immediately after this returns already sees the destination,
// even while the destination's hook is still pending. Transitions are
// deliberately not queued against pending hook results: a second call issued
// while a prior hook is still pending operates against the already-updated
// state.
func (sm *StateMachine) Transition(name string, payload any) *future.Future[any] {
	sm.mutex.Lock()
	from := sm.currentState
	target, ok := sm.def.destination(from, name)
	if !ok {
		sm.mutex.Unlock()
		sm.observers.NotifyTransitionRejected(name, from)
		return failedFuture(NewInvalidTransitionError(name, from))
	}
	sm.currentState = target
	sm.mutex.Unlock()

	sm.observers.NotifyTransition(from, target, name, payload)

	fut := sm.enterState(payload, target, from, name)
	sm.observers.NotifyStateEnter(target)

	return fut
}

// AddObserver adds an observer to the machine
func (sm *StateMachine) AddObserver(observer Observer) {
	sm.observers.AddObserver(observer)
}

// RemoveObserver removes an observer from the machine
func (sm *StateMachine) RemoveObserver(observer Observer) {
	sm.observers.RemoveObserver(observer)
}

// enterState invokes the global hook, then the entered state's hook, and
// returns a future that settles with the per-state hook's result. The state
// commit has already happened by the time this runs; hook failures leave the
// machine in the new state.
func (sm *StateMachine) enterState(payload any, newState, oldState, transition string) *future.Future[any] {
	fut, promise := future.New[any]()

	if err := invokeHook(sm.def.onEnter, payload, newState, oldState, transition); err != nil {
		sm.observers.NotifyHookError(newState, err)
		promise.Failure(err)
		return fut
	}

	sd := sm.def.states[newState]
	if sd == nil || sd.onEntry == nil {
		promise.Success(nil)
		return fut
	}

	result, err := invokeEnter(sd.onEntry, payload, newState, oldState, transition)
	if err != nil {
		sm.observers.NotifyHookError(newState, err)
		promise.Failure(err)
		return fut
	}

	switch r := result.(type) {
	case *future.Future[any]:
		r.OnSuccess(func(value any) {
			promise.Success(value)
		})
		r.OnError(func(err error) {
			sm.observers.NotifyHookError(newState, err)
			promise.Failure(err)
		})
	case Deferred:
		r.OnComplete(func(value any, err error) {
			if err != nil {
				sm.observers.NotifyHookError(newState, err)
			}
			promise.Complete(value, err)
		})
	default:
		promise.Success(result)
	}

	return fut
}

// invokeHook calls the global entry hook with panic recovery
func invokeHook(hook Hook, payload any, newState, oldState, transition string) (err error) {
	if hook == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()
	hook(payload, newState, oldState, transition)
	return nil
}

// invokeEnter calls a per-state entry hook with panic recovery
func invokeEnter(fn EnterFunc, payload any, newState, oldState, transition string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = recoveredError(r)
		}
	}()
	return fn(payload, newState, oldState, transition)
}

// recoveredError passes panic values that are errors through unwrapped
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("hook panic: %v", r)
}

func failedFuture(err error) *future.Future[any] {
	fut, promise := future.New[any]()
	promise.Failure(err)
	return fut
}
