package machina

// Observer represents an entity that observes state machine lifecycle
type Observer interface {
	// OnTransition is called when a transition is performed, after the state
	// commit and before the entry hooks run
	OnTransition(from, to, transition string, payload any)

	// OnStateEnter is called after the synchronous portion of a state's entry
	// hooks has run
	OnStateEnter(state string)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnTransitionRejected is called when a transition name is not available
	// from the current state
	OnTransitionRejected(transition, state string)

	// OnHookError is called when an entry hook fails, synchronously or
	// through its asynchronous result
	OnHookError(state string, err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(from, to, transition string, payload any) {
	// Default implementation - no operation
}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(state string) {
	// Default implementation - no operation
}

// OnTransitionRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnTransitionRejected(transition, state string) {
	// Default implementation - no operation
}

// OnHookError implements the optional ExtendedObserver method
func (o *BaseObserver) OnHookError(state string, err error) {
	// Default implementation - no operation
}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// NotifyTransition notifies all observers of a performed transition
func (om *ObserverManager) NotifyTransition(from, to, transition string, payload any) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() { _ = recover() }()
			observer.OnTransition(from, to, transition, payload)
		}()
	}
}

// NotifyStateEnter notifies all observers of state entry
func (om *ObserverManager) NotifyStateEnter(state string) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() { _ = recover() }()
			observer.OnStateEnter(state)
		}()
	}
}

// NotifyTransitionRejected notifies all extended observers of a rejected
// transition
func (om *ObserverManager) NotifyTransitionRejected(transition, state string) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { _ = recover() }()
				extObs.OnTransitionRejected(transition, state)
			}()
		}
	}
}

// NotifyHookError notifies all extended observers of an entry hook failure
func (om *ObserverManager) NotifyHookError(state string, err error) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { _ = recover() }()
				extObs.OnHookError(state, err)
			}()
		}
	}
}
