package machina

import "fmt"

// Hook is the global entry callback, invoked on every state entry including
// the initial one. For the initial entry oldState and transition are empty.
// Its return is discarded; a panic propagates as the failure of the
// triggering call.
type Hook func(payload any, newState, oldState, transition string)

// EnterFunc is a per-state entry callback. It may return a plain value, nil,
// a *future.Future[any], or any value implementing Deferred; a non-nil error
// fails the triggering call.
type EnterFunc func(payload any, newState, oldState, transition string) (any, error)

// Deferred is the capability a hook result needs for the machine to treat it
// as a pending asynchronous value. The machine settles the transition result
// in lockstep with the callback's value and error.
type Deferred interface {
	OnComplete(fn func(value any, err error))
}

// Transition is a named edge to a single destination state.
type Transition struct {
	Name   string
	Target string
}

// stateDef is the configuration of a single non-terminal state. Terminal
// states are represented by a nil *stateDef in the definition.
type stateDef struct {
	transitions []Transition
	index       map[string]int
	onEntry     EnterFunc
}

// Definition is the static configuration of a state machine: an ordered set
// of named states, their transitions, and entry hooks. It is authored once
// through the fluent methods below, handed to New, and must not be mutated
// afterwards.
//
// Declaration order is recorded because it is observable in the diagram
// export.
type Definition struct {
	order   []string
	states  map[string]*stateDef
	onEnter Hook
	cursor  string
	err     error
}

// NewDefinition creates an empty machine definition
func NewDefinition() *Definition {
	return &Definition{
		states: make(map[string]*stateDef),
	}
}

// State declares a state, or re-selects an already declared one, and makes it
// the target of subsequent Permit and OnEntry calls.
func (d *Definition) State(name string) *Definition {
	if sd, declared := d.states[name]; declared {
		if sd == nil {
			d.fail("State", fmt.Sprintf("state '%s' is declared terminal", name))
			return d
		}
	} else {
		d.states[name] = &stateDef{index: make(map[string]int)}
		d.order = append(d.order, name)
	}
	d.cursor = name
	return d
}

// Terminal declares a terminal state: no outgoing transitions and no entry
// hook. Any transition attempted while such a state is current fails.
func (d *Definition) Terminal(name string) *Definition {
	if _, declared := d.states[name]; declared {
		d.fail("Terminal", fmt.Sprintf("state '%s' is already declared", name))
		return d
	}
	d.states[name] = nil
	d.order = append(d.order, name)
	d.cursor = ""
	return d
}

// Permit adds a named transition from the currently selected state to the
// destination. Redeclaring a name on the same state replaces the destination,
// so each (state, transition) pair has exactly one target.
func (d *Definition) Permit(transition, destination string) *Definition {
	sd := d.selected("Permit")
	if sd == nil {
		return d
	}
	if i, ok := sd.index[transition]; ok {
		sd.transitions[i].Target = destination
		return d
	}
	sd.index[transition] = len(sd.transitions)
	sd.transitions = append(sd.transitions, Transition{Name: transition, Target: destination})
	return d
}

// OnEntry sets the entry hook of the currently selected state
func (d *Definition) OnEntry(fn EnterFunc) *Definition {
	sd := d.selected("OnEntry")
	if sd == nil {
		return d
	}
	sd.onEntry = fn
	return d
}

// OnEnter sets the global entry hook, invoked before any per-state hook on
// every entry
func (d *Definition) OnEnter(fn Hook) *Definition {
	d.onEnter = fn
	return d
}

// States returns the declared state names in declaration order
func (d *Definition) States() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// TransitionsFrom returns the transitions declared on a state, in declaration
// order. Terminal and undeclared states have none.
func (d *Definition) TransitionsFrom(state string) []Transition {
	sd := d.states[state]
	if sd == nil {
		return nil
	}
	transitions := make([]Transition, len(sd.transitions))
	copy(transitions, sd.transitions)
	return transitions
}

// IsTerminal reports whether a declared state is terminal
func (d *Definition) IsTerminal(state string) bool {
	sd, declared := d.states[state]
	return declared && sd == nil
}

// destination resolves the target of a (state, transition) pair
func (d *Definition) destination(state, transition string) (string, bool) {
	sd := d.states[state]
	if sd == nil {
		return "", false
	}
	i, ok := sd.index[transition]
	if !ok {
		return "", false
	}
	return sd.transitions[i].Target, true
}

// fail records the first configuration misuse; it is surfaced by New
func (d *Definition) fail(component, issue string) {
	if d.err == nil {
		d.err = NewInvalidConfigurationError(component, issue)
	}
}

func (d *Definition) selected(component string) *stateDef {
	if d.cursor == "" {
		d.fail(component, "no state selected")
		return nil
	}
	return d.states[d.cursor]
}
