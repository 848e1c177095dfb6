package machina

import "fmt"

// ErrorCode represents specific error conditions in the state machine
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Machine configuration is absent or malformed
	ErrCodeInvalidConfiguration
	// Initial state is not declared in the configuration
	ErrCodeInvalidInitialState
	// A declared transition points to an undeclared state
	ErrCodeInvalidTransitionTarget
	// Transition is not available from the current state
	ErrCodeInvalidTransition
)

// ConfigurationError represents machine configuration issues detected at
// construction time. These are fatal: no machine instance is produced.
type ConfigurationError struct {
	Code      ErrorCode
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewInvalidConfigurationError creates a new invalid configuration error
func NewInvalidConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Code:      ErrCodeInvalidConfiguration,
		Component: component,
		Issue:     issue,
	}
}

// NewInvalidInitialStateError creates an error for an initial state that is
// not declared in the definition
func NewInvalidInitialStateError(initial string) *ConfigurationError {
	return &ConfigurationError{
		Code:      ErrCodeInvalidInitialState,
		Component: "Definition",
		Issue:     fmt.Sprintf("initial state '%s' is not declared", initial),
	}
}

// NewInvalidTransitionTargetError creates an error for a transition whose
// destination is not a declared state
func NewInvalidTransitionTargetError(state, transition, target string) *ConfigurationError {
	return &ConfigurationError{
		Code:      ErrCodeInvalidTransitionTarget,
		Component: "Definition",
		Issue: fmt.Sprintf("transition '%s' from state '%s' targets undeclared state '%s'",
			transition, state, target),
	}
}

// TransitionError represents a transition attempted with a name that is not
// available from the current state. The current state is left unchanged.
type TransitionError struct {
	Code       ErrorCode
	Transition string
	From       string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition error: no transition '%s' from state '%s'", e.Transition, e.From)
}

// NewInvalidTransitionError creates a new invalid transition error
func NewInvalidTransitionError(transition, from string) *TransitionError {
	return &TransitionError{
		Code:       ErrCodeInvalidTransition,
		Transition: transition,
		From:       from,
	}
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsTransitionError checks if an error is a TransitionError
func IsTransitionError(err error) bool {
	_, ok := err.(*TransitionError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ConfigurationError:
		return e.Code
	case *TransitionError:
		return e.Code
	default:
		return ErrCodeNone
	}
}
