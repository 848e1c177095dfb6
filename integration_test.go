package machina

import (
	"testing"

	"github.com/amp-labs/amp-common/future"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTrafficLightDefinition() *Definition {
	return NewDefinition().
		State("green").Permit("change", "yellow").
		State("yellow").Permit("change", "red").
		State("red").Permit("change", "green")
}

func TestTrafficLight_Scenario(t *testing.T) {
	machine, err := New(newTrafficLightDefinition(), "red",
		WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	_, err = awaitSettled(t, machine.Ready())
	require.NoError(t, err)
	require.Equal(t, "red", machine.CurrentState())

	var sequence []string
	for i := 0; i < 3; i++ {
		_, err = awaitSettled(t, machine.Transition("change", nil))
		require.NoError(t, err)
		sequence = append(sequence, machine.CurrentState())
	}

	assert.Equal(t, []string{"green", "yellow", "red"}, sequence)
}

func TestTrafficLight_FullCycleWithAsyncHooks(t *testing.T) {
	var entered []string

	hook := func(payload any, newState, oldState, transition string) (any, error) {
		return future.Go(func() (any, error) {
			return newState, nil
		}), nil
	}

	def := NewDefinition().
		OnEnter(func(payload any, newState, oldState, transition string) {
			entered = append(entered, newState)
		}).
		State("green").Permit("change", "yellow").OnEntry(hook).
		State("yellow").Permit("change", "red").OnEntry(hook).
		State("red").Permit("change", "green").OnEntry(hook)

	machine, err := New(def, "red")
	require.NoError(t, err)

	for _, want := range []string{"green", "yellow", "red"} {
		value, err := awaitSettled(t, machine.Transition("change", nil))
		require.NoError(t, err)
		assert.Equal(t, want, value, "hook result must reflect the entered state")
		assert.Equal(t, want, machine.CurrentState())
	}

	// Global hook fired on every entry, including the initial one.
	assert.Equal(t, []string{"red", "green", "yellow", "red"}, entered)
}

func TestEndToEnd_WorkflowWithTerminalState(t *testing.T) {
	observer := newRecordingObserver()

	def := NewDefinition().
		State("draft").Permit("submit", "review").
		State("review").
		Permit("approve", "published").
		Permit("reject", "draft").
		Terminal("published")

	machine, err := New(def, "draft", WithObserver(observer))
	require.NoError(t, err)

	_, err = awaitSettled(t, machine.Transition("submit", nil))
	require.NoError(t, err)
	_, err = awaitSettled(t, machine.Transition("reject", nil))
	require.NoError(t, err)
	_, err = awaitSettled(t, machine.Transition("submit", nil))
	require.NoError(t, err)
	_, err = awaitSettled(t, machine.Transition("approve", nil))
	require.NoError(t, err)

	assert.Equal(t, "published", machine.CurrentState())

	_, err = awaitSettled(t, machine.Transition("submit", nil))
	require.True(t, IsTransitionError(err))
	assert.Equal(t, "published", machine.CurrentState())

	assert.Equal(t, []string{"draft", "review", "draft", "review", "published"}, observer.Entered)
}
