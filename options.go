package machina

import "go.uber.org/zap"

// Option configures a StateMachine at construction
type Option func(*StateMachine)

// WithObserver registers an observer before the initial entry runs, so it
// also sees the construction-time state entry
func WithObserver(observer Observer) Option {
	return func(sm *StateMachine) {
		sm.observers.AddObserver(observer)
	}
}

// WithLogger attaches a LoggingObserver tagged with the machine's instance ID
func WithLogger(logger *zap.Logger) Option {
	return func(sm *StateMachine) {
		sm.observers.AddObserver(NewLoggingObserver(
			logger.With(zap.String("machine_id", sm.id))))
	}
}

// WithDiagramExport enables or disables the diagram exporter. Disabled,
// ExportDiagram returns the empty string. Enabled by default.
func WithDiagramExport(enabled bool) Option {
	return func(sm *StateMachine) {
		sm.diagram = enabled
	}
}
