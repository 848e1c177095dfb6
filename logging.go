package machina

import "go.uber.org/zap"

// LoggingObserver logs state machine lifecycle events through a structured
// logger. The core never logs on its own; attach one of these (or use the
// WithLogger option) to get transition logs.
type LoggingObserver struct {
	logger *zap.Logger
}

// NewLoggingObserver creates a logging observer backed by the given logger
func NewLoggingObserver(logger *zap.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnTransition logs a performed transition
func (o *LoggingObserver) OnTransition(from, to, transition string, payload any) {
	o.logger.Info("transition",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("name", transition))
}

// OnStateEnter logs state entry
func (o *LoggingObserver) OnStateEnter(state string) {
	o.logger.Debug("state entered", zap.String("state", state))
}

// OnTransitionRejected logs a rejected transition
func (o *LoggingObserver) OnTransitionRejected(transition, state string) {
	o.logger.Warn("transition rejected",
		zap.String("name", transition),
		zap.String("state", state))
}

// OnHookError logs an entry hook failure
func (o *LoggingObserver) OnHookError(state string, err error) {
	o.logger.Error("entry hook failed",
		zap.String("state", state),
		zap.Error(err))
}
