package machina

// validate checks the structural well-formedness of a definition and the
// chosen initial state. It performs no mutation; the first failure, in
// declaration order, is returned.
func validate(def *Definition, initialState string) error {
	if def == nil {
		return NewInvalidConfigurationError("Definition", "definition is nil")
	}

	if def.err != nil {
		return def.err
	}

	if len(def.order) == 0 {
		return NewInvalidConfigurationError("Definition", "no states declared")
	}

	if _, declared := def.states[initialState]; !declared {
		return NewInvalidInitialStateError(initialState)
	}

	// Every destination named anywhere must itself be a declared state.
	for _, name := range def.order {
		sd := def.states[name]
		if sd == nil {
			continue
		}
		for _, t := range sd.transitions {
			if _, declared := def.states[t.Target]; !declared {
				return NewInvalidTransitionTargetError(name, t.Name, t.Target)
			}
		}
	}

	return nil
}
