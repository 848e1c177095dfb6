package machina

import (
	"fmt"
	"strings"
)

// ExportDiagram renders the machine's configuration as a Graphviz digraph:
// one node line per state in declaration order, then one edge line per
// transition, edges labeled with the transition name. The output is a pure
// read of the validated configuration and is byte-identical across calls.
func (sm *StateMachine) ExportDiagram() string {
	if !sm.diagram {
		return ""
	}

	var dot strings.Builder
	dot.WriteString("digraph \"fsm\" {\n")

	for _, name := range sm.def.order {
		dot.WriteString(fmt.Sprintf("    %q;\n", name))
	}

	for _, name := range sm.def.order {
		sd := sm.def.states[name]
		if sd == nil {
			continue
		}
		for _, t := range sd.transitions {
			dot.WriteString(fmt.Sprintf("    %q -> %q [label=%q];\n", name, t.Target, t.Name))
		}
	}

	dot.WriteString("}")
	return dot.String()
}
