package usecases

import (
	"github.com/fairlight1337/slicknxt/internal/core/flow"
)

// route copies each edge's source output into its target's input map. It
// runs before any node executes, so every edge carries the value the source
// published on the previous tick: edges always impose one tick of latency,
// independent of where source and target fall in execution order.
//
// Edges whose endpoints do not both resolve to live nodes are inert.
func route(f *flow.Flow) {
	for _, e := range f.Edges() {
		source := f.Node(e.Source)
		target := f.Node(e.Target)
		if source == nil || target == nil {
			continue
		}
		target.SetInput(e.InputKey(), source.Output(e.OutputKey()))
	}
}
