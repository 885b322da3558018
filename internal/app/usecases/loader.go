package usecases

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
	"github.com/fairlight1337/slicknxt/internal/core/node"
)

// buildFlow materializes a flow description into live nodes and edges.
//
// Degradation rules: nodes with an unknown type tag are skipped and counted;
// edges referencing missing nodes are kept but stay inert during routing and
// ordering; duplicate node IDs keep the first occurrence.
func buildFlow(d *dto.FlowDescription, now time.Time) (*flow.Flow, int) {
	f := flow.New()
	skipped := 0

	for _, nd := range d.Nodes {
		n, err := node.New(nd.Type, nd.ID, nd.Data, now)
		if err != nil {
			log.Printf("engine: skipping node %q: %v", nd.ID, err)
			skipped++
			continue
		}
		if err := f.AddNode(n); err != nil {
			log.Printf("engine: skipping node %q: %v", nd.ID, err)
			skipped++
		}
	}

	for _, ed := range d.Edges {
		id := ed.ID
		if id == "" {
			id = uuid.NewString()
		}
		e := &flow.Edge{
			ID:           id,
			Source:       ed.Source,
			Target:       ed.Target,
			SourceHandle: ed.SourceHandle,
			TargetHandle: ed.TargetHandle,
		}
		if err := f.AddEdge(e); err != nil {
			log.Printf("engine: dropping edge %q: %v", id, err)
		}
	}

	f.MarkConnected()
	return f, skipped
}
