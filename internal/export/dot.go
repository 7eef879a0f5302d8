package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// WriteDOT renders one script's module flow as a Graphviz DOT digraph.
func WriteDOT(w io.Writer, flow ivr.ScriptFlow) error {
	g := graph.New(func(step ivr.FlowStep) int { return step.ID }, graph.Directed())

	for _, step := range flow.Modules {
		label := step.Type
		if step.Name != "" {
			label = fmt.Sprintf("%s\\n%s", step.Name, step.Type)
		}
		if err := g.AddVertex(step, graph.VertexAttribute("label", label), graph.VertexAttribute("shape", "box")); err != nil {
			return fmt.Errorf("failed to add module %d: %w", step.ID, err)
		}
	}

	for _, edge := range flow.Edges {
		err := g.AddEdge(edge.From, edge.To, graph.EdgeAttribute("label", edge.Label))
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("failed to add edge %d->%d: %w", edge.From, edge.To, err)
		}
	}

	return draw.DOT(g, w)
}

// WriteDOTFiles writes flow_<script>.dot per script flow into dir and
// returns the paths written. Scripts with no modules are skipped.
func WriteDOTFiles(dir string, flows []ivr.ScriptFlow) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var written []string
	for _, flow := range flows {
		if len(flow.Modules) == 0 {
			continue
		}
		path := filepath.Join(dir, "flow_"+safeFileName(flow.ScriptName)+".dot")
		f, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := WriteDOT(f, flow); err != nil {
			f.Close()
			return written, err
		}
		if err := f.Close(); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// safeFileName maps a script name onto something every filesystem accepts.
func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
