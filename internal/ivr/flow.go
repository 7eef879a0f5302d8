package ivr

// ScriptFlow is the per-script module-flow view handed to diagram
// consumers: the ordered module list plus the transitions declared in the
// source tree. It is fully resolved data; the module tree itself is not
// retained.
type ScriptFlow struct {
	ScriptName string     `json:"script_name"`
	Modules    []FlowStep `json:"modules"`
	Edges      []FlowEdge `json:"edges"`
}

// FlowStep is one module in the flow, with its scalar fields resolved.
type FlowStep struct {
	ID     int               `json:"id"`
	Type   string            `json:"type"`
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields,omitempty"`
}

// FlowEdge is one module-to-module transition. Label carries the transition
// tag for sequential edges and the branch name for branch edges.
type FlowEdge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label,omitempty"`
}

// sequentialEdgeTags are the transition tags whose text is the target
// module's vendor GUID, probed on every module.
var sequentialEdgeTags = []string{
	"singleDescendant",
	"exceptionalDescendant",
	"descendant",
}

// BuildFlow resolves a script's transition graph. Descendant references
// pointing at GUIDs no module declares are dropped; a dangling edge in a
// hand-edited export is not worth failing the script over.
func BuildFlow(doc *ScriptDocument) ScriptFlow {
	flow := ScriptFlow{ScriptName: doc.Name}

	byGUID := make(map[string]int, len(doc.Modules))
	for _, mod := range doc.Modules {
		if mod.GUID != "" {
			byGUID[mod.GUID] = mod.ID
		}
		flow.Modules = append(flow.Modules, FlowStep{
			ID:     mod.ID,
			Type:   mod.Type,
			Name:   mod.Name,
			Fields: scalarFields(mod.elem),
		})
	}

	for _, mod := range doc.Modules {
		for _, tag := range sequentialEdgeTags {
			for _, ref := range mod.elem.descendants(tag) {
				if to, ok := byGUID[ref.trimText()]; ok {
					flow.Edges = append(flow.Edges, FlowEdge{From: mod.ID, To: to, Label: tag})
				}
			}
		}
		for _, entry := range mod.elem.locate("branches/entry") {
			target := entry.childText("desc")
			if target == "" {
				if refs := entry.descendants("desc"); len(refs) > 0 {
					target = refs[0].trimText()
				}
			}
			if to, ok := byGUID[target]; ok {
				flow.Edges = append(flow.Edges, FlowEdge{From: mod.ID, To: to, Label: entry.childText("name")})
			}
		}
	}
	return flow
}

// scalarFields collects the module's leaf children: elements with no child
// elements and non-empty text. These are the fields a diagram label or a
// field inspector can show without re-walking the tree.
func scalarFields(el *element) map[string]string {
	var fields map[string]string
	for _, c := range el.children {
		if len(c.children) > 0 {
			continue
		}
		text := c.trimText()
		if text == "" {
			continue
		}
		if fields == nil {
			fields = make(map[string]string)
		}
		fields[c.name] = text
	}
	return fields
}
