package ivr

import (
	"fmt"
	"html"
	"regexp"
)

// Element names used by the authoring tool's export format.
const (
	tagScriptWrapper = "IVRScripts"
	tagScriptName    = "Name"
	tagXMLDefinition = "XMLDefinition"
	tagModules       = "modules"
	tagModuleName    = "moduleName"
	tagModuleGUID    = "moduleId"
)

// bestEffortNameRe recovers a script name from an unparsable wrapper so the
// failure row can still point at the right script.
var bestEffortNameRe = regexp.MustCompile(`<Name>\s*([^<]+?)\s*</Name>`)

// ParseScript parses one fragment into a ScriptDocument. seq is the
// fragment's 1-based batch position, used both for the placeholder name of
// scripts that never declare one and to keep placeholder names unique across
// the batch. Parse errors never escape: they come back as a FailureRecord
// and the caller moves on to the next fragment.
func ParseScript(frag Fragment, seq int) (*ScriptDocument, *FailureRecord) {
	root, err := parseDocument(frag.Text)
	if err != nil {
		return nil, &FailureRecord{
			ScriptName: bestEffortName(frag.Text),
			Error:      fmt.Sprintf("script wrapper is not well-formed: %v", err),
			Offset:     frag.Offset,
		}
	}

	name := root.childText(tagScriptName)
	if name == "" {
		name = root.attr("name")
	}
	if name == "" {
		name = fmt.Sprintf("Script %d", seq)
	}

	ivrRoot := root
	if def := root.child(tagXMLDefinition); def != nil {
		// Batch exports embed each script's IVR document entity-escaped
		// inside the wrapper. An empty definition is a script with nothing
		// in it, not an error.
		payload := stripControls(html.UnescapeString(def.trimText()))
		if payload == "" {
			return &ScriptDocument{Name: name}, nil
		}
		ivrRoot, err = parseDocument(payload)
		if err != nil {
			return nil, &FailureRecord{
				ScriptName: name,
				Error:      fmt.Sprintf("embedded definition is not well-formed: %v", err),
				Offset:     frag.Offset,
			}
		}
	}

	modules := ivrRoot.child(tagModules)
	if modules == nil {
		if found := ivrRoot.descendants(tagModules); len(found) > 0 {
			modules = found[0]
		}
	}
	if modules == nil {
		if root.name == tagScriptWrapper {
			// A wrapper with no definition at all is an empty script.
			return &ScriptDocument{Name: name}, nil
		}
		return nil, &FailureRecord{
			ScriptName: name,
			Error:      "document has no module tree (not a script export?)",
			Offset:     frag.Offset,
		}
	}

	doc := &ScriptDocument{Name: name}
	for i, el := range modules.children {
		doc.Modules = append(doc.Modules, &ModuleNode{
			ID:   i,
			Type: el.name,
			Name: el.childText(tagModuleName),
			GUID: el.childText(tagModuleGUID),
			elem: el,
		})
	}
	return doc, nil
}

func bestEffortName(text string) string {
	if m := bestEffortNameRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return "unknown"
}
