package ivr

import (
	"html"
	"strings"
)

// wrapScript builds one <IVRScripts> wrapper around an entity-escaped IVR
// definition, the shape batch exports use.
func wrapScript(name, definition string) string {
	var b strings.Builder
	b.WriteString("<IVRScripts>")
	if name != "" {
		b.WriteString("<Name>" + name + "</Name>")
	}
	b.WriteString("<XMLDefinition>" + html.EscapeString(definition) + "</XMLDefinition>")
	b.WriteString("</IVRScripts>")
	return b.String()
}

// batchDoc concatenates wrapper blocks under a shared root.
func batchDoc(wrappers ...string) string {
	return "<scripts>" + strings.Join(wrappers, "") + "</scripts>"
}

// ivrDoc builds a bare IVR document around the given module elements.
func ivrDoc(modules ...string) string {
	return "<ivrScript><modules>" + strings.Join(modules, "") + "</modules></ivrScript>"
}

// mustParse parses a bare script document for extractor tests.
func mustParse(text string) *ScriptDocument {
	doc, failure := ParseScript(Fragment{Text: text}, 1)
	if failure != nil {
		panic("test fixture failed to parse: " + failure.Error)
	}
	return doc
}
