package ivr

import (
	"log/slog"
	"strings"
)

// Declaring tags for the two variable scopes. Scope is decided by where a
// variable is declared, never by whether its name happens to contain a dot.
const (
	tagCallVariable  = "variableName"
	tagLocalVariable = "localVariable"
)

// skillTransferModule is the module type that routes a call to a skill.
const skillTransferModule = "skillTransfer"

// skillPathCandidates lists the known locations of a skill name across
// skillTransfer sub-variants, highest priority first. The first location
// holding a non-empty value wins; every value at that location is emitted.
// New variants are added here, not as new branches in the extractor.
// "extrnalObj" is the vendor's own spelling.
var skillPathCandidates = []string{
	"listOfSkillsEx/extrnalObj/name",
	"listOfSkills/extrnalObj/name",
	"skill/name",
	"skillName",
}

// promptNameCandidates lists where a prompt segment keeps its name.
var promptNameCandidates = []string{
	"name",
	"promptName",
}

// ExtractCallVariables yields one record per distinct call variable a script
// declares, in document order of first declaration. Composite Group.Name
// tokens split on the first dot; a token without a dot is a groupless call
// variable, not a local one.
func ExtractCallVariables(doc *ScriptDocument) []VariableRecord {
	return extractVariables(doc, tagCallVariable, VariableKindCall)
}

// ExtractLocalVariables yields one record per distinct locally scoped
// variable. Local declarations never carry a group prefix, so the whole
// token is the name and the group stays empty.
func ExtractLocalVariables(doc *ScriptDocument) []VariableRecord {
	return extractVariables(doc, tagLocalVariable, VariableKindLocal)
}

func extractVariables(doc *ScriptDocument, declaringTag string, kind VariableKind) []VariableRecord {
	var records []VariableRecord
	seen := make(map[string]bool)
	for _, mod := range doc.Modules {
		for _, decl := range mod.elem.descendants(declaringTag) {
			token := decl.trimText()
			if token == "" {
				continue
			}
			group, name := "", token
			if kind == VariableKindCall {
				if dot := strings.Index(token, "."); dot >= 0 {
					group, name = token[:dot], token[dot+1:]
				}
			}
			key := group + "\x00" + name
			if seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, VariableRecord{
				ScriptName: doc.Name,
				ModuleName: mod.Name,
				ModuleType: mod.Type,
				Group:      group,
				Name:       name,
				Kind:       kind,
			})
		}
	}
	return records
}

// ExtractSkills yields the skills referenced by every skill-transfer module,
// probing the candidate locations in priority order. A transfer module where
// no candidate holds a value contributes nothing; that is a schema variant
// worth a debug line, not a failure.
func ExtractSkills(doc *ScriptDocument, log *slog.Logger) []SkillRecord {
	var records []SkillRecord
	for _, mod := range doc.Modules {
		if mod.Type != skillTransferModule {
			continue
		}
		names := probeSkillNames(mod)
		if len(names) == 0 {
			log.Debug("skill transfer module matched no known skill location",
				"script", doc.Name, "module", mod.Name, "module_id", mod.ID)
			continue
		}
		for _, name := range names {
			records = append(records, SkillRecord{
				ScriptName: doc.Name,
				SkillName:  name,
				ModuleID:   mod.ID,
				ModuleName: mod.Name,
			})
		}
	}
	return records
}

func probeSkillNames(mod *ModuleNode) []string {
	for _, path := range skillPathCandidates {
		var names []string
		for _, el := range mod.elem.locate(path) {
			if name := el.trimText(); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return nil
}

// ExtractPrompts yields one record per prompt reference, preserving segment
// order. Any module type can reference prompts; a module playing several
// segments contributes several records.
func ExtractPrompts(doc *ScriptDocument) []PromptRecord {
	var records []PromptRecord
	for _, mod := range doc.Modules {
		for _, prompt := range mod.elem.descendants("prompt") {
			name := probePromptName(prompt)
			if name == "" {
				continue
			}
			records = append(records, PromptRecord{
				ScriptName: doc.Name,
				PromptName: name,
				ModuleID:   mod.ID,
				ModuleName: mod.Name,
			})
		}
	}
	return records
}

func probePromptName(prompt *element) string {
	for _, tag := range promptNameCandidates {
		if name := prompt.childText(tag); name != "" {
			return name
		}
	}
	return ""
}
