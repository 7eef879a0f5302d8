package ivr

// VariableKind distinguishes call-scoped from locally scoped variables.
type VariableKind string

const (
	VariableKindCall  VariableKind = "call"
	VariableKindLocal VariableKind = "local"
)

// VariableRecord is one variable declaration found in a script. Call
// variables carry the group prefix from their Group.Name form; local
// variables always have an empty group. Duplicate (group, name) pairs within
// a script are collapsed to the first declaring module.
type VariableRecord struct {
	ScriptName string       `json:"script_name"`
	ModuleName string       `json:"module_name"`
	ModuleType string       `json:"module_type"`
	Group      string       `json:"group"`
	Name       string       `json:"name"`
	Kind       VariableKind `json:"kind"`
}

// SkillRecord is one routing skill referenced by a skill-transfer module.
type SkillRecord struct {
	ScriptName string `json:"script_name"`
	SkillName  string `json:"skill_name"`
	ModuleID   int    `json:"module_id"`
	ModuleName string `json:"module_name"`
}

// PromptRecord is one prompt reference found in a playback-capable module.
// A module referencing several prompt segments contributes one record per
// segment, in document order.
type PromptRecord struct {
	ScriptName string `json:"script_name"`
	PromptName string `json:"prompt_name"`
	ModuleID   int    `json:"module_id"`
	ModuleName string `json:"module_name"`
}

// FailureRecord is produced in place of the record sets above when a script
// cannot be parsed. ScriptName is best effort and may be "unknown" when the
// wrapper itself is unreadable. Offset is the byte offset of the script's
// fragment within the sanitized batch text.
type FailureRecord struct {
	ScriptName string `json:"script_name"`
	Error      string `json:"error"`
	Offset     int    `json:"offset"`
}

// Summary holds batch-wide counts. Unique variable counts deduplicate by
// (group, name, kind) across all scripts; unique skill and prompt counts
// deduplicate by name.
type Summary struct {
	ScriptsAttempted     int `json:"scripts_attempted"`
	ScriptsSucceeded     int `json:"scripts_succeeded"`
	ScriptsFailed        int `json:"scripts_failed"`
	UniqueCallVariables  int `json:"unique_call_variables"`
	UniqueLocalVariables int `json:"unique_local_variables"`
	UniqueSkills         int `json:"unique_skills"`
	UniquePrompts        int `json:"unique_prompts"`
}

// BatchResult is the output of a full audit run. The record sequences
// preserve per-script then per-module document order. A result is built
// fresh per run and never mutated afterwards.
type BatchResult struct {
	CallVariables  []VariableRecord `json:"call_variables"`
	LocalVariables []VariableRecord `json:"local_variables"`
	Skills         []SkillRecord    `json:"skills"`
	Prompts        []PromptRecord   `json:"prompts"`
	Failures       []FailureRecord  `json:"failures"`
	Flows          []ScriptFlow     `json:"flows"`
	Summary        Summary          `json:"summary"`
}

// ScriptDocument is one parsed script: its resolved name plus the module
// tree in document order. The document is only held while its extractors
// run; BatchResult retains the extracted records, never the tree.
type ScriptDocument struct {
	Name    string
	Modules []*ModuleNode
}

// ModuleNode is one IVR action in a script's module tree. ID is the
// sequential document-order index assigned once by the parser, so every
// extractor attributes records to the same module identity. GUID is the
// vendor-assigned module identifier used by descendant references.
type ModuleNode struct {
	ID   int
	Type string
	Name string
	GUID string

	elem *element
}

// Fragment is one per-script slice of the sanitized batch text.
type Fragment struct {
	Text   string
	Offset int
}
