package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// printResult renders the four record tables, the failures table, and the
// summary line. Display views are sorted by script then name, the way the
// audit spreadsheets have always been read; the underlying result keeps
// document order for exports.
func printResult(w io.Writer, result *ivr.BatchResult) {
	printVariableTable(w, "Call Variables", result.CallVariables)
	printVariableTable(w, "Variables", result.LocalVariables)
	printSkillTable(w, result.Skills)
	printPromptTable(w, result.Prompts)
	printFailureTable(w, result.Failures)

	s := result.Summary
	fmt.Fprintf(w, "Processed %d scripts: %d succeeded, %d failed.\n",
		s.ScriptsAttempted, s.ScriptsSucceeded, s.ScriptsFailed)
	fmt.Fprintf(w, "Unique: %d call variables, %d variables, %d skills, %d prompts.\n",
		s.UniqueCallVariables, s.UniqueLocalVariables, s.UniqueSkills, s.UniquePrompts)
}

func printVariableTable(w io.Writer, title string, records []ivr.VariableRecord) {
	if len(records) == 0 {
		fmt.Fprintf(w, "%s: none found\n\n", title)
		return
	}
	view := make([]ivr.VariableRecord, len(records))
	copy(view, records)
	sort.SliceStable(view, func(i, j int) bool {
		if view[i].ScriptName != view[j].ScriptName {
			return view[i].ScriptName < view[j].ScriptName
		}
		if view[i].Group != view[j].Group {
			return view[i].Group < view[j].Group
		}
		return view[i].Name < view[j].Name
	})

	fmt.Fprintf(w, "%s (%d)\n", title, len(view))
	tw := newTable(w)
	fmt.Fprintln(tw, "SCRIPT\tMODULE\tSOURCE\tGROUP\tNAME")
	for _, r := range view {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ScriptName, r.ModuleName, r.ModuleType, r.Group, r.Name)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printSkillTable(w io.Writer, records []ivr.SkillRecord) {
	if len(records) == 0 {
		fmt.Fprint(w, "Skills: none found\n\n")
		return
	}
	view := make([]ivr.SkillRecord, len(records))
	copy(view, records)
	sort.SliceStable(view, func(i, j int) bool {
		if view[i].ScriptName != view[j].ScriptName {
			return view[i].ScriptName < view[j].ScriptName
		}
		return view[i].SkillName < view[j].SkillName
	})

	fmt.Fprintf(w, "Skills (%d)\n", len(view))
	tw := newTable(w)
	fmt.Fprintln(tw, "SCRIPT\tSKILL\tMODULE ID\tMODULE")
	for _, r := range view {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ScriptName, r.SkillName, strconv.Itoa(r.ModuleID), r.ModuleName)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printPromptTable(w io.Writer, records []ivr.PromptRecord) {
	if len(records) == 0 {
		fmt.Fprint(w, "Prompts: none found\n\n")
		return
	}
	view := make([]ivr.PromptRecord, len(records))
	copy(view, records)
	sort.SliceStable(view, func(i, j int) bool {
		if view[i].ScriptName != view[j].ScriptName {
			return view[i].ScriptName < view[j].ScriptName
		}
		return view[i].PromptName < view[j].PromptName
	})

	fmt.Fprintf(w, "Prompts (%d)\n", len(view))
	tw := newTable(w)
	fmt.Fprintln(tw, "SCRIPT\tPROMPT\tMODULE ID\tMODULE")
	for _, r := range view {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ScriptName, r.PromptName, strconv.Itoa(r.ModuleID), r.ModuleName)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printFailureTable(w io.Writer, records []ivr.FailureRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(w, "%d script(s) failed to process\n", len(records))
	tw := newTable(w)
	fmt.Fprintln(tw, "SCRIPT\tOFFSET\tERROR")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.ScriptName, r.Offset, r.Error)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
