// Package export serializes audit results to files: per-table CSV, a whole
// BatchResult as JSON, and per-script flow diagrams as Graphviz DOT.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// File names per record set; one CSV file per table.
const (
	CallVariablesFile  = "call_variables.csv"
	LocalVariablesFile = "variables.csv"
	SkillsFile         = "skills.csv"
	PromptsFile        = "prompts.csv"
	FailuresFile       = "ivr_failures.csv"
)

// WriteCSVFiles writes one CSV file per non-empty record set into dir and
// returns the paths written. Empty tables produce no file.
func WriteCSVFiles(dir string, result *ivr.BatchResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var written []string
	write := func(name string, header []string, rows [][]string) error {
		if len(rows) == 0 {
			return nil
		}
		path := filepath.Join(dir, name)
		if err := writeCSV(path, header, rows); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write(CallVariablesFile, variableHeader, variableRows(result.CallVariables)); err != nil {
		return written, err
	}
	if err := write(LocalVariablesFile, variableHeader, variableRows(result.LocalVariables)); err != nil {
		return written, err
	}
	if err := write(SkillsFile, skillHeader, skillRows(result.Skills)); err != nil {
		return written, err
	}
	if err := write(PromptsFile, promptHeader, promptRows(result.Prompts)); err != nil {
		return written, err
	}
	if err := write(FailuresFile, failureHeader, failureRows(result.Failures)); err != nil {
		return written, err
	}
	return written, nil
}

var (
	variableHeader = []string{"Script Name", "Module Name", "Source Module", "Group", "Variable Name"}
	skillHeader    = []string{"Script Name", "Skill Name", "Module ID", "Module Name"}
	promptHeader   = []string{"Script Name", "Prompt Name", "Module ID", "Module Name"}
	failureHeader  = []string{"Script Name", "Error", "Offset"}
)

func variableRows(records []ivr.VariableRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ScriptName, r.ModuleName, r.ModuleType, r.Group, r.Name})
	}
	return rows
}

func skillRows(records []ivr.SkillRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ScriptName, r.SkillName, strconv.Itoa(r.ModuleID), r.ModuleName})
	}
	return rows
}

func promptRows(records []ivr.PromptRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ScriptName, r.PromptName, strconv.Itoa(r.ModuleID), r.ModuleName})
	}
	return rows
}

func failureRows(records []ivr.FailureRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ScriptName, r.Error, strconv.Itoa(r.Offset)})
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}
