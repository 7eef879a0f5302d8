package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/ivr-audit/internal/config"
	"github.com/mvp-joe/ivr-audit/internal/discovery"
	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// resolveInputs expands command arguments into export file paths. A
// directory argument is searched with the configured include and ignore
// patterns; a file argument is taken as-is.
func resolveInputs(cfg *config.Config, args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		d, err := discovery.New(arg, cfg.Paths.Include, cfg.Paths.Ignore)
		if err != nil {
			return nil, err
		}
		found, err := d.Discover()
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no export files found")
	}
	return files, nil
}

// auditFiles runs the extraction pipeline over every file and merges the
// per-file results in input order.
func auditFiles(ctx context.Context, auditor *ivr.Auditor, files []string) (*ivr.BatchResult, error) {
	results := make([]*ivr.BatchResult, 0, len(files))
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		result, err := auditor.Run(ctx, raw)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return ivr.MergeResults(results...), nil
}
