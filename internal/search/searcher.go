// Package search provides a filterable in-memory index over extracted audit
// records, the query backend for interactive table views.
package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/mvp-joe/ivr-audit/internal/ivr"
)

// Record categories, each mirroring one BatchResult table.
const (
	CategoryCallVariable  = "call_variable"
	CategoryLocalVariable = "local_variable"
	CategorySkill         = "skill"
	CategoryPrompt        = "prompt"
	CategoryFailure       = "failure"
)

// Hit is one matching record.
type Hit struct {
	Category string  `json:"category"`
	Script   string  `json:"script"`
	Name     string  `json:"name"`
	Group    string  `json:"group,omitempty"`
	Module   string  `json:"module,omitempty"`
	Score    float64 `json:"score"`
}

// Options narrows a search. The zero value searches everything.
type Options struct {
	Category string // restrict to one record category
	Script   string // restrict to one script (exact name)
	Limit    int    // max hits, default 50
}

// Searcher indexes one BatchResult and answers record queries.
type Searcher interface {
	// Search matches queryStr against record names, groups, scripts, and
	// module labels. Bleve query-string syntax is supported, wildcards
	// included.
	Search(ctx context.Context, queryStr string, opts *Options) ([]Hit, error)

	// Close releases the index.
	Close() error
}

type searcher struct {
	index bleve.Index
}

// recordDoc is the indexed shape of every record, category-tagged.
type recordDoc struct {
	Category string `json:"category"`
	Script   string `json:"script"`
	Name     string `json:"name"`
	Group    string `json:"group"`
	Module   string `json:"module"`
}

// NewSearcher builds an in-memory index from result's record sets.
func NewSearcher(result *ivr.BatchResult) (Searcher, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	batch := index.NewBatch()
	n := 0
	add := func(doc recordDoc) error {
		n++
		return batch.Index(fmt.Sprintf("%s-%d", doc.Category, n), doc)
	}

	for _, r := range result.CallVariables {
		if err := add(recordDoc{CategoryCallVariable, r.ScriptName, r.Name, r.Group, r.ModuleName}); err != nil {
			index.Close()
			return nil, err
		}
	}
	for _, r := range result.LocalVariables {
		if err := add(recordDoc{CategoryLocalVariable, r.ScriptName, r.Name, r.Group, r.ModuleName}); err != nil {
			index.Close()
			return nil, err
		}
	}
	for _, r := range result.Skills {
		if err := add(recordDoc{CategorySkill, r.ScriptName, r.SkillName, "", r.ModuleName}); err != nil {
			index.Close()
			return nil, err
		}
	}
	for _, r := range result.Prompts {
		if err := add(recordDoc{CategoryPrompt, r.ScriptName, r.PromptName, "", r.ModuleName}); err != nil {
			index.Close()
			return nil, err
		}
	}
	for _, r := range result.Failures {
		if err := add(recordDoc{CategoryFailure, r.ScriptName, r.Error, "", ""}); err != nil {
			index.Close()
			return nil, err
		}
	}

	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index records: %w", err)
	}
	return &searcher{index: index}, nil
}

// buildMapping indexes names and scripts with the standard analyzer for
// partial matching, and category with the keyword analyzer for exact
// filtering.
func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	standard := bleve.NewTextFieldMapping()
	standard.Analyzer = "standard"
	standard.Store = true

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("category", keyword)
	doc.AddFieldMappingsAt("script", keyword)
	doc.AddFieldMappingsAt("name", standard)
	doc.AddFieldMappingsAt("group", standard)
	doc.AddFieldMappingsAt("module", standard)

	indexMapping.DefaultMapping = doc
	return indexMapping
}

func (s *searcher) Search(ctx context.Context, queryStr string, opts *Options) ([]Hit, error) {
	if opts == nil {
		opts = &Options{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	var clauses []query.Query
	if queryStr != "" {
		clauses = append(clauses, bleve.NewQueryStringQuery(queryStr))
	} else {
		clauses = append(clauses, bleve.NewMatchAllQuery())
	}
	if opts.Category != "" {
		tq := bleve.NewTermQuery(opts.Category)
		tq.SetField("category")
		clauses = append(clauses, tq)
	}
	if opts.Script != "" {
		tq := bleve.NewTermQuery(opts.Script)
		tq.SetField("script")
		clauses = append(clauses, tq)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(clauses...), limit, 0, false)
	req.Fields = []string{"category", "script", "name", "group", "module"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{
			Category: fieldString(h.Fields, "category"),
			Script:   fieldString(h.Fields, "script"),
			Name:     fieldString(h.Fields, "name"),
			Group:    fieldString(h.Fields, "group"),
			Module:   fieldString(h.Fields, "module"),
			Score:    h.Score,
		})
	}
	return hits, nil
}

func (s *searcher) Close() error {
	return s.index.Close()
}

func fieldString(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
