package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for name documents.
//
// Autocomplete works on whole-name prefixes, so both fields use the keyword
// analyzer: the "name" field holds the normalized form and is the prefix
// target, "display" holds the original casing and is only stored for
// retrieval.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = keyword.Name
	nameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	displayFieldMapping := bleve.NewTextFieldMapping()
	displayFieldMapping.Analyzer = keyword.Name
	displayFieldMapping.Store = true
	displayFieldMapping.Index = false
	docMapping.AddFieldMappingsAt("display", displayFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
