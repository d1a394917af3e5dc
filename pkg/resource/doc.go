// Package resource defines the pipeline resource descriptors that indexflow
// visualizes and decodes them from JSON, YAML or TOML documents.
//
// # Overview
//
// A [Bundle] collects the independently fetched resources of one ingestion
// pipeline: a data source, an indexer (with field mappings and output field
// mappings), a skillset (skills plus index projections), the target index,
// aliases and synonym maps. Every field is optional.
//
// # Decoding
//
// Bundles are decoded leniently. The surrounding console fetches resources
// one by one, so a bundle may be partial or contain a section the console
// could not parse. [Decode] drops such sections and reports them as
// [Issue] values instead of failing:
//
//	b, issues, err := resource.ReadFile("pipeline.yaml")
//	for _, is := range issues {
//	    logger.Warn("skipped section", "path", is.Path, "err", is.Err)
//	}
//
// The JSON shape mirrors the service REST API:
//
//	{
//	  "dataSource": {"name": "docs", "type": "azureblob"},
//	  "indexer":    {"name": "docs-indexer", "fieldMappings": [...]},
//	  "skillset":   {"skills": [...], "indexProjections": {...}},
//	  "index":      {"name": "docs-index", "fields": [...]},
//	  "aliases":    [{"name": "docs", "indexes": ["docs-index"]}]
//	}
package resource
