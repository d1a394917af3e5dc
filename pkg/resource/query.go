package resource

// IsEmpty reports whether the bundle describes no resources at all.
func (b Bundle) IsEmpty() bool {
	return b.DataSource == nil && b.Indexer == nil && b.Skillset == nil &&
		b.Index == nil && len(b.Aliases) == 0 && len(b.SynonymMaps) == 0
}

// FieldNames returns the names of all index fields, depth first, with
// sub-fields as "parent/child". Returns nil for a nil index.
func (ix *Index) FieldNames() []string {
	if ix == nil {
		return nil
	}
	var names []string
	var walk func(prefix string, fields []Field)
	walk = func(prefix string, fields []Field) {
		for _, f := range fields {
			if f.Name == "" {
				continue
			}
			name := prefix + f.Name
			names = append(names, name)
			walk(name+"/", f.Fields)
		}
	}
	walk("", ix.Fields)
	return names
}

// ReferencedSynonymMaps returns the synonym map names referenced by any index
// field (including nested fields), in first-reference order without duplicates.
func (ix *Index) ReferencedSynonymMaps() []string {
	if ix == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	var walk func(fields []Field)
	walk = func(fields []Field) {
		for _, f := range fields {
			for _, sm := range f.SynonymMaps {
				if sm != "" && !seen[sm] {
					seen[sm] = true
					names = append(names, sm)
				}
			}
			walk(f.Fields)
		}
	}
	walk(ix.Fields)
	return names
}

// AliasesFor returns the aliases that list indexName, in declared order.
// Aliases without a name are skipped.
func (b Bundle) AliasesFor(indexName string) []Alias {
	if indexName == "" {
		return nil
	}
	var out []Alias
	for _, a := range b.Aliases {
		if a.Name == "" {
			continue
		}
		for _, ix := range a.Indexes {
			if ix == indexName {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// SynonymMap returns the declared synonym map with the given name.
func (b Bundle) SynonymMap(name string) (SynonymMap, bool) {
	for _, sm := range b.SynonymMaps {
		if sm.Name == name {
			return sm, true
		}
	}
	return SynonymMap{}, false
}
