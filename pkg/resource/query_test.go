package resource

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIndexFieldNames(t *testing.T) {
	ix := &Index{Fields: []Field{
		{Name: "id"},
		{Name: "address", Fields: []Field{{Name: "city"}, {Name: "zip"}}},
		{Name: ""},
	}}
	want := []string{"id", "address", "address/city", "address/zip"}
	if diff := cmp.Diff(want, ix.FieldNames()); diff != "" {
		t.Errorf("FieldNames() mismatch (-want +got):\n%s", diff)
	}

	var nilIndex *Index
	if nilIndex.FieldNames() != nil {
		t.Error("nil Index FieldNames() should be nil")
	}
}

func TestReferencedSynonymMaps(t *testing.T) {
	ix := &Index{Fields: []Field{
		{Name: "title", SynonymMaps: []string{"brands"}},
		{Name: "tags", Fields: []Field{{Name: "t", SynonymMaps: []string{"colors", "brands"}}}},
	}}
	want := []string{"brands", "colors"}
	if diff := cmp.Diff(want, ix.ReferencedSynonymMaps()); diff != "" {
		t.Errorf("ReferencedSynonymMaps() mismatch (-want +got):\n%s", diff)
	}
}

func TestAliasesFor(t *testing.T) {
	b := Bundle{Aliases: []Alias{
		{Name: "a", Indexes: []string{"other"}},
		{Name: "b", Indexes: []string{"docs"}},
		{Name: "", Indexes: []string{"docs"}},
		{Name: "c", Indexes: []string{"x", "docs"}},
	}}

	var names []string
	for _, a := range b.AliasesFor("docs") {
		names = append(names, a.Name)
	}
	if diff := cmp.Diff([]string{"b", "c"}, names); diff != "" {
		t.Errorf("AliasesFor() mismatch (-want +got):\n%s", diff)
	}
	if got := b.AliasesFor(""); got != nil {
		t.Errorf("AliasesFor(\"\") = %v, want nil", got)
	}
}

func TestSkillsetNilSafety(t *testing.T) {
	var s *Skillset
	if s.SkipsParentDocuments() {
		t.Error("nil Skillset SkipsParentDocuments() = true")
	}
	if s.Selectors() != nil {
		t.Error("nil Skillset Selectors() != nil")
	}
}

func TestTargetDefaults(t *testing.T) {
	if got := (FieldMapping{SourceFieldName: "a"}).Target(); got != "a" {
		t.Errorf("FieldMapping.Target() = %q, want a", got)
	}
	if got := (OutputField{Name: "x"}).Target(); got != "x" {
		t.Errorf("OutputField.Target() = %q, want x", got)
	}
	if got := (OutputField{Name: "x", TargetName: "y"}).Target(); got != "y" {
		t.Errorf("OutputField.Target() = %q, want y", got)
	}
}
