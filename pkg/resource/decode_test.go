package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/indexflow/pkg/errors"
)

const sampleJSON = `{
  "dataSource": {"name": "docs", "type": "azureblob", "container": {"name": "raw"}},
  "indexer": {
    "name": "docs-indexer",
    "fieldMappings": [{"sourceFieldName": "metadata_storage_path", "targetFieldName": "id"}]
  },
  "skillset": {
    "name": "docs-skills",
    "skills": [
      {
        "@odata.type": "#Microsoft.Skills.Text.SplitSkill",
        "name": "split",
        "context": "/document",
        "inputs": [{"name": "text", "source": "/document/content"}],
        "outputs": [{"name": "textItems", "targetName": "pages"}]
      }
    ],
    "indexProjections": {
      "selectors": [{"targetIndexName": "docs-index", "sourceContext": "/document/pages/*",
        "mappings": [{"name": "chunk", "source": "/document/pages/*"}]}],
      "parameters": {"projectionMode": "skipIndexingParentDocuments"}
    }
  },
  "index": {"name": "docs-index", "fields": [{"name": "id", "type": "Edm.String", "key": true}]},
  "aliases": [{"name": "docs", "indexes": ["docs-index"]}]
}`

func TestDecodeJSON(t *testing.T) {
	b, issues, err := DecodeJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("DecodeJSON() issues = %v, want none", issues)
	}

	if b.DataSource == nil || b.DataSource.Name != "docs" {
		t.Errorf("DataSource = %+v, want name docs", b.DataSource)
	}
	if got := b.Indexer.FieldMappings[0].Target(); got != "id" {
		t.Errorf("FieldMappings[0].Target() = %q, want id", got)
	}
	if len(b.Skillset.Skills) != 1 || b.Skillset.Skills[0].ODataType != "#Microsoft.Skills.Text.SplitSkill" {
		t.Errorf("Skills = %+v", b.Skillset.Skills)
	}
	if !b.Skillset.SkipsParentDocuments() {
		t.Error("SkipsParentDocuments() = false, want true")
	}
	if n := len(b.Skillset.Selectors()); n != 1 {
		t.Errorf("Selectors() len = %d, want 1", n)
	}
	if len(b.Aliases) != 1 || b.Aliases[0].Name != "docs" {
		t.Errorf("Aliases = %+v", b.Aliases)
	}
}

func TestDecodeJSON_Lenient(t *testing.T) {
	doc := `{
		"dataSource": "not an object",
		"indexer": {"name": "ok"},
		"skillset": {"skills": [
			{"name": "good", "outputs": [{"name": "x"}]},
			{"name": 42},
			{"name": "also-good"}
		]},
		"aliases": [{"name": "a", "indexes": "oops"}, {"name": "b"}]
	}`

	b, issues, err := DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}

	if b.DataSource != nil {
		t.Errorf("DataSource = %+v, want nil", b.DataSource)
	}
	if b.Indexer == nil || b.Indexer.Name != "ok" {
		t.Errorf("Indexer = %+v, want name ok", b.Indexer)
	}

	var names []string
	for _, s := range b.Skillset.Skills {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"good", "also-good"}, names); diff != "" {
		t.Errorf("skill names mismatch (-want +got):\n%s", diff)
	}
	if len(b.Aliases) != 1 || b.Aliases[0].Name != "b" {
		t.Errorf("Aliases = %+v, want only b", b.Aliases)
	}

	var paths []string
	for _, is := range issues {
		paths = append(paths, is.Path)
	}
	want := []string{"dataSource", "skillset.skills[1]", "aliases[0]"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("issue paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_Empty(t *testing.T) {
	for _, doc := range []string{"", "  ", "{}", `{"dataSource": null}`} {
		b, issues, err := DecodeJSON([]byte(doc))
		if err != nil {
			t.Errorf("DecodeJSON(%q) error: %v", doc, err)
		}
		if len(issues) != 0 {
			t.Errorf("DecodeJSON(%q) issues = %v", doc, issues)
		}
		if !b.IsEmpty() {
			t.Errorf("DecodeJSON(%q) = %+v, want empty bundle", doc, b)
		}
	}
}

func TestDecodeJSON_NotObject(t *testing.T) {
	_, _, err := DecodeJSON([]byte(`[1, 2, 3]`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("DecodeJSON(array) error = %v, want INVALID_INPUT", err)
	}
}

func TestDecode_YAML(t *testing.T) {
	doc := `
indexer:
  name: docs-indexer
skillset:
  skills:
    - "@odata.type": "#Microsoft.Skills.Text.SplitSkill"
      name: split
      inputs:
        - name: text
          source: /document/content
index:
  name: docs-index
`
	b, issues, err := Decode(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Decode(yaml) error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("Decode(yaml) issues = %v", issues)
	}
	if b.Indexer.Name != "docs-indexer" || b.Index.Name != "docs-index" {
		t.Errorf("Decode(yaml) = %+v", b)
	}
	if got := b.Skillset.Skills[0].Inputs[0].Source; got != "/document/content" {
		t.Errorf("skill input source = %q", got)
	}
}

func TestDecode_TOML(t *testing.T) {
	doc := `
[indexer]
name = "docs-indexer"

[[indexer.fieldMappings]]
sourceFieldName = "path"
targetFieldName = "id"

[index]
name = "docs-index"
`
	b, _, err := Decode(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("Decode(toml) error: %v", err)
	}
	if b.Indexer == nil || len(b.Indexer.FieldMappings) != 1 {
		t.Fatalf("Decode(toml) indexer = %+v", b.Indexer)
	}
	if b.Index.Name != "docs-index" {
		t.Errorf("Index.Name = %q", b.Index.Name)
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, _, err := Decode(strings.NewReader("{}"), Format("xml"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	b, _, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if b.Index == nil || b.Index.Name != "docs-index" {
		t.Errorf("ReadFile() index = %+v", b.Index)
	}

	_, _, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	_, _, err = ReadFile(filepath.Join(dir, "bundle.txt"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(.txt) error = %v, want INVALID_FORMAT", err)
	}
}
