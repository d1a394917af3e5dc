package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/indexflow/pkg/errors"
)

// Format identifies the serialization of a bundle document.
type Format string

// Supported bundle formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Issue records a bundle section that was dropped during decoding because it
// was malformed. Dropping is local: the rest of the bundle still decodes.
type Issue struct {
	Path string // e.g. "skillset.skills[2]"
	Err  error
}

func (i Issue) String() string { return fmt.Sprintf("%s: %v", i.Path, i.Err) }

// FormatFromPath infers the bundle format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer bundle format from %q", path)
	}
}

// ReadFile reads and decodes the bundle at path, inferring the format from
// the extension.
func ReadFile(path string) (Bundle, []Issue, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Bundle{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Bundle{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads a bundle document from r.
//
// YAML and TOML documents are first normalized to JSON so that the json tags
// on the resource types are the single source of field names. Decoding is
// lenient: a malformed top-level section, skill, selector, alias or synonym
// map is dropped and reported as an [Issue]. Decode only fails when the
// document cannot be read or is not an object.
func Decode(r io.Reader, format Format) (Bundle, []Issue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, nil, fmt.Errorf("read bundle: %w", err)
	}

	switch format {
	case FormatJSON, "":
	case FormatYAML:
		if data, err = yamlToJSON(data); err != nil {
			return Bundle{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml bundle")
		}
	case FormatTOML:
		if data, err = tomlToJSON(data); err != nil {
			return Bundle{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml bundle")
		}
	default:
		return Bundle{}, nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported bundle format %q", format)
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a JSON bundle document with the same leniency as [Decode].
func DecodeJSON(data []byte) (Bundle, []Issue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Bundle{}, nil, nil
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return Bundle{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bundle must be a JSON object")
	}

	d := decoder{}
	var b Bundle
	if raw, ok := sections["dataSource"]; ok {
		b.DataSource = decodeOptional[DataSource](&d, "dataSource", raw)
	}
	if raw, ok := sections["indexer"]; ok {
		b.Indexer = decodeOptional[Indexer](&d, "indexer", raw)
	}
	if raw, ok := sections["skillset"]; ok {
		b.Skillset = d.skillset(raw)
	}
	if raw, ok := sections["index"]; ok {
		b.Index = decodeOptional[Index](&d, "index", raw)
	}
	if raw, ok := sections["aliases"]; ok {
		b.Aliases = decodeList[Alias](&d, "aliases", raw)
	}
	if raw, ok := sections["synonymMaps"]; ok {
		b.SynonymMaps = decodeList[SynonymMap](&d, "synonymMaps", raw)
	}
	return b, d.issues, nil
}

type decoder struct {
	issues []Issue
}

func (d *decoder) report(path string, err error) {
	d.issues = append(d.issues, Issue{Path: path, Err: err})
}

func isNull(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}

// decodeOptional decodes an object section; null or malformed yields nil.
func decodeOptional[T any](d *decoder, path string, raw json.RawMessage) *T {
	if isNull(raw) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		d.report(path, err)
		return nil
	}
	return &v
}

// decodeList decodes an array element by element, dropping malformed entries.
func decodeList[T any](d *decoder, path string, raw json.RawMessage) []T {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.report(path, err)
		return nil
	}
	var out []T
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			d.report(fmt.Sprintf("%s[%d]", path, i), err)
			continue
		}
		out = append(out, v)
	}
	return out
}

type skillsetEnvelope struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Skills           json.RawMessage `json:"skills"`
	IndexProjections json.RawMessage `json:"indexProjections"`
}

type projectionsEnvelope struct {
	Selectors  json.RawMessage `json:"selectors"`
	Parameters json.RawMessage `json:"parameters"`
}

func (d *decoder) skillset(raw json.RawMessage) *Skillset {
	if isNull(raw) {
		return nil
	}
	var env skillsetEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.report("skillset", err)
		return nil
	}
	s := &Skillset{Name: env.Name, Description: env.Description}
	s.Skills = decodeList[Skill](d, "skillset.skills", env.Skills)

	if !isNull(env.IndexProjections) {
		var proj projectionsEnvelope
		if err := json.Unmarshal(env.IndexProjections, &proj); err != nil {
			d.report("skillset.indexProjections", err)
			return s
		}
		s.IndexProjections = &IndexProjections{
			Selectors:  decodeList[Selector](d, "skillset.indexProjections.selectors", proj.Selectors),
			Parameters: decodeOptional[ProjectionParameters](d, "skillset.indexProjections.parameters", proj.Parameters),
		}
	}
	return s
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return json.Marshal(normalizeKeys(doc))
}

func tomlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// normalizeKeys converts map[any]any values (YAML mappings with non-string
// keys) into map[string]any so they can be marshaled as JSON.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeKeys(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeKeys(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeKeys(val)
		}
		return t
	default:
		return v
	}
}
