package resource

// ProjectionModeSkipParent is the projection mode that stops the indexer from
// writing the parent document into the target index. When set, field-mapping
// groups do not feed the index directly.
const ProjectionModeSkipParent = "skipIndexingParentDocuments"

// Bundle is the set of resource descriptions that make up one ingestion
// pipeline. Every field is optional; the zero Bundle describes nothing.
type Bundle struct {
	DataSource  *DataSource  `json:"dataSource,omitempty"`
	Indexer     *Indexer     `json:"indexer,omitempty"`
	Skillset    *Skillset    `json:"skillset,omitempty"`
	Index       *Index       `json:"index,omitempty"`
	Aliases     []Alias      `json:"aliases,omitempty"`
	SynonymMaps []SynonymMap `json:"synonymMaps,omitempty"`
}

// DataSource describes where the indexer pulls raw documents from.
type DataSource struct {
	Name        string     `json:"name,omitempty"`
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Container   *Container `json:"container,omitempty"`
}

// Container names the collection, table or blob container of a data source.
type Container struct {
	Name  string `json:"name,omitempty"`
	Query string `json:"query,omitempty"`
}

// Indexer connects a data source, an optional skillset and a target index.
type Indexer struct {
	Name                string         `json:"name,omitempty"`
	Description         string         `json:"description,omitempty"`
	DataSourceName      string         `json:"dataSourceName,omitempty"`
	SkillsetName        string         `json:"skillsetName,omitempty"`
	TargetIndexName     string         `json:"targetIndexName,omitempty"`
	FieldMappings       []FieldMapping `json:"fieldMappings,omitempty"`
	OutputFieldMappings []FieldMapping `json:"outputFieldMappings,omitempty"`
	Disabled            *bool          `json:"disabled,omitempty"`
}

// FieldMapping copies a source field into a target field, optionally through
// a mapping function.
type FieldMapping struct {
	SourceFieldName string           `json:"sourceFieldName,omitempty"`
	TargetFieldName string           `json:"targetFieldName,omitempty"`
	MappingFunction *MappingFunction `json:"mappingFunction,omitempty"`
}

// Target returns the effective target field name. The service defaults an
// unset target to the source field name.
func (m FieldMapping) Target() string {
	if m.TargetFieldName != "" {
		return m.TargetFieldName
	}
	return m.SourceFieldName
}

// MappingFunction names a built-in transformation applied by a field mapping.
type MappingFunction struct {
	Name string `json:"name,omitempty"`
}

// Skillset is an ordered list of enrichment skills plus optional index
// projections.
type Skillset struct {
	Name             string            `json:"name,omitempty"`
	Description      string            `json:"description,omitempty"`
	Skills           []Skill           `json:"skills,omitempty"`
	IndexProjections *IndexProjections `json:"indexProjections,omitempty"`
}

// SkipsParentDocuments reports whether the projection parameters disable
// indexing of the parent document. A nil skillset never skips.
func (s *Skillset) SkipsParentDocuments() bool {
	if s == nil || s.IndexProjections == nil || s.IndexProjections.Parameters == nil {
		return false
	}
	return s.IndexProjections.Parameters.ProjectionMode == ProjectionModeSkipParent
}

// Selectors returns the projection selectors, or nil when none are declared.
func (s *Skillset) Selectors() []Selector {
	if s == nil || s.IndexProjections == nil {
		return nil
	}
	return s.IndexProjections.Selectors
}

// Skill is one enrichment stage. Inputs bind names to source path
// expressions; outputs bind names to target names under the skill context.
type Skill struct {
	ODataType   string        `json:"@odata.type,omitempty"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Context     string        `json:"context,omitempty"`
	Inputs      []InputField  `json:"inputs,omitempty"`
	Outputs     []OutputField `json:"outputs,omitempty"`
}

// InputField binds a named input to a source expression. Complex inputs
// (shaper skills, projection mappings) nest further inputs.
type InputField struct {
	Name          string       `json:"name,omitempty"`
	Source        string       `json:"source,omitempty"`
	SourceContext string       `json:"sourceContext,omitempty"`
	Inputs        []InputField `json:"inputs,omitempty"`
}

// OutputField binds a named skill output to a target name.
type OutputField struct {
	Name       string `json:"name,omitempty"`
	TargetName string `json:"targetName,omitempty"`
}

// Target returns the effective target name. The service defaults an unset
// target name to the output name.
func (o OutputField) Target() string {
	if o.TargetName != "" {
		return o.TargetName
	}
	return o.Name
}

// IndexProjections maps enriched content into (usually chunk-level) documents
// of a target index.
type IndexProjections struct {
	Selectors  []Selector            `json:"selectors,omitempty"`
	Parameters *ProjectionParameters `json:"parameters,omitempty"`
}

// ProjectionParameters carries projection-wide settings.
type ProjectionParameters struct {
	ProjectionMode string `json:"projectionMode,omitempty"`
}

// Selector projects one enriched node (SourceContext) into documents of
// TargetIndexName through field-level mappings.
type Selector struct {
	TargetIndexName    string       `json:"targetIndexName,omitempty"`
	ParentKeyFieldName string       `json:"parentKeyFieldName,omitempty"`
	SourceContext      string       `json:"sourceContext,omitempty"`
	Mappings           []InputField `json:"mappings,omitempty"`
}

// Index is the target search index.
type Index struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Field is an index field. Complex fields nest sub-fields.
type Field struct {
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Key         *bool    `json:"key,omitempty"`
	Searchable  *bool    `json:"searchable,omitempty"`
	Filterable  *bool    `json:"filterable,omitempty"`
	Retrievable *bool    `json:"retrievable,omitempty"`
	SynonymMaps []string `json:"synonymMaps,omitempty"`
	Fields      []Field  `json:"fields,omitempty"`
}

// Alias is a stable name that points at one or more indexes.
type Alias struct {
	Name    string   `json:"name,omitempty"`
	Indexes []string `json:"indexes,omitempty"`
}

// SynonymMap is a named set of synonym rules referenced by index fields.
type SynonymMap struct {
	Name     string `json:"name,omitempty"`
	Format   string `json:"format,omitempty"`
	Synonyms string `json:"synonyms,omitempty"`
}
