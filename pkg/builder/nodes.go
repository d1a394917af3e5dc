package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/pathexpr"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// Resource category tags.
const (
	ResourceDataSource = "datasource"
	ResourceIndexer    = "indexer"
	ResourceSkillset   = "skillset"
	ResourceIndex      = "index"
	ResourceAlias      = "alias"
	ResourceSynonymMap = "synonymmap"
	ResourceSkill      = "skill"
	ResourceSelector   = "selector"
	ResourceMapping    = "mapping"
	ResourceDocument   = "document"
)

// Action category tags.
const (
	ActionRead    = "read"
	ActionRun     = "run"
	ActionEnrich  = "enrich"
	ActionStore   = "store"
	ActionRoute   = "route"
	ActionExpand  = "expand"
	ActionProject = "project"
	ActionMap     = "map"
	ActionRoot    = "root"
)

// collectNodes is phase one: every node, in creation order.
func (b *builder) collectNodes() {
	bd := b.bundle

	if ds := bd.DataSource; ds != nil {
		b.addNode(dataSourceNode(ds))
	}
	if ix := bd.Indexer; ix != nil {
		b.addNode(indexerNode(ix))
		if len(ix.FieldMappings) > 0 {
			b.addNode(mappingNode(IDFieldMappings, "Field mappings", ix.FieldMappings))
			for _, m := range ix.FieldMappings {
				if t := m.Target(); t != "" {
					b.mappedFields = append(b.mappedFields, t)
				}
			}
		}
		if len(ix.OutputFieldMappings) > 0 {
			b.addNode(mappingNode(IDOutputFieldMappings, "Output field mappings", ix.OutputFieldMappings))
		}
	}

	ss := bd.Skillset
	if ss != nil {
		b.addNode(skillsetNode(ss))
	}
	if bd.Index != nil {
		b.addNode(indexNode(bd.Index))
	}

	selectors := ss.Selectors()
	if ss != nil && (len(ss.Skills) > 0 || len(selectors) > 0) {
		b.addNode(graph.Node{
			ID:   IDDocument,
			Kind: graph.KindDocument,
			Data: graph.Payload{
				Title:    "Document",
				Subtitle: "/" + pathexpr.Root,
				Resource: ResourceDocument,
				Action:   ActionRoot,
			},
		})
	}

	if ss != nil {
		for i, sk := range ss.Skills {
			id := SkillID(i)
			b.addNode(skillNode(id, i, sk))
			context := pathexpr.Parse(sk.Context)
			for _, o := range sk.Outputs {
				if t := o.Target(); t != "" {
					b.producers.Add(id, pathexpr.Join(context, t))
				}
			}
		}
	}

	if bd.Index != nil {
		for i, sel := range selectors {
			if !targetsIndex(sel, bd.Index) {
				continue
			}
			id := SelectorID(i)
			b.addNode(selectorNode(id, sel))
			b.selectors = append(b.selectors, selectorRef{id: id, sel: sel})
		}
		for _, a := range bd.AliasesFor(bd.Index.Name) {
			b.addNode(graph.Node{
				ID:   AliasID(a.Name),
				Kind: graph.KindResource,
				Data: graph.Payload{
					Title:    a.Name,
					Subtitle: "Alias",
					Details:  slices.Clone(a.Indexes),
					Resource: ResourceAlias,
					Action:   ActionRoute,
				},
			})
		}
		for _, name := range bd.Index.ReferencedSynonymMaps() {
			b.addNode(synonymMapNode(bd, name))
		}
	}
}

// targetsIndex reports whether a selector projects into ix. An unset target
// means the current index.
func targetsIndex(sel resource.Selector, ix *resource.Index) bool {
	return sel.TargetIndexName == "" || sel.TargetIndexName == ix.Name
}

func dataSourceNode(ds *resource.DataSource) graph.Node {
	var details []string
	if ds.Container != nil {
		if ds.Container.Name != "" {
			details = append(details, "container: "+ds.Container.Name)
		}
		if ds.Container.Query != "" {
			details = append(details, "query: "+ds.Container.Query)
		}
	}
	return graph.Node{
		ID:   IDDataSource,
		Kind: graph.KindResource,
		Data: graph.Payload{
			Title:    orDefault(ds.Name, "Data source"),
			Subtitle: orDefault(ds.Type, "Data source"),
			Details:  details,
			Resource: ResourceDataSource,
			Action:   ActionRead,
		},
	}
}

func indexerNode(ix *resource.Indexer) graph.Node {
	var details []string
	if n := len(ix.FieldMappings); n > 0 {
		details = append(details, plural(n, "field mapping"))
	}
	if n := len(ix.OutputFieldMappings); n > 0 {
		details = append(details, plural(n, "output field mapping"))
	}
	if ix.Disabled != nil && *ix.Disabled {
		details = append(details, "disabled")
	}
	return graph.Node{
		ID:   IDIndexer,
		Kind: graph.KindResource,
		Data: graph.Payload{
			Title:    orDefault(ix.Name, "Indexer"),
			Subtitle: "Indexer",
			Details:  details,
			Resource: ResourceIndexer,
			Action:   ActionRun,
		},
	}
}

func mappingNode(id, title string, mappings []resource.FieldMapping) graph.Node {
	details := make([]string, 0, len(mappings))
	for _, m := range mappings {
		line := m.SourceFieldName + " → " + m.Target()
		if m.MappingFunction != nil && m.MappingFunction.Name != "" {
			line += " (" + m.MappingFunction.Name + ")"
		}
		details = append(details, line)
	}
	return graph.Node{
		ID:   id,
		Kind: graph.KindMapping,
		Data: graph.Payload{
			Title:    title,
			Subtitle: plural(len(mappings), "mapping"),
			Details:  details,
			Resource: ResourceMapping,
			Action:   ActionMap,
		},
	}
}

func skillsetNode(ss *resource.Skillset) graph.Node {
	var details []string
	if n := len(ss.Selectors()); n > 0 {
		details = append(details, plural(n, "projection selector"))
	}
	if ss.SkipsParentDocuments() {
		details = append(details, "skips parent documents")
	}
	return graph.Node{
		ID:   IDSkillset,
		Kind: graph.KindResource,
		Data: graph.Payload{
			Title:    orDefault(ss.Name, "Skillset"),
			Subtitle: plural(len(ss.Skills), "skill"),
			Details:  details,
			Resource: ResourceSkillset,
			Action:   ActionEnrich,
		},
	}
}

func indexNode(ix *resource.Index) graph.Node {
	var details []string
	for _, f := range ix.Fields {
		if f.Key != nil && *f.Key {
			details = append(details, "key: "+f.Name)
			break
		}
	}
	return graph.Node{
		ID:   IDIndex,
		Kind: graph.KindResource,
		Data: graph.Payload{
			Title:    orDefault(ix.Name, "Index"),
			Subtitle: plural(len(ix.FieldNames()), "field"),
			Details:  details,
			Resource: ResourceIndex,
			Action:   ActionStore,
		},
	}
}

func skillNode(id string, i int, sk resource.Skill) graph.Node {
	kind := shortType(sk.ODataType)
	var details []string
	if sk.Context != "" {
		details = append(details, "context: "+sk.Context)
	}
	walkInputs(sk.Inputs, "", func(name string, in resource.InputField) {
		if in.Source != "" {
			details = append(details, name+" ← "+in.Source)
		}
	})
	for _, o := range sk.Outputs {
		details = append(details, o.Name+" → "+o.Target())
	}
	return graph.Node{
		ID:   id,
		Kind: graph.KindSkill,
		Data: graph.Payload{
			Title:    orDefault(orDefault(sk.Name, kind), fmt.Sprintf("Skill %d", i+1)),
			Subtitle: orDefault(kind, "Skill"),
			Details:  details,
			Resource: ResourceSkill,
			Action:   ActionEnrich,
		},
	}
}

func selectorNode(id string, sel resource.Selector) graph.Node {
	var details []string
	if sel.SourceContext != "" {
		details = append(details, "context: "+sel.SourceContext)
	}
	for _, m := range sel.Mappings {
		if m.Source != "" {
			details = append(details, m.Name+" ← "+m.Source)
		} else {
			details = append(details, m.Name)
		}
	}
	subtitle := "Index projection"
	if sel.ParentKeyFieldName != "" {
		subtitle += " (parent key " + sel.ParentKeyFieldName + ")"
	}
	return graph.Node{
		ID:   id,
		Kind: graph.KindSelector,
		Data: graph.Payload{
			Title:    orDefault(sel.TargetIndexName, "Projection"),
			Subtitle: subtitle,
			Details:  details,
			Resource: ResourceSelector,
			Action:   ActionProject,
		},
	}
}

func synonymMapNode(bd resource.Bundle, name string) graph.Node {
	n := graph.Node{
		ID:   SynonymMapID(name),
		Kind: graph.KindResource,
		Data: graph.Payload{
			Title:    name,
			Subtitle: "Synonym map",
			Resource: ResourceSynonymMap,
			Action:   ActionExpand,
		},
	}
	if sm, ok := bd.SynonymMap(name); ok {
		if sm.Format != "" {
			n.Data.Details = append(n.Data.Details, "format: "+sm.Format)
		}
		if rules := countRules(sm.Synonyms); rules > 0 {
			n.Data.Details = append(n.Data.Details, plural(rules, "rule"))
		}
	} else {
		n.Data.Details = []string{"not loaded"}
	}
	return n
}

// walkInputs visits inputs depth first. Nested inputs are named
// "parent/child".
func walkInputs(inputs []resource.InputField, prefix string, fn func(name string, in resource.InputField)) {
	for _, in := range inputs {
		name := prefix + in.Name
		fn(name, in)
		walkInputs(in.Inputs, name+"/", fn)
	}
}

// shortType turns "#Microsoft.Skills.Text.SplitSkill" into "SplitSkill".
func shortType(odataType string) string {
	t := strings.TrimPrefix(strings.TrimSpace(odataType), "#")
	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}
	return t
}

func countRules(synonyms string) int {
	n := 0
	for _, line := range strings.Split(synonyms, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
