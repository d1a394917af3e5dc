package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/indexflow/pkg/pathexpr"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// maxLinkNames is how many field names the field-mapping linkage label
// lists before collapsing the rest into "+N".
const maxLinkNames = 3

// resolveEdges is phase two. It runs over the complete node set.
func (b *builder) resolveEdges() {
	r := resolver{builder: b}
	for _, f := range b.mappedFields {
		r.mapped = append(r.mapped, pathexpr.Join(pathexpr.Document(), f))
	}

	b.pipelineEdges(&r)
	r.skillEdges()
	indexFacing := r.selectorEdges()

	// Never leave a configured indexer disconnected from its index.
	if !indexFacing {
		b.connect(IDIndexer, IDIndex, "")
	}

	if len(r.linked) > 0 {
		b.connect(IDFieldMappings, IDDocument, summarize(r.linked))
	}
}

// pipelineEdges connects the top-level resources in declared pipeline order
// and attaches the mapping groups, aliases and synonym maps.
func (b *builder) pipelineEdges(r *resolver) {
	b.connect(IDDataSource, IDIndexer, "")
	b.connect(IDIndexer, IDSkillset, "")
	b.connect(IDSkillset, IDIndex, "")

	b.connect(IDDataSource, IDFieldMappings, "")
	if ix := b.bundle.Indexer; ix != nil {
		for _, m := range ix.OutputFieldMappings {
			r.outputMappingEdge(m)
		}
	}
	if !b.bundle.Skillset.SkipsParentDocuments() {
		b.connect(IDFieldMappings, IDIndex, "")
		b.connect(IDOutputFieldMappings, IDIndex, "")
	}

	if ix := b.bundle.Index; ix != nil {
		for _, name := range ix.ReferencedSynonymMaps() {
			b.connect(SynonymMapID(name), IDIndex, "")
		}
		for _, a := range b.bundle.AliasesFor(ix.Name) {
			b.connect(IDIndex, AliasID(a.Name), "")
		}
	}
}

// resolver carries the per-build state of source resolution.
type resolver struct {
	*builder

	mapped []pathexpr.Expr // "/document/<target>" of each field mapping
	linked []string        // referenced field-mapping targets, first-seen order
}

// origin returns the node that produces src: the most specific producing
// skill other than exclude, else the document root for document-rooted
// paths. Literals and invalid expressions have no origin.
func (r *resolver) origin(src pathexpr.Expr, exclude string) (string, bool) {
	if !src.IsPath() {
		return "", false
	}
	if m, ok := r.producers.Best(src, exclude); ok {
		return m.Owner, true
	}
	if src.DocumentRooted() && r.has(IDDocument) {
		return IDDocument, true
	}
	return "", false
}

// noteMapped records which field-mapping targets src reads from.
func (r *resolver) noteMapped(src pathexpr.Expr) {
	for i, m := range r.mapped {
		name := r.mappedFields[i]
		if m.Covers(src) && !slices.Contains(r.linked, name) {
			r.linked = append(r.linked, name)
		}
	}
}

// skillEdges draws producer -> consumer edges for every skill input.
func (r *resolver) skillEdges() {
	ss := r.bundle.Skillset
	if ss == nil {
		return
	}
	for i, sk := range ss.Skills {
		id := SkillID(i)
		walkInputs(sk.Inputs, "", func(_ string, in resource.InputField) {
			if in.Source == "" {
				return
			}
			src := pathexpr.Parse(in.Source)
			if from, ok := r.origin(src, id); ok {
				r.connect(from, id, src.Leaf())
			}
			r.noteMapped(src)
		})
	}
}

// selectorEdges draws origin -> selector and selector -> index edges. It
// reports whether any selector reached the index.
func (r *resolver) selectorEdges() bool {
	indexFacing := false
	for _, ref := range r.selectors {
		if len(ref.sel.Mappings) == 0 {
			indexFacing = r.connect(ref.id, IDIndex, "") || indexFacing
			continue
		}
		for _, m := range ref.sel.Mappings {
			walkInputs([]resource.InputField{m}, "", func(_ string, in resource.InputField) {
				if in.Source == "" {
					return
				}
				src := pathexpr.Parse(in.Source)
				if from, ok := r.origin(src, ""); ok {
					r.connect(from, ref.id, src.Leaf())
				}
				r.noteMapped(src)
			})
			indexFacing = r.connect(ref.id, IDIndex, m.Name) || indexFacing
		}
	}
	return indexFacing
}

// outputMappingEdge feeds one output field mapping into its group node from
// the producing skill, the document root, or the skillset as a last resort.
func (r *resolver) outputMappingEdge(m resource.FieldMapping) {
	src := pathexpr.Parse(m.SourceFieldName)
	if !src.IsPath() {
		return
	}
	if from, ok := r.origin(src, ""); ok {
		r.connect(from, IDOutputFieldMappings, src.Leaf())
		return
	}
	if !r.connect(IDSkillset, IDOutputFieldMappings, src.Leaf()) {
		r.connect(IDIndexer, IDOutputFieldMappings, src.Leaf())
	}
}

// summarize renders names as "a, b, c +N".
func summarize(names []string) string {
	if len(names) <= maxLinkNames {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(names[:maxLinkNames], ", "), len(names)-maxLinkNames)
}
