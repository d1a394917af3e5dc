package pathexpr

// Matcher accepts candidate paths produced by one output.
type Matcher struct {
	Owner  string // id of the producing stage
	Output Expr   // absolute output path (context/targetName)
}

// Accepts reports whether candidate equals the output path or is nested
// under it.
func (m Matcher) Accepts(candidate Expr) bool {
	return m.Output.Covers(candidate)
}

// Registry holds output matchers in registration order.
//
// The order is part of the contract: when two outputs of equal specificity
// accept the same candidate, the one registered first wins.
type Registry struct {
	matchers []Matcher
}

// Add registers an output path for owner. Non-path outputs are ignored.
func (r *Registry) Add(owner string, output Expr) {
	if !output.IsPath() {
		return
	}
	r.matchers = append(r.matchers, Matcher{Owner: owner, Output: output})
}

// Len returns the number of registered matchers.
func (r *Registry) Len() int { return len(r.matchers) }

// Best returns the matcher that accepts candidate with the longest output
// path string, skipping matchers owned by exclude. Ties go to the
// first-registered matcher.
func (r *Registry) Best(candidate Expr, exclude string) (Matcher, bool) {
	var (
		best    Matcher
		bestLen = -1
	)
	if !candidate.IsPath() {
		return best, false
	}
	for _, m := range r.matchers {
		if m.Owner == exclude {
			continue
		}
		if !m.Accepts(candidate) {
			continue
		}
		if n := len(m.Output.String()); n > bestLen {
			best, bestLen = m, n
		}
	}
	return best, bestLen >= 0
}
