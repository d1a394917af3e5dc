// Package pathexpr parses the path expressions that bind skill inputs,
// skill outputs, field mappings and projection mappings to locations in the
// enriched document tree.
//
// Expressions are parsed once into an [Expr] carrying normalized segments
// and wildcard positions; matching then works on segments only:
//
//	out := pathexpr.Join(pathexpr.Parse("/document/pages/*"), "keyphrases")
//	in := pathexpr.Parse("=/document/pages/*/keyphrases/*")
//	out.Covers(in) // true
//
// A [Registry] collects one [Matcher] per output and picks the most specific
// producer for a source path.
package pathexpr
