// Package text implements text algorithms on rune builders.
//
// Everything here is a thin composition of builder primitives: padding is
// repeated prepend/append, wrapping is prepend plus append, splitting reads
// the builder's span once, and case transforms rewrite the content through
// golang.org/x/text/cases.
//
//	b := builder.FromString("42")
//	text.PadLeft(b, 10, "0") // "0000000042"
//
//	b = builder.FromString("parseHTTPRequest")
//	text.ToSnake(b) // "parse_http_request"
//
//	b = builder.FromString("a, b,,c")
//	text.Split(b, text.Rune(','), text.SplitOptions{TrimEntries: true, RemoveEmpty: true})
//	// ["a" "b" "c"]
package text
