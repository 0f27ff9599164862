// Package parser turns puzzle input lines into values.
//
// It provides line readers, integer and string tokenizers, a generic
// regular-expression decoder, paragraph grouping and the conversion of
// lines into a grid.Grid. Every function returns an error instead of
// panicking on malformed input.
package parser
