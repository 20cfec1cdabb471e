package kicad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"
)

// children returns the elements of a list node, head included.
func children(s sexp.Sexp) []sexp.Sexp {
	var items []sexp.Sexp
	if s == nil || s.IsLeaf() {
		return items
	}

	for i := 0; i < 1_000_000; i++ {
		if s == nil || s.LeafCount() == 0 {
			break
		}
		if head := s.Head(); head != nil {
			items = append(items, head)
		}
		if s.LeafCount() <= 1 {
			break
		}
		s = s.Tail()
		if s == nil || s.IsLeaf() {
			break
		}
	}
	return items
}

// atom returns a leaf's text without surrounding quotes.
func atom(s sexp.Sexp) string {
	if s == nil || !s.IsLeaf() {
		return ""
	}
	return strings.Trim(fmt.Sprint(s), `"`)
}

// key returns the first symbol of a list node.
func key(s sexp.Sexp) string {
	items := children(s)
	if len(items) == 0 {
		return ""
	}
	return atom(items[0])
}

// find returns the first child list of s whose key is k.
func find(s sexp.Sexp, k string) (sexp.Sexp, bool) {
	for _, item := range children(s) {
		if !item.IsLeaf() && key(item) == k {
			return item, true
		}
	}
	return nil, false
}

// findAll returns every child list of s whose key is k.
func findAll(s sexp.Sexp, k string) []sexp.Sexp {
	var out []sexp.Sexp
	for _, item := range children(s) {
		if !item.IsLeaf() && key(item) == k {
			out = append(out, item)
		}
	}
	return out
}

// floatAt parses the index-th element of s (0 is the key).
func floatAt(s sexp.Sexp, index int) (float64, error) {
	items := children(s)
	if index < 0 || index >= len(items) {
		return 0, fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}
	str := atom(items[index])
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return v, nil
}

// xy reads an (xy X Y) or (at X Y ...) node.
func xy(s sexp.Sexp) (float64, float64, error) {
	x, err := floatAt(s, 1)
	if err != nil {
		return 0, 0, err
	}
	y, err := floatAt(s, 2)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
