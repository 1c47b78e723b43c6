/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package playscript

import "strings"

// Directive markers recognized inside HTML comments. The comment itself is
// always forwarded to the output; a directive changes how the following
// blocks are processed but is never consumed.
const (
	DirectiveOn             = "playscript-on"
	DirectiveOff            = "playscript-off"
	DirectiveMonologueBegin = "playscript-monologue-begin"
	DirectiveMonologueEnd   = "playscript-monologue-end"
)

// filterState is the per-session toggle state. A fresh session starts
// enabled and outside any monologue region.
type filterState struct {
	enabled     bool
	inMonologue bool
}

func newFilterState() filterState {
	return filterState{enabled: true}
}

// apply inspects a raw HTML fragment for a directive and updates the state.
// Anything that is not one of the four markers leaves the state untouched.
func (st *filterState) apply(fragment string) {
	switch directiveIn(fragment) {
	case DirectiveOn:
		st.enabled = true
	case DirectiveOff:
		st.enabled = false
	case DirectiveMonologueBegin:
		st.inMonologue = true
	case DirectiveMonologueEnd:
		st.inMonologue = false
	}
}

// directiveIn strips the conventional comment delimiters, when present, and
// surrounding whitespace from a raw fragment, returning the text compared
// against the marker strings.
func directiveIn(fragment string) string {
	s := strings.TrimSpace(fragment)
	if strings.HasPrefix(s, "<!--") && strings.HasSuffix(s, "-->") {
		s = strings.TrimSpace(s[len("<!--") : len(s)-len("-->")])
	}
	return s
}

// anchorCounter maps a character name to the number of speeches already
// emitted for it within the session.
type anchorCounter map[string]int

// allocate returns the zero-based occurrence index for name and advances
// the counter. The first speech of any character gets index 0.
func (c anchorCounter) allocate(name string) int {
	n := c[name]
	c[name] = n + 1
	return n
}
