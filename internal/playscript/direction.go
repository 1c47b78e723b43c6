/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package playscript

import "strings"

// SegmentKind tags a piece of speech text as spoken narrative or as a
// parenthesized stage direction.
type SegmentKind int

const (
	Narrative SegmentKind = iota
	Direction
)

// Segment is one contiguous piece of a text run. Concatenating the contents
// of all segments of a run, re-inserting parentheses around Direction
// segments, reconstructs the run.
type Segment struct {
	Content string
	Kind    SegmentKind
}

// ExtractDirections splits one text run into narrative and direction
// segments. The scan is a two-state machine: at depth zero characters
// accumulate as narrative; an opening parenthesis switches to a direction
// segment, which runs until the parenthesis that brings the depth back to
// zero. Nested parentheses inside a direction are kept as literal characters.
// An unterminated direction runs to the end of the text; malformed
// manuscripts are expected input and never an error.
//
// Each run is scanned independently. A parenthesis opened in one run is not
// matched against a closing one in a later run.
func ExtractDirections(s string) []Segment {
	var segs []Segment
	var pending strings.Builder
	depth := 0

	flush := func(kind SegmentKind) {
		if pending.Len() == 0 {
			return
		}
		segs = append(segs, Segment{Content: pending.String(), Kind: kind})
		pending.Reset()
	}

	for _, r := range s {
		switch {
		case r == '(' && depth == 0:
			flush(Narrative)
			depth = 1
		case r == '(' && depth > 0:
			depth++
			pending.WriteRune(r)
		case r == ')' && depth == 1:
			flush(Direction)
			depth = 0
		case r == ')' && depth > 1:
			depth--
			pending.WriteRune(r)
		default:
			pending.WriteRune(r)
		}
	}

	if depth > 0 {
		flush(Direction)
	} else {
		flush(Narrative)
	}

	return segs
}
