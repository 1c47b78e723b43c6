/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package playscript recognizes stage-play dialogue notation inside a
// markdown token stream and rewrites it into headed speech blocks with
// styled direction spans. Everything that is not dialogue passes through
// unchanged.
//
// The notation is a line of the form
//
//	Character (direction)> speech text (inline direction)
//
// at the start of a paragraph. Four HTML comments control the filter:
// playscript-on, playscript-off, playscript-monologue-begin, and
// playscript-monologue-end.
package playscript

import "github.com/ShotaroTsuji/mdplayscript/internal/token"

// Filter is a pull-based stream transformer. It wraps an upstream token
// source and implements token.Stream itself, buffering at most one
// paragraph of lookahead plus the rewritten tokens pending emission.
//
// A Filter owns one session's state (the on/off and monologue toggles and
// the per-character anchor counters). Use a fresh Filter per document.
type Filter struct {
	src     token.Stream
	queue   []token.Token
	head    int
	state   filterState
	anchors anchorCounter
}

// New wraps src in a playscript filter. The returned filter starts enabled
// and outside any monologue region, with all anchor counters at zero.
func New(src token.Stream) *Filter {
	return &Filter{
		src:     src,
		state:   newFilterState(),
		anchors: make(anchorCounter),
	}
}

// Next implements token.Stream.
func (f *Filter) Next() (token.Token, bool) {
	for {
		if t, ok := f.pop(); ok {
			return t, true
		}

		t, ok := f.src.Next()
		if !ok {
			return token.Token{}, false
		}

		switch {
		case t.Kind == token.HTML:
			// Directive or not, the fragment stays visible in the output.
			f.state.apply(t.Content)
			f.push(t)
		case t.IsStart(token.Paragraph) && f.state.enabled:
			f.paragraph()
		default:
			f.push(t)
		}
	}
}

func (f *Filter) push(t token.Token) { f.queue = append(f.queue, t) }

func (f *Filter) pop() (token.Token, bool) {
	if f.head >= len(f.queue) {
		f.queue = f.queue[:0]
		f.head = 0
		return token.Token{}, false
	}
	t := f.queue[f.head]
	f.head++
	return t, true
}

// paragraph consumes one paragraph from the source and queues its rewritten
// form. The opening Start(Paragraph) has already been consumed.
func (f *Filter) paragraph() {
	inner := f.collectParagraph()

	groups := splitSpeeches(inner)
	if len(groups) == 0 {
		f.queue = emitParagraph(f.queue, nil)
		return
	}

	for _, group := range groups {
		speech, ok := parseSpeech(group)
		switch {
		case ok:
			index := f.anchors.allocate(speech.Character)
			f.queue = emitSpeech(f.queue, speech, index, f.state.inMonologue)
		case f.state.inMonologue:
			f.queue = emitMonologue(f.queue, group)
		default:
			f.queue = emitParagraph(f.queue, group)
		}
	}
}

// collectParagraph buffers the paragraph body up to, and excluding, the
// closing End(Paragraph). Paragraphs do not nest. A source that ends before
// the closing token yields whatever was gathered; permissive, like the rest
// of the filter.
func (f *Filter) collectParagraph() []token.Token {
	var inner []token.Token
	for {
		t, ok := f.src.Next()
		if !ok || t.IsEnd(token.Paragraph) {
			return inner
		}
		inner = append(inner, t)
	}
}
