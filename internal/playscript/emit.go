/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package playscript

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/ShotaroTsuji/mdplayscript/internal/token"
)

// Class names used in the emitted structure. Fixed: the stylesheet side of
// the contract keys on them.
const (
	speechClass    = "speech"
	characterClass = "character"
	directionClass = "direction"
	headerClass    = "header"
)

// emitSpeech renders one recognized speech into output tokens:
//
//	<div class="speech"><h5 id="Name-N"><a class="header" href="#Name-N">
//	<span class="character">Name</span>[<span class="direction">Dir</span>]
//	</a></h5><p>…body spans…</p></div>
//
// N is the zero-based occurrence index of the character within the session.
// While monologue is set, body narrative is emitted as plain paragraph text
// and directions switch to an emphasized variant.
func emitSpeech(out []token.Token, s Speech, index int, monologue bool) []token.Token {
	// id and fragment must stay textually identical so the link resolves
	// without percent-decoding surprises; one escaping for both.
	anchor := string(util.EscapeHTML([]byte(fmt.Sprintf("%s-%d", s.Character, index))))

	out = append(out,
		token.HTMLOf(fmt.Sprintf(`<div class="%s"><h5 id="%s"><a class="%s" href="#%s"><span class="%s">`,
			speechClass, anchor, headerClass, anchor, characterClass)),
		token.TextOf(s.Character),
		token.HTMLOf(`</span>`),
	)
	if s.PostNameDirection != "" {
		out = append(out,
			token.HTMLOf(fmt.Sprintf(`<span class="%s">`, directionClass)),
			token.TextOf(s.PostNameDirection),
			token.HTMLOf(`</span>`),
		)
	}
	out = append(out, token.HTMLOf(`</a></h5>`), token.HTMLOf(`<p>`))
	out = emitBody(out, s.Body, monologue)
	return append(out, token.HTMLOf(`</p></div>`))
}

// emitBody rewrites the body tokens, splitting each text run into narrative
// and direction spans. Non-text tokens (inline markup, breaks, code, raw
// HTML) are forwarded in place.
func emitBody(out []token.Token, body []token.Token, monologue bool) []token.Token {
	for _, t := range body {
		if t.Kind != token.Text {
			out = append(out, t)
			continue
		}
		out = emitSegments(out, ExtractDirections(t.Content), monologue)
	}
	return out
}

func emitSegments(out []token.Token, segs []Segment, monologue bool) []token.Token {
	for i, seg := range segs {
		content := seg.Content
		if seg.Kind == Direction {
			content = strings.TrimSpace(content)
		} else {
			// Drop the spacing that separated the narrative from an
			// adjacent direction; the stylesheet supplies it.
			if i+1 < len(segs) && segs[i+1].Kind == Direction {
				content = strings.TrimRight(content, " \t")
			}
			if i > 0 && segs[i-1].Kind == Direction {
				content = strings.TrimLeft(content, " \t")
			}
		}
		if content == "" {
			continue
		}

		switch {
		case seg.Kind == Direction && monologue:
			out = append(out,
				token.HTMLOf(fmt.Sprintf(`<em class="%s">`, directionClass)),
				token.TextOf(content),
				token.HTMLOf(`</em>`),
			)
		case seg.Kind == Direction:
			out = append(out,
				token.HTMLOf(fmt.Sprintf(`<span class="%s">`, directionClass)),
				token.TextOf(content),
				token.HTMLOf(`</span>`),
			)
		case monologue:
			// Monologue narrative reads as running prose, no span wrapper.
			out = append(out, token.TextOf(content))
		default:
			out = append(out, token.HTMLOf(`<span>`), token.TextOf(content), token.HTMLOf(`</span>`))
		}
	}
	return out
}

// emitMonologue rewrites an unrecognized paragraph inside a monologue
// region: the paragraph structure is kept, narrative stays plain, and
// parenthesized directions become emphasized spans.
func emitMonologue(out []token.Token, inner []token.Token) []token.Token {
	p := token.Tag{Kind: token.Paragraph}
	out = append(out, token.StartOf(p))
	out = emitBody(out, inner, true)
	return append(out, token.EndOf(p))
}

// emitParagraph re-wraps a fallback group in its paragraph delimiters,
// byte-identical to the input.
func emitParagraph(out []token.Token, inner []token.Token) []token.Token {
	p := token.Tag{Kind: token.Paragraph}
	out = append(out, token.StartOf(p))
	out = append(out, inner...)
	return append(out, token.EndOf(p))
}
