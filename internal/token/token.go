/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package token defines the event model shared by the markdown tokenizer,
// the playscript filter, and the HTML renderer. A document is a finite,
// ordered sequence of tokens: block and inline start/end markers, text runs,
// code, raw HTML fragments, and line breaks.
package token

// Kind discriminates the token variants.
type Kind int

const (
	// Start opens the block or inline element named by Token.Tag.
	Start Kind = iota
	// End closes the block or inline element named by Token.Tag.
	End
	// Text is a run of plain text. Escaped by the renderer.
	Text
	// Code is an inline code span.
	Code
	// HTML is a raw fragment forwarded to the output without escaping.
	// Playscript directives travel in HTML tokens as comments.
	HTML
	// SoftBreak separates lines inside a paragraph.
	SoftBreak
	// HardBreak is an explicit line break.
	HardBreak
	// Rule is a thematic break. It has no content and no end marker.
	Rule
)

// TagKind names the element a Start/End pair delimits.
type TagKind int

const (
	Paragraph TagKind = iota
	Heading
	BlockQuote
	CodeBlock
	List
	Item
	Emphasis
	Strong
	Strikethrough
	Link
	Image
)

// Tag carries the element kind plus its kind-specific attributes.
type Tag struct {
	Kind TagKind
	// Level is the heading level, 1 through 6.
	Level int
	// Info is the fenced code block info string (language hint).
	Info string
	// Ordered and StartNumber describe a list.
	Ordered     bool
	StartNumber int
	// Destination and Title belong to links and images.
	Destination string
	Title       string
}

// Inline reports whether the tag delimits inline markup rather than a block.
func (t Tag) Inline() bool {
	switch t.Kind {
	case Emphasis, Strong, Strikethrough, Link, Image:
		return true
	}
	return false
}

// Token is one unit of the stream. Tag is meaningful for Start and End,
// Content for Text, Code, and HTML.
type Token struct {
	Kind    Kind
	Tag     Tag
	Content string
}

// StartOf and EndOf build the delimiter pair for a tag.
func StartOf(t Tag) Token { return Token{Kind: Start, Tag: t} }
func EndOf(t Tag) Token   { return Token{Kind: End, Tag: t} }

// TextOf builds a plain text token.
func TextOf(s string) Token { return Token{Kind: Text, Content: s} }

// HTMLOf builds a raw passthrough token.
func HTMLOf(s string) Token { return Token{Kind: HTML, Content: s} }

// IsStart reports whether the token opens an element of the given kind.
func (t Token) IsStart(k TagKind) bool { return t.Kind == Start && t.Tag.Kind == k }

// IsEnd reports whether the token closes an element of the given kind.
func (t Token) IsEnd(k TagKind) bool { return t.Kind == End && t.Tag.Kind == k }
