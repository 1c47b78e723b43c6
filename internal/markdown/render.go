/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package markdown

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/ShotaroTsuji/mdplayscript/internal/token"
)

// Render drains a token stream and writes it as HTML. Raw HTML tokens pass
// through untouched; text and attributes are escaped. Headings support a
// trailing `{#custom-id}` marker in their text, which becomes the id
// attribute instead of being rendered.
func Render(w io.Writer, src token.Stream) error {
	r := &renderer{w: bufio.NewWriter(w), toks: token.Drain(src)}
	for r.pos < len(r.toks) {
		r.emit(r.next())
	}
	return r.w.Flush()
}

type renderer struct {
	w    *bufio.Writer
	toks []token.Token
	pos  int
}

func (r *renderer) next() token.Token {
	t := r.toks[r.pos]
	r.pos++
	return t
}

func (r *renderer) emit(t token.Token) {
	switch t.Kind {
	case token.Start:
		r.startTag(t.Tag)
	case token.End:
		r.endTag(t.Tag)
	case token.Text:
		r.escaped(t.Content)
	case token.Code:
		r.w.WriteString("<code>")
		r.escaped(t.Content)
		r.w.WriteString("</code>")
	case token.HTML:
		r.w.WriteString(t.Content)
	case token.SoftBreak:
		r.w.WriteByte('\n')
	case token.HardBreak:
		r.w.WriteString("<br />\n")
	case token.Rule:
		r.w.WriteString("<hr />\n")
	}
}

func (r *renderer) startTag(tag token.Tag) {
	switch tag.Kind {
	case token.Paragraph:
		r.w.WriteString("<p>")
	case token.Heading:
		r.heading(tag)
	case token.BlockQuote:
		r.w.WriteString("<blockquote>\n")
	case token.CodeBlock:
		if tag.Info != "" {
			fmt.Fprintf(r.w, "<pre><code class=\"language-%s\">", string(util.EscapeHTML([]byte(tag.Info))))
		} else {
			r.w.WriteString("<pre><code>")
		}
	case token.List:
		switch {
		case !tag.Ordered:
			r.w.WriteString("<ul>\n")
		case tag.StartNumber != 1:
			fmt.Fprintf(r.w, "<ol start=\"%d\">\n", tag.StartNumber)
		default:
			r.w.WriteString("<ol>\n")
		}
	case token.Item:
		r.w.WriteString("<li>")
	case token.Emphasis:
		r.w.WriteString("<em>")
	case token.Strong:
		r.w.WriteString("<strong>")
	case token.Strikethrough:
		r.w.WriteString("<del>")
	case token.Link:
		r.w.WriteString("<a href=\"")
		r.w.Write(util.URLEscape([]byte(tag.Destination), true))
		if tag.Title != "" {
			r.w.WriteString("\" title=\"")
			r.w.Write(util.EscapeHTML([]byte(tag.Title)))
		}
		r.w.WriteString("\">")
	case token.Image:
		r.image(tag)
	}
}

func (r *renderer) endTag(tag token.Tag) {
	switch tag.Kind {
	case token.Paragraph:
		r.w.WriteString("</p>\n")
	case token.BlockQuote:
		r.w.WriteString("</blockquote>\n")
	case token.CodeBlock:
		r.w.WriteString("</code></pre>\n")
	case token.List:
		if tag.Ordered {
			r.w.WriteString("</ol>\n")
		} else {
			r.w.WriteString("</ul>\n")
		}
	case token.Item:
		r.w.WriteString("</li>\n")
	case token.Emphasis:
		r.w.WriteString("</em>")
	case token.Strong:
		r.w.WriteString("</strong>")
	case token.Strikethrough:
		r.w.WriteString("</del>")
	case token.Link:
		r.w.WriteString("</a>")
	}
}

// heading consumes the heading's inner tokens so the custom id marker can
// be inspected on the final text run before anything is written.
func (r *renderer) heading(tag token.Tag) {
	level := tag.Level
	if level > 6 {
		level = 6
	}

	var inner []token.Token
	for r.pos < len(r.toks) {
		t := r.next()
		if t.IsEnd(token.Heading) {
			break
		}
		inner = append(inner, t)
	}

	var id string
	if n := len(inner); n > 0 && inner[n-1].Kind == token.Text {
		text, customID, found := splitCustomID(inner[n-1].Content)
		if found {
			id = customID
			inner[n-1] = token.TextOf(text)
		}
	}

	if id != "" {
		fmt.Fprintf(r.w, "<h%d id=\"", level)
		r.w.Write(util.URLEscape([]byte(id), false))
		r.w.WriteString("\">")
	} else {
		fmt.Fprintf(r.w, "<h%d>", level)
	}
	for _, t := range inner {
		r.emit(t)
	}
	fmt.Fprintf(r.w, "</h%d>\n", level)
}

// splitCustomID recognizes a `{#id}` marker and returns the text without
// it. Text lacking the marker is returned unchanged with found=false.
func splitCustomID(s string) (text, id string, found bool) {
	open := strings.Index(s, "{#")
	if open < 0 {
		return s, "", false
	}
	close := strings.IndexByte(s[open+2:], '}')
	if close < 0 {
		return s, "", false
	}
	return strings.TrimRight(s[:open], " \t"), s[open+2 : open+2+close], true
}

// image writes a self-closing img tag, flattening the enclosed tokens into
// the alt attribute.
func (r *renderer) image(tag token.Tag) {
	var alt strings.Builder
	for r.pos < len(r.toks) {
		t := r.next()
		if t.IsEnd(token.Image) {
			break
		}
		if t.Kind == token.Text || t.Kind == token.Code {
			alt.WriteString(t.Content)
		}
	}

	r.w.WriteString("<img src=\"")
	r.w.Write(util.URLEscape([]byte(tag.Destination), true))
	r.w.WriteString("\" alt=\"")
	r.w.Write(util.EscapeHTML([]byte(alt.String())))
	if tag.Title != "" {
		r.w.WriteString("\" title=\"")
		r.w.Write(util.EscapeHTML([]byte(tag.Title)))
	}
	r.w.WriteString("\" />")
}

func (r *renderer) escaped(s string) {
	r.w.Write(util.EscapeHTML([]byte(s)))
}
