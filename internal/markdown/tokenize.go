/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package markdown adapts goldmark to the token stream model consumed by
// the playscript filter: Tokenize flattens a parsed document into tokens,
// Render writes a token stream back out as HTML. The filter itself never
// touches markdown source or HTML bytes; both live here.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ShotaroTsuji/mdplayscript/internal/token"
)

var parser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Tokenize parses markdown source and returns its token sequence. Wrap the
// result with token.FromSlice to feed it to a filter.
func Tokenize(source []byte) ([]token.Token, error) {
	doc := parser.Parser().Parse(text.NewReader(source))

	var toks []token.Token
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Document, *ast.TextBlock:
			// TextBlock is the anonymous container inside tight list items;
			// its children render without paragraph delimiters.
			return ast.WalkContinue, nil
		case *ast.Paragraph:
			toks = delimit(toks, token.Tag{Kind: token.Paragraph}, entering)
		case *ast.Heading:
			toks = delimit(toks, token.Tag{Kind: token.Heading, Level: n.Level}, entering)
		case *ast.Blockquote:
			toks = delimit(toks, token.Tag{Kind: token.BlockQuote}, entering)
		case *ast.FencedCodeBlock:
			if entering {
				tag := token.Tag{Kind: token.CodeBlock}
				if lang := n.Language(source); lang != nil {
					tag.Info = string(lang)
				}
				toks = appendCodeBlock(toks, tag, n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			if entering {
				toks = appendCodeBlock(toks, token.Tag{Kind: token.CodeBlock}, n, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.List:
			tag := token.Tag{Kind: token.List, Ordered: n.IsOrdered(), StartNumber: n.Start}
			toks = delimit(toks, tag, entering)
		case *ast.ListItem:
			toks = delimit(toks, token.Tag{Kind: token.Item}, entering)
		case *ast.ThematicBreak:
			if entering {
				toks = append(toks, token.Token{Kind: token.Rule})
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			if entering {
				var buf bytes.Buffer
				writeLines(&buf, n, source)
				if n.HasClosure() {
					buf.Write(n.ClosureLine.Value(source))
				}
				toks = append(toks, token.HTMLOf(buf.String()))
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			if entering {
				var buf bytes.Buffer
				for i := 0; i < n.Segments.Len(); i++ {
					seg := n.Segments.At(i)
					buf.Write(seg.Value(source))
				}
				toks = append(toks, token.HTMLOf(buf.String()))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				toks = append(toks, token.TextOf(string(n.Segment.Value(source))))
				switch {
				case n.HardLineBreak():
					toks = append(toks, token.Token{Kind: token.HardBreak})
				case n.SoftLineBreak():
					toks = append(toks, token.Token{Kind: token.SoftBreak})
				}
			}
		case *ast.String:
			if entering {
				toks = append(toks, token.TextOf(string(n.Value)))
			}
		case *ast.CodeSpan:
			if entering {
				toks = append(toks, token.Token{Kind: token.Code, Content: codeSpanText(n, source)})
			}
			return ast.WalkSkipChildren, nil
		case *ast.Emphasis:
			tag := token.Tag{Kind: token.Emphasis}
			if n.Level >= 2 {
				tag.Kind = token.Strong
			}
			toks = delimit(toks, tag, entering)
		case *east.Strikethrough:
			toks = delimit(toks, token.Tag{Kind: token.Strikethrough}, entering)
		case *ast.Link:
			tag := token.Tag{Kind: token.Link, Destination: string(n.Destination), Title: string(n.Title)}
			toks = delimit(toks, tag, entering)
		case *ast.AutoLink:
			if entering {
				label := string(n.Label(source))
				dest := label
				if n.AutoLinkType == ast.AutoLinkEmail {
					dest = "mailto:" + dest
				}
				tag := token.Tag{Kind: token.Link, Destination: dest}
				toks = append(toks, token.StartOf(tag), token.TextOf(label), token.EndOf(tag))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			tag := token.Tag{Kind: token.Image, Destination: string(n.Destination), Title: string(n.Title)}
			toks = delimit(toks, tag, entering)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return coalesce(toks), nil
}

// coalesce merges adjacent Text tokens into one. goldmark cuts text nodes at
// inline delimiter candidates ('!', '(', '_', ...), so a plain sentence can
// arrive as several runs; downstream consumers expect whole runs, cut only at
// real inline elements and line breaks.
func coalesce(toks []token.Token) []token.Token {
	out := toks[:0]
	for _, t := range toks {
		if t.Kind == token.Text && len(out) > 0 && out[len(out)-1].Kind == token.Text {
			out[len(out)-1].Content += t.Content
			continue
		}
		out = append(out, t)
	}
	return out
}

func delimit(toks []token.Token, tag token.Tag, entering bool) []token.Token {
	if entering {
		return append(toks, token.StartOf(tag))
	}
	return append(toks, token.EndOf(tag))
}

func appendCodeBlock(toks []token.Token, tag token.Tag, n ast.Node, source []byte) []token.Token {
	var buf bytes.Buffer
	writeLines(&buf, n, source)
	return append(toks, token.StartOf(tag), token.TextOf(buf.String()), token.EndOf(tag))
}

func writeLines(buf *bytes.Buffer, n ast.Node, source []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
}

func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}
