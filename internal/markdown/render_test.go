/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package markdown

import (
	"bytes"
	"testing"

	"github.com/ShotaroTsuji/mdplayscript/internal/token"
)

// render runs source through Tokenize and Render with no filter in between.
func render(t *testing.T, source string) string {
	t.Helper()
	toks, err := Tokenize([]byte(source))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, token.FromSlice(toks)); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return buf.String()
}

func TestRenderParagraph(t *testing.T) {
	if got := render(t, "Hello, world."); got != "<p>Hello, world.</p>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderEscapesText(t *testing.T) {
	if got := render(t, "a < b & c"); got != "<p>a &lt; b &amp; c</p>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderHeadingWithCustomID(t *testing.T) {
	if got := render(t, "## Heading B {#section_b}"); got != "<h2 id=\"section_b\">Heading B</h2>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderHeadingWithoutCustomID(t *testing.T) {
	if got := render(t, "# Title"); got != "<h1>Title</h1>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderEmphasisInsideHeading(t *testing.T) {
	if got := render(t, "# A *B* {#c}"); got != "<h1 id=\"c\">A <em>B</em></h1>\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderFencedCodeBlock(t *testing.T) {
	got := render(t, "```sh\necho hi\n```\n")
	want := "<pre><code class=\"language-sh\">echo hi\n</code></pre>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLists(t *testing.T) {
	got := render(t, "- a\n- b\n")
	want := "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = render(t, "3. a\n4. b\n")
	want = "<ol start=\"3\">\n<li>a</li>\n<li>b</li>\n</ol>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderBlockquote(t *testing.T) {
	got := render(t, "> quoted\n")
	want := "<blockquote>\n<p>quoted</p>\n</blockquote>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderInlineMarkup(t *testing.T) {
	got := render(t, "a *b* **c** `d` ~~e~~")
	want := "<p>a <em>b</em> <strong>c</strong> <code>d</code> <del>e</del></p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLinkAndImage(t *testing.T) {
	got := render(t, "[text](http://example.com/)")
	want := "<p><a href=\"http://example.com/\">text</a></p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = render(t, "![alt text](img.png)")
	want = "<p><img src=\"img.png\" alt=\"alt text\" /></p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderRawHTMLPassesThrough(t *testing.T) {
	got := render(t, "<!-- a comment -->")
	if got != "<!-- a comment -->\n" && got != "<!-- a comment -->" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderRuleAndBreaks(t *testing.T) {
	if got := render(t, "---\n"); got != "<hr />\n" {
		t.Fatalf("got %q", got)
	}
	got := render(t, "a  \nb")
	want := "<p>a<br />\nb</p>\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
