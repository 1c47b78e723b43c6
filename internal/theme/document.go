/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package theme

import (
	"fmt"
	"html"
	"io"
)

// Document describes the standalone HTML page a converted play is wrapped
// in: a head with the title and inline stylesheet, and a body whose content
// sits inside <div class="play">.
type Document struct {
	Title string
	// Style is the stylesheet inlined into the head. Empty omits the
	// style element entirely.
	Style string
}

// WritePrelude emits everything before the converted body.
func (d Document) WritePrelude(w io.Writer) error {
	title := html.EscapeString(d.Title)
	if _, err := fmt.Fprintf(w, "<html>\n<head>\n  <title>%s</title>\n  <meta charset=\"utf-8\" />\n", title); err != nil {
		return err
	}
	if d.Style != "" {
		if _, err := fmt.Fprintf(w, "  <style>\n%s</style>\n", d.Style); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n<body>\n<div class=\"play\">\n")
	return err
}

// WritePostlude closes what WritePrelude opened.
func (d Document) WritePostlude(w io.Writer) error {
	_, err := io.WriteString(w, "</div>\n</body>\n</html>\n")
	return err
}
