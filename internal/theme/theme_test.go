/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSelection(t *testing.T) {
	assert.Equal(t, "play", Builtin("").Name)
	assert.Equal(t, "play", Builtin("fr").Name)
	assert.Equal(t, "play_ja", Builtin("ja").Name)
}

func TestBuiltinStylesheetsNotEmpty(t *testing.T) {
	for _, th := range Builtins() {
		assert.NotEmpty(t, th.Stylesheet, "theme %s", th.Name)
		assert.Contains(t, th.Stylesheet, "div.speech")
	}
}

func writePack(t *testing.T, root, name, manifest, css string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.json"), []byte(manifest), 0o644))
	if css != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte(css), 0o644))
	}
	return dir
}

func TestLoadPack(t *testing.T) {
	root := t.TempDir()
	dir := writePack(t, root, "fancy",
		`{"name":"fancy","language":"fr","stylesheet":"style.css"}`,
		"div.speech { color: red; }\n")

	th, err := LoadPack(dir)
	require.NoError(t, err)
	assert.Equal(t, "fancy", th.Name)
	assert.Equal(t, "fr", th.Language)
	assert.Contains(t, th.Stylesheet, "color: red")
}

func TestLoadPackRejectsInvalidManifest(t *testing.T) {
	root := t.TempDir()

	dir := writePack(t, root, "noname", `{"language":"fr","stylesheet":"style.css"}`, "x")
	_, err := LoadPack(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	dir = writePack(t, root, "badsheet", `{"name":"x","language":"fr","stylesheet":"style.txt"}`, "")
	_, err = LoadPack(dir)
	require.Error(t, err)
}

func TestDiscoverSkipsUnrelatedDirs(t *testing.T) {
	root := t.TempDir()
	writePack(t, root, "one", `{"name":"one","language":"de","stylesheet":"style.css"}`, "a")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-pack"), 0o755))

	themes, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, "one", themes[0].Name)
}

func TestSelectPrefersPackOverBuiltin(t *testing.T) {
	root := t.TempDir()
	writePack(t, root, "jp", `{"name":"jp-custom","language":"ja","stylesheet":"style.css"}`, "b")

	th, err := Select("ja", root)
	require.NoError(t, err)
	assert.Equal(t, "jp-custom", th.Name)

	th, err = Select("ja", "")
	require.NoError(t, err)
	assert.Equal(t, "play_ja", th.Name)
}

func TestDocumentWrapping(t *testing.T) {
	doc := Document{Title: "My <Play>", Style: "body { margin: 0; }\n"}

	var b strings.Builder
	require.NoError(t, doc.WritePrelude(&b))
	b.WriteString("<p>content</p>\n")
	require.NoError(t, doc.WritePostlude(&b))
	out := b.String()

	assert.Contains(t, out, "<title>My &lt;Play&gt;</title>")
	assert.Contains(t, out, "<meta charset=\"utf-8\" />")
	assert.Contains(t, out, "<style>\nbody { margin: 0; }\n</style>")
	assert.Contains(t, out, "<div class=\"play\">\n<p>content</p>\n</div>")
	assert.True(t, strings.HasSuffix(out, "</body>\n</html>\n"))
}

func TestDocumentWithoutStyle(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Document{Title: "T"}.WritePrelude(&b))
	assert.NotContains(t, b.String(), "<style>")
}
