/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Package theme selects the stylesheet variant a converted play is rendered
// with and assembles standalone HTML documents. Two variants ship embedded
// (the default and a Japanese one); additional packs can be loaded from
// disk, each a directory holding a theme.json manifest and a stylesheet.
package theme

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed styles/play.css
var defaultCSS string

//go:embed styles/play_ja.css
var japaneseCSS string

//go:embed manifest.schema.json
var manifestSchema string

// Theme pairs a stylesheet with the language it is intended for.
type Theme struct {
	Name       string
	Language   string
	Stylesheet string
}

// Builtin returns the embedded theme for a language selector. Unknown
// selectors fall back to the default theme; the selector never affects the
// filter output, only presentation.
func Builtin(lang string) Theme {
	if lang == "ja" {
		return Theme{Name: "play_ja", Language: "ja", Stylesheet: japaneseCSS}
	}
	return Theme{Name: "play", Language: "en", Stylesheet: defaultCSS}
}

// Builtins lists the embedded themes.
func Builtins() []Theme {
	return []Theme{Builtin(""), Builtin("ja")}
}

// manifest mirrors theme.json.
type manifest struct {
	Name       string `json:"name"`
	Language   string `json:"language"`
	Stylesheet string `json:"stylesheet"`
}

// LoadPack reads a theme pack from dir. The manifest is validated against
// the embedded JSON schema before anything else is touched; packs are user
// input but, unlike manuscripts, a broken pack is an error.
func LoadPack(dir string) (Theme, error) {
	data, err := os.ReadFile(filepath.Join(dir, "theme.json"))
	if err != nil {
		return Theme{}, fmt.Errorf("read theme manifest: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return Theme{}, fmt.Errorf("validate theme manifest: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Theme{}, fmt.Errorf("theme manifest %s: %s", filepath.Join(dir, "theme.json"), strings.Join(msgs, "; "))
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Theme{}, fmt.Errorf("decode theme manifest: %w", err)
	}

	css, err := os.ReadFile(filepath.Join(dir, m.Stylesheet))
	if err != nil {
		return Theme{}, fmt.Errorf("read theme stylesheet: %w", err)
	}

	return Theme{Name: m.Name, Language: m.Language, Stylesheet: string(css)}, nil
}

// Discover loads every theme pack directly under root, sorted by name.
// Directories without a theme.json are skipped; a directory with a broken
// manifest is an error.
func Discover(root string) ([]Theme, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read theme dir: %w", err)
	}

	var themes []Theme
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "theme.json")); err != nil {
			continue
		}
		th, err := LoadPack(dir)
		if err != nil {
			return nil, err
		}
		themes = append(themes, th)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes, nil
}

// Select resolves the theme for a language selector: a pack from themeDir
// whose language matches wins over the builtins.
func Select(lang, themeDir string) (Theme, error) {
	if themeDir != "" {
		packs, err := Discover(themeDir)
		if err != nil {
			return Theme{}, err
		}
		for _, th := range packs {
			if th.Language == lang {
				return th, nil
			}
		}
	}
	return Builtin(lang), nil
}
