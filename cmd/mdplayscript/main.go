/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

// Command mdplayscript converts markdown manuscripts written in stage-play
// dialogue notation into HTML.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/ShotaroTsuji/mdplayscript/internal/config"
	"github.com/ShotaroTsuji/mdplayscript/internal/crash"
	applog "github.com/ShotaroTsuji/mdplayscript/internal/log"
	"github.com/ShotaroTsuji/mdplayscript/internal/markdown"
	"github.com/ShotaroTsuji/mdplayscript/internal/playscript"
	"github.com/ShotaroTsuji/mdplayscript/internal/theme"
	"github.com/ShotaroTsuji/mdplayscript/internal/token"
	"github.com/ShotaroTsuji/mdplayscript/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    "mdplayscript",
		Usage:   "Convert markdown playscripts to HTML",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to config file"},
		},
		Commands: []*cli.Command{
			convertCmd(),
			themesCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a markdown playscript to HTML",
		ArgsUsage: "<input.md | ->",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file (default stdout)"},
			&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "Stylesheet language selector (e.g. ja)"},
			&cli.StringFlag{Name: "theme-dir", Usage: "Directory of theme packs"},
			&cli.StringFlag{Name: "title", Usage: "Document title (standalone output)"},
			&cli.BoolFlag{Name: "standalone", Usage: "Wrap output in a full HTML document"},
			&cli.BoolFlag{Name: "no-style", Usage: "Omit the stylesheet from standalone output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			defer crash.Recover()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applog.Init(applog.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.Source,
				File:      cfg.Logging.File,
			})

			input := cmd.Args().First()
			if input == "" {
				return fmt.Errorf("input argument is required (file path or - for stdin)")
			}

			lang := cfg.Convert.Language
			if cmd.IsSet("language") {
				lang = cmd.String("language")
			}
			themeDir := cfg.Convert.ThemeDir
			if cmd.IsSet("theme-dir") {
				themeDir = cmd.String("theme-dir")
			}
			standalone := cfg.Convert.Standalone
			if cmd.IsSet("standalone") {
				standalone = cmd.Bool("standalone")
			}

			l := applog.WithComponent("convert").With(
				slog.String("session", uuid.NewString()),
				slog.String("input", input),
			)

			source, err := readInput(input)
			if err != nil {
				return err
			}

			toks, err := markdown.Tokenize(source)
			if err != nil {
				return fmt.Errorf("tokenize %s: %w", input, err)
			}

			var body bytes.Buffer
			if err := markdown.Render(&body, playscript.New(token.FromSlice(toks))); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			out, closeOut, err := openOutput(cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeOut()

			if standalone {
				doc := theme.Document{Title: documentTitle(cmd.String("title"), input)}
				if !cmd.Bool("no-style") {
					th, err := theme.Select(lang, themeDir)
					if err != nil {
						return err
					}
					doc.Style = th.Stylesheet
					l.Debug("theme selected", slog.String("theme", th.Name))
				}
				if err := doc.WritePrelude(out); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				if _, err := out.Write(body.Bytes()); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				if err := doc.WritePostlude(out); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			} else if _, err := out.Write(body.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			l.Info("converted", slog.Int("bytes", body.Len()))
			return nil
		},
	}
}

func themesCmd() *cli.Command {
	return &cli.Command{
		Name:  "themes",
		Usage: "List built-in themes and discovered theme packs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "theme-dir", Usage: "Directory of theme packs"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			defer crash.Recover()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			for _, th := range theme.Builtins() {
				fmt.Printf("%s\t%s\t(built-in)\n", th.Name, th.Language)
			}

			themeDir := cfg.Convert.ThemeDir
			if cmd.IsSet("theme-dir") {
				themeDir = cmd.String("theme-dir")
			}
			if themeDir == "" {
				return nil
			}
			packs, err := theme.Discover(themeDir)
			if err != nil {
				return err
			}
			for _, th := range packs {
				fmt.Printf("%s\t%s\t%s\n", th.Name, th.Language, themeDir)
			}
			return nil
		},
	}
}

func loadConfig(cmd *cli.Command) (config.AppConfig, error) {
	path := cmd.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Defaults(), err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func readInput(input string) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", input, err)
	}
	return data, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func documentTitle(flag, input string) string {
	if flag != "" {
		return flag
	}
	if input == "-" {
		return "Playscript"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
