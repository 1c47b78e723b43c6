/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package playscript

import (
	"strings"

	"github.com/ShotaroTsuji/mdplayscript/internal/token"
)

// Speech is one recognized dialogue unit: the speaking character, an
// optional direction written after the name, and the body tokens that
// follow the right angle.
type Speech struct {
	Character string
	// PostNameDirection is the trimmed content of a parenthesized direction
	// between the name and the right angle, or "" if absent.
	PostNameDirection string
	// Body holds the remainder of the group after the right angle. The
	// leading text run has already had the heading stripped.
	Body []token.Token
}

// singleAngle returns the byte offset of the first '>' in s provided it is
// not doubled. A '>' immediately followed by another '>' never starts a
// speech, so quotes written as '>>' pass through.
func singleAngle(s string) (int, bool) {
	pos := strings.IndexByte(s, '>')
	if pos < 0 {
		return 0, false
	}
	if strings.HasPrefix(s[pos+1:], ">") {
		return 0, false
	}
	return pos, true
}

// isSpeechStart reports whether a text run begins a new speech candidate.
func isSpeechStart(s string) bool {
	_, ok := singleAngle(s)
	return ok
}

// parseHeading splits the text before the right angle into a character name
// and an optional parenthesized direction. It returns ok=false when the
// name is empty, which sends the whole group down the fallback path.
func parseHeading(s string) (character, direction string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		character = strings.TrimSpace(s)
		return character, "", character != ""
	}

	character = strings.TrimSpace(s[:open])
	if character == "" {
		return "", "", false
	}

	rest := s[open+1:]
	if close := strings.IndexByte(rest, ')'); close >= 0 {
		rest = rest[:close]
	}
	return character, strings.TrimSpace(rest), true
}

// parseSpeech classifies one candidate group. The group's first token must
// be a text run containing a single right angle; everything before the angle
// is the heading, everything after it (including the following tokens of
// the group) is the body. ok=false means the group is ordinary content.
func parseSpeech(group []token.Token) (Speech, bool) {
	if len(group) == 0 || group[0].Kind != token.Text {
		return Speech{}, false
	}

	pos, found := singleAngle(group[0].Content)
	if !found {
		return Speech{}, false
	}

	character, direction, ok := parseHeading(group[0].Content[:pos])
	if !ok {
		return Speech{}, false
	}

	body := make([]token.Token, 0, len(group))
	if rest := strings.TrimLeft(group[0].Content[pos+1:], " \t"); rest != "" {
		body = append(body, token.TextOf(rest))
	}
	body = append(body, group[1:]...)

	return Speech{
		Character:         character,
		PostNameDirection: direction,
		Body:              body,
	}, true
}

// splitSpeeches divides a paragraph's inner tokens into candidate groups.
// A text run that starts a speech opens a new group, except for the first
// such run, which stays with whatever content preceded it; classification
// of that group then inspects its leading text run. A paragraph with no
// speech-start runs yields a single group.
func splitSpeeches(inner []token.Token) [][]token.Token {
	var groups [][]token.Token
	var cur []token.Token
	seen := false

	for _, t := range inner {
		if t.Kind == token.Text && isSpeechStart(t.Content) {
			if seen && len(cur) > 0 {
				groups = append(groups, cur)
				cur = nil
			}
			seen = true
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}

	return groups
}
