/*
 * Copyright (c) 2025 by Shotaro Tsuji.
 * Licensed under the Apache License, Version 2.0.
 */

package token

// Stream is a pull-only, finite, non-restartable token source. Next returns
// the next token and true, or a zero token and false once exhausted.
// Implementations need not be safe for concurrent use.
type Stream interface {
	Next() (Token, bool)
}

// Slice adapts an in-memory token sequence to a Stream.
type Slice struct {
	toks []Token
	pos  int
}

// FromSlice wraps toks without copying. The caller must not mutate toks
// while the stream is in use.
func FromSlice(toks []Token) *Slice {
	return &Slice{toks: toks}
}

func (s *Slice) Next() (Token, bool) {
	if s.pos >= len(s.toks) {
		return Token{}, false
	}
	t := s.toks[s.pos]
	s.pos++
	return t, true
}

// Drain pulls the stream to exhaustion and returns all tokens in order.
// Useful in tests and for sinks that buffer whole documents anyway.
func Drain(s Stream) []Token {
	var out []Token
	for {
		t, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}
