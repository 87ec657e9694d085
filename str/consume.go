// SPDX-License-Identifier: Apache-2.0

package str

import "bytes"

// take splits the first n bytes off s. It returns false and leaves s untouched when
// fewer than n bytes remain.
func (s *String) take(n int) (String, bool) {
	if n < 0 || len(*s) < n {
		return nil, false
	}
	head := (*s)[:n:n]
	*s = (*s)[n:]
	return head, true
}

// split returns the bytes before i and consumes them together with the skip bytes
// that follow. An i of NotFound consumes everything.
func (s *String) split(i, skip int) String {
	if i == NotFound {
		head := *s
		*s = (*s)[len(*s):]
		return head
	}
	head := (*s)[:i:i]
	*s = (*s)[i+skip:]
	return head
}

// Consume drops the first n bytes. It panics when n exceeds Len().
func (s *String) Consume(n int) {
	if _, ok := s.take(n); !ok {
		panic("str: consume out of range")
	}
}

// ConsumeWhitespace drops leading whitespace.
func (s *String) ConsumeWhitespace() {
	i := 0
	for i < len(*s) && IsWhitespace((*s)[i]) {
		i++
	}
	*s = (*s)[i:]
}

// ConsumeLine consumes one line and returns it trimmed.
func (s *String) ConsumeLine() String {
	return s.ConsumeLinePreserveWhitespace().Trim()
}

// ConsumeLinePreserveWhitespace consumes one line and returns it without its
// terminator. Lines end at "\n" or "\r\n". The last line need not be terminated.
func (s *String) ConsumeLinePreserveWhitespace() String {
	line, rest := splitLine(*s)
	*s = rest
	return line
}

// PeekLinePreserveWhitespace returns what ConsumeLinePreserveWhitespace would,
// without consuming anything.
func (s String) PeekLinePreserveWhitespace() String {
	line, _ := splitLine(s)
	return line
}

func splitLine(s String) (line, rest String) {
	i := bytes.IndexByte(s, '\n')
	if i < 0 {
		return s, s[len(s):]
	}
	rest = s[i+1:]
	if i > 0 && s[i-1] == '\r' {
		i--
	}
	return s[:i:i], rest
}

// ConsumeUntil returns the bytes before the first c and consumes them along with c.
// Without a c it returns and consumes everything.
func (s *String) ConsumeUntil(c byte) String {
	return s.split(s.FindFirst(c), 1)
}

// ConsumeUntilString returns the bytes before the first delim and consumes them
// along with delim. Without a delim it returns and consumes everything.
func (s *String) ConsumeUntilString(delim String) String {
	return s.split(s.FindFirstString(delim), len(delim))
}

// ConsumeUntilAny returns the bytes before the first byte that appears in set and
// consumes them along with that byte.
func (s *String) ConsumeUntilAny(set String) String {
	return s.split(s.FindFirstAny(set), 1)
}

// ConsumeUntilWhitespace returns the next token and consumes it together with the
// whitespace run that follows.
func (s *String) ConsumeUntilWhitespace() String {
	i := 0
	for i < len(*s) && !IsWhitespace((*s)[i]) {
		i++
	}
	token := (*s)[:i:i]
	*s = (*s)[i:]
	s.ConsumeWhitespace()
	return token
}
