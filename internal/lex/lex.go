// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex splits netlist source text into words.
//
// Words are delimited by white space. The punctuation characters '{', '}',
// '[', ']', ';', ':' and the two character arrow "->" always form words of
// their own, so that "@IN:" yields "@IN" and ":". Comments start with '#' or
// "//" and run until the end of the line.
//
package lex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pos is a 1-based line and column position in the input.
//
type Pos struct {
	Line int
	Col  int
}

// Word is a single whitespace or punctuation delimited word.
//
type Word struct {
	Text string
	Pos  Pos
}

const eof = -1

func isPunct(r rune) bool {
	switch r {
	case '{', '}', '[', ']', ';', ':':
		return true
	}
	return false
}

// stateFn is a lexer state. It returns the next state or nil when done.
//
type stateFn func(l *lexer) stateFn

type lexer struct {
	src   string
	off   int
	line  int
	col   int
	width int // width of the last rune read, 0 at eof
	prev  Pos // position before the last rune read
	start Pos // position of the current word
	soff  int // offset of the current word
	out   []Word
}

// next reads the next rune, or eof.
//
func (l *lexer) next() rune {
	l.prev = Pos{l.line, l.col}
	if l.off >= len(l.src) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += w
	l.width = w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// backup undoes the last call to next. It can only be called once per call
// to next.
//
func (l *lexer) backup() {
	l.off -= l.width
	l.line, l.col = l.prev.Line, l.prev.Col
}

func (l *lexer) peek() rune {
	if l.off >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r
}

func (l *lexer) acceptWhile(f func(r rune) bool) {
	for r := l.next(); r != eof; r = l.next() {
		if !f(r) {
			l.backup()
			return
		}
	}
}

// ignore starts a new word at the current position.
//
func (l *lexer) ignore() {
	l.start = Pos{l.line, l.col}
	l.soff = l.off
}

func (l *lexer) emit() {
	l.out = append(l.out, Word{l.src[l.soff:l.off], l.start})
}

func lexInit(l *lexer) stateFn {
	l.ignore()
	switch r := l.next(); {
	case r == eof:
		return nil
	case unicode.IsSpace(r):
		l.acceptWhile(unicode.IsSpace)
	case r == '#', r == '/' && l.peek() == '/':
		return lexComment
	case isPunct(r):
		l.emit()
	case r == '-' && l.peek() == '>':
		l.next()
		l.emit()
	default:
		return lexWord
	}
	return lexInit
}

func lexComment(l *lexer) stateFn {
	l.acceptWhile(func(r rune) bool { return r != '\n' })
	return lexInit
}

// lexWord reads the rest of a word up to white space, punctuation, an arrow
// or a comment.
//
func lexWord(l *lexer) stateFn {
	for r := l.next(); r != eof; r = l.next() {
		if unicode.IsSpace(r) || isPunct(r) || r == '#' ||
			r == '/' && l.peek() == '/' ||
			r == '-' && l.peek() == '>' {
			l.backup()
			break
		}
	}
	l.emit()
	return lexInit
}

// Split splits src into words. The returned words are never empty.
//
func Split(src string) []Word {
	l := &lexer{src: src, line: 1, col: 1}
	for state := lexInit; state != nil; {
		state = state(l)
	}
	return l.out
}

// Fold trims surrounding white space and case-folds s for keyword and gate
// name matching.
//
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsAlnum returns true if s is not empty and only contains ASCII letters and
// digits.
//
func IsAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
