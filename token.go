// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/db47h/netsim/internal/lex"
)

// TokenClass is the lexical class of a netlist token.
//
type TokenClass int

// Token classes.
//
const (
	TokEOF         TokenClass = iota
	TokStatement              // any other word: module, gate or node name
	TokKeyword                // @ followed by letters and digits
	TokSeparator              // ':' or '->'
	TokOpenBracket            // {
	TokCloseBracket           // }
	TokOpenSquare             // [ (reserved)
	TokCloseSquare            // ] (reserved)
	TokSemicolon              // ;
)

var tokNames = [...]string{
	TokEOF:          "end of input",
	TokStatement:    "statement",
	TokKeyword:      "keyword",
	TokSeparator:    "separator",
	TokOpenBracket:  "'{'",
	TokCloseBracket: "'}'",
	TokOpenSquare:   "'['",
	TokCloseSquare:  "']'",
	TokSemicolon:    "';'",
}

func (c TokenClass) String() string {
	if c < 0 || int(c) >= len(tokNames) {
		return "token?"
	}
	return tokNames[c]
}

func (c TokenClass) isBracket() bool {
	return c >= TokOpenBracket && c <= TokCloseSquare
}

// Token is a classified word of netlist source.
//
type Token struct {
	lex.Word
	Class TokenClass
}

// Body returns the keyword name without its leading '@'. For other token
// classes it returns the token text.
//
func (t *Token) Body() string {
	if t.Class == TokKeyword {
		return t.Text[1:]
	}
	return t.Text
}

func classify(w lex.Word) (Token, error) {
	t := Token{Word: w, Class: TokStatement}
	switch w.Text {
	case ":", "->":
		t.Class = TokSeparator
	case "{":
		t.Class = TokOpenBracket
	case "}":
		t.Class = TokCloseBracket
	case "[":
		t.Class = TokOpenSquare
	case "]":
		t.Class = TokCloseSquare
	case ";":
		t.Class = TokSemicolon
	default:
		if w.Text[0] == '@' {
			if !lex.IsAlnum(w.Text[1:]) {
				return t, newErrorAt(KeywordNotAlphanumeric, w)
			}
			t.Class = TokKeyword
		}
	}
	return t, nil
}

// Tokenize splits netlist source into classified tokens. It fails with
// KeywordNotAlphanumeric if a keyword contains anything but letters and
// digits after its '@'.
//
func Tokenize(src string) ([]Token, error) {
	ws := lex.Split(src)
	toks := make([]Token, 0, len(ws))
	for _, w := range ws {
		t, err := classify(w)
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
	}
	return toks, nil
}
