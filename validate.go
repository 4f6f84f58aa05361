// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// validator checks token adjacency in a single left to right pass.
//
type validator struct {
	inModule   bool
	inInstance bool // a statement has started and its ';' was not seen yet
	inInputs   bool // after ':'
	inOutputs  bool // after '->'
	keyword    bool // the current statement is a directive
	stmtLine   int
}

// step updates the validator state for t.
//
func (v *validator) step(t *Token) error {
	switch t.Class {
	case TokKeyword:
		if v.inModule {
			v.inInstance, v.keyword, v.stmtLine = true, true, t.Pos.Line
		}
	case TokStatement:
		if v.inModule && !v.inInstance {
			v.inInstance, v.keyword, v.stmtLine = true, false, t.Pos.Line
		}
	case TokSeparator:
		if !v.inInstance {
			return newErrorAt(UnexpectedCharacter, t.Word)
		}
		if t.Text == ":" {
			if v.inInputs || v.inOutputs {
				return newErrorAt(UnexpectedCharacter, t.Word)
			}
			v.inInputs = true
		} else {
			if !v.inInputs || v.keyword {
				return newErrorAt(UnexpectedCharacter, t.Word)
			}
			v.inInputs, v.inOutputs = false, true
		}
	case TokSemicolon:
		if !v.inInstance {
			return newErrorAt(UnexpectedCharacter, t.Word)
		}
		v.inInstance, v.inInputs, v.inOutputs, v.keyword = false, false, false, false
	case TokOpenBracket:
		if v.inModule {
			return newErrorAt(UnexpectedBracket, t.Word)
		}
		v.inModule = true
	case TokCloseBracket:
		if !v.inModule {
			return newErrorAt(UnexpectedBracket, t.Word)
		}
		if v.inInstance {
			return newErrorAt(MissingSemicolon, t.Word)
		}
		v.inModule = false
	default:
		return newErrorAt(UnexpectedBracket, t.Word)
	}
	return nil
}

// allowed reports whether next may follow cur in the current state.
//
func (v *validator) allowed(cur, next TokenClass) bool {
	switch cur {
	case TokKeyword:
		if !v.inModule {
			return next == TokStatement
		}
		return next == TokSeparator
	case TokStatement:
		switch {
		case !v.inModule:
			return next == TokStatement || next == TokOpenBracket
		case v.inInputs:
			return next == TokStatement || next == TokSeparator || v.keyword && next == TokSemicolon
		case v.inOutputs:
			return next == TokStatement || next == TokSemicolon
		}
		return next == TokSeparator
	case TokSeparator:
		return next == TokStatement
	case TokOpenBracket:
		return next == TokStatement || next == TokKeyword
	case TokCloseBracket:
		return next == TokKeyword || next == TokEOF
	case TokSemicolon:
		return next == TokStatement || next == TokKeyword || next == TokCloseBracket
	}
	return false
}

// Validate checks the grammar of a token stream as returned by Tokenize. It
// returns the first error found; no netlist should be built from tokens that
// fail validation.
//
func Validate(toks []Token) error {
	if len(toks) == 0 {
		return nil
	}
	if toks[0].Class != TokKeyword {
		return unexpected(&toks[0])
	}
	var v validator
	for i := range toks {
		t := &toks[i]
		if err := v.step(t); err != nil {
			return err
		}
		var next *Token
		if i+1 < len(toks) {
			next = &toks[i+1]
		}
		if next == nil {
			if v.inInstance {
				return newErrorAt(MissingSemicolon, t.Word)
			}
			if v.inModule || t.Class != TokCloseBracket {
				return newErrorAt(MissingBracket, t.Word)
			}
			break
		}
		if v.inInstance && next.Pos.Line != v.stmtLine {
			return newErrorAt(MissingSemicolon, t.Word)
		}
		if !v.allowed(t.Class, next.Class) {
			if next.Class == TokCloseBracket && v.inInstance {
				return newErrorAt(MissingSemicolon, next.Word)
			}
			return unexpected(next)
		}
	}
	return nil
}

func unexpected(t *Token) error {
	if t.Class.isBracket() {
		return newErrorAt(UnexpectedBracket, t.Word)
	}
	return newErrorAt(UnexpectedCharacter, t.Word)
}
