// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
	"strings"

	"github.com/db47h/netsim/internal/lex"
	"github.com/pkg/errors"
)

// Kind identifies the class of a netlist, build or simulation error.
//
type Kind int

// Error kinds.
//
const (
	KindUnknown Kind = iota

	// tokenizer and grammar
	KeywordNotAlphanumeric
	UnexpectedCharacter
	UnexpectedBracket
	MissingBracket
	MissingSemicolon

	// netlist construction
	InvalidModuleType
	InvalidGateInstanceName
	InvalidGateType
	WrongNumberOfInputs
	MissingExternalState
	UnnecessaryExternalState
	NodeNotFound
	DuplicateModule
	CombinationalLoop

	// simulation
	TooManyNodeDrivers
	InvalidGateConnection
	AmbiguousNodeName

	// resources
	TooManyNodes
)

var kindNames = [...]string{
	KindUnknown:              "unknown error",
	KeywordNotAlphanumeric:   "keyword not alphanumeric",
	UnexpectedCharacter:      "unexpected character",
	UnexpectedBracket:        "unexpected bracket",
	MissingBracket:           "missing bracket",
	MissingSemicolon:         "missing semicolon",
	InvalidModuleType:        "invalid module type",
	InvalidGateInstanceName:  "invalid gate instance name",
	InvalidGateType:          "invalid gate type",
	WrongNumberOfInputs:      "wrong number of inputs",
	MissingExternalState:     "missing external state",
	UnnecessaryExternalState: "unnecessary external state",
	NodeNotFound:             "node not found",
	DuplicateModule:          "duplicate module",
	CombinationalLoop:        "combinational loop",
	TooManyNodeDrivers:       "too many node drivers",
	InvalidGateConnection:    "invalid gate connection",
	AmbiguousNodeName:        "ambiguous node name",
	TooManyNodes:             "too many nodes",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Error is the error type returned by all netsim functions. Use KindOf or
// errors.Is with one of the Err* sentinels to check the error class.
//
type Error struct {
	Kind  Kind
	Pos   lex.Pos // zero if the error is not tied to a source location
	Token string  // offending token or name, may be empty
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.Line > 0 {
		b.WriteString("line ")
		b.WriteString(strconv.Itoa(e.Pos.Line))
		b.WriteString(", col ")
		b.WriteString(strconv.Itoa(e.Pos.Col))
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Token != "" {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(e.Token))
	}
	return b.String()
}

// Is reports whether target is an *Error of the same Kind. This makes the
// Err* sentinels usable with errors.Is.
//
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors for use with errors.Is. They carry no position.
//
var (
	ErrKeywordNotAlphanumeric   = &Error{Kind: KeywordNotAlphanumeric}
	ErrUnexpectedCharacter      = &Error{Kind: UnexpectedCharacter}
	ErrUnexpectedBracket        = &Error{Kind: UnexpectedBracket}
	ErrMissingBracket           = &Error{Kind: MissingBracket}
	ErrMissingSemicolon         = &Error{Kind: MissingSemicolon}
	ErrInvalidModuleType        = &Error{Kind: InvalidModuleType}
	ErrInvalidGateInstanceName  = &Error{Kind: InvalidGateInstanceName}
	ErrInvalidGateType          = &Error{Kind: InvalidGateType}
	ErrWrongNumberOfInputs      = &Error{Kind: WrongNumberOfInputs}
	ErrMissingExternalState     = &Error{Kind: MissingExternalState}
	ErrUnnecessaryExternalState = &Error{Kind: UnnecessaryExternalState}
	ErrNodeNotFound             = &Error{Kind: NodeNotFound}
	ErrDuplicateModule          = &Error{Kind: DuplicateModule}
	ErrCombinationalLoop        = &Error{Kind: CombinationalLoop}
	ErrTooManyNodeDrivers       = &Error{Kind: TooManyNodeDrivers}
	ErrInvalidGateConnection    = &Error{Kind: InvalidGateConnection}
	ErrAmbiguousNodeName        = &Error{Kind: AmbiguousNodeName}
	ErrTooManyNodes             = &Error{Kind: TooManyNodes}
)

// newError returns a new *Error with a stack trace attached.
//
func newError(k Kind, tok string) error {
	return errors.WithStack(&Error{Kind: k, Token: tok})
}

func newErrorAt(k Kind, w lex.Word) error {
	return errors.WithStack(&Error{Kind: k, Pos: w.Pos, Token: w.Text})
}

// KindOf returns the Kind of err. It returns KindUnknown if err is nil or
// was not produced by this package.
//
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
