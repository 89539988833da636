// Package errs classifies fatal failures of a playback run so every
// failure class maps to its own process exit code.
package errs

import (
	"context"
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindExtraction
	KindDecode
	KindPlayback
	KindCache
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindExtraction:
		return "extraction"
	case KindDecode:
		return "decode"
	case KindPlayback:
		return "playback"
	case KindCache:
		return "cache"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Exit codes. Extraction keeps 1 for compatibility with earlier releases.
const (
	ExitOK          = 0
	ExitExtraction  = 1
	ExitConfig      = 2
	ExitDecode      = 3
	ExitPlayback    = 4
	ExitCache       = 5
	ExitOutput      = 6
	ExitInterrupted = 130
	ExitUnknown     = 7
)

// Sentinels for errors.Is, one per kind.
var (
	ErrConfig     = &Error{Kind: KindConfig}
	ErrExtraction = &Error{Kind: KindExtraction}
	ErrDecode     = &Error{Kind: KindDecode}
	ErrPlayback   = &Error{Kind: KindPlayback}
	ErrCache      = &Error{Kind: KindCache}
	ErrOutput     = &Error{Kind: KindOutput}
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted message as the cause.
func Newf(kind Kind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String() + " error"
	case e.Err == nil:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	case e.Op == "":
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind. A sentinel is an Error with no Op and no cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) && KindOf(err) == KindUnknown {
		return ExitInterrupted
	}
	switch KindOf(err) {
	case KindConfig:
		return ExitConfig
	case KindExtraction:
		return ExitExtraction
	case KindDecode:
		return ExitDecode
	case KindPlayback:
		return ExitPlayback
	case KindCache:
		return ExitCache
	case KindOutput:
		return ExitOutput
	}
	return ExitUnknown
}
