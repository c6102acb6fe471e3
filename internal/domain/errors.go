package domain

import (
	"errors"
	"strings"
)

// Kind classifies a failure so that callers can decide on a status without
// inspecting error text.
type Kind uint8

const (
	KindFatal Kind = iota
	KindNotFound
	KindValidation
	KindUnavailable
	KindServiceError
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation failed"
	case KindUnavailable:
		return "service unavailable"
	case KindServiceError:
		return "service error"
	default:
		return "fatal"
	}
}

// Message is a catalog key plus its arguments, resolved to text per locale.
type Message struct {
	Key  string
	Args []any
}

type Error struct {
	Kind Kind
	Op   string
	Msgs []Message
	// Detail is free text reported by a remote collaborator, shown as is.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	switch {
	case e.Detail != "":
		b.WriteString(": ")
		b.WriteString(e.Detail)
	case len(e.Msgs) > 0:
		b.WriteString(": ")
		for i, m := range e.Msgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.Key)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of the first *Error in err's chain. Anything unclassified is fatal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindFatal
}

func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func NotFound(op, key string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msgs: []Message{{Key: key, Args: args}}}
}

func Validation(op string, msgs ...Message) *Error {
	return &Error{Kind: KindValidation, Op: op, Msgs: msgs}
}

func ValidationDetail(op, detail string) *Error {
	return &Error{Kind: KindValidation, Op: op, Detail: detail}
}

func Unavailable(op string, err error) *Error {
	return &Error{Kind: KindUnavailable, Op: op, Msgs: []Message{{Key: MsgServiceUnavailable}}, Err: err}
}

func ServiceError(op string, err error) *Error {
	return &Error{Kind: KindServiceError, Op: op, Msgs: []Message{{Key: MsgServiceError}}, Err: err}
}

func Fatal(op string, err error) *Error {
	return &Error{Kind: KindFatal, Op: op, Msgs: []Message{{Key: MsgInternal}}, Err: err}
}
