package backup

import "fmt"

// Kind classifies a stage failure for operators and exit-code decisions.
type Kind int

const (
	KindConfig Kind = iota + 1
	KindIO
	KindRuntime
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config error"
	case KindIO:
		return "io error"
	case KindRuntime:
		return "runtime error"
	case KindValidation:
		return "validation error"
	default:
		return "unknown error"
	}
}

// Error is a failure at one stage of the backup workflow.
type Error struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
