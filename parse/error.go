package parse

import (
	"fmt"
	"strings"
)

type Error struct {
	Type   ErrorType
	Title  string
	Detail string
	Causes []ErrorCause
}

func (e Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s: %s", e.Type, e.Title, e.Detail))

	for _, cause := range e.Causes {
		sb.WriteRune('\n')
		sb.WriteString(cause.String())
	}

	return sb.String()
}

type ErrorType int

const (
	ErrorBug ErrorType = iota + 1
	ErrorProcessModel
	ErrorUnsupportedType
)

func MapErrorType(s string) ErrorType {
	switch s {
	case "BUG":
		return ErrorBug
	case "PROCESS_MODEL":
		return ErrorProcessModel
	case "UNSUPPORTED_TYPE":
		return ErrorUnsupportedType
	default:
		return 0
	}
}

func (v ErrorType) String() string {
	switch v {
	case ErrorBug:
		return "BUG"
	case ErrorProcessModel:
		return "PROCESS_MODEL"
	case ErrorUnsupportedType:
		return "UNSUPPORTED_TYPE"
	default:
		return "UNKNOWN"
	}
}

// A cause of a process model [Error] like an element without ID or an invalid timer.
type ErrorCause struct {
	Pointer string // A pointer, locating the invalid BPMN element or sequence flow.
	Type    string // Type indicator.
	Detail  string // Human-readable, detailed information about the cause.
}

func (e ErrorCause) String() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Pointer, e.Detail)
}
