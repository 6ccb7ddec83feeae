package event

import "fmt"

// Type is the business meaning of an event - in contrast to the name of the trigger, a listener is registered for.
type Type int

const (
	TypeAssignTask Type = iota + 1
	TypeCompleteTask
	TypeCreateTask
	TypeDeleteTask
	TypeEndActivity
	TypeStartActivity
	TypeTake
)

func MapType(s string) Type {
	switch s {
	case "ASSIGN_TASK":
		return TypeAssignTask
	case "COMPLETE_TASK":
		return TypeCompleteTask
	case "CREATE_TASK":
		return TypeCreateTask
	case "DELETE_TASK":
		return TypeDeleteTask
	case "END_ACTIVITY":
		return TypeEndActivity
	case "START_ACTIVITY":
		return TypeStartActivity
	case "TAKE":
		return TypeTake
	default:
		return 0
	}
}

// IsTaskType reports whether the type belongs to the user task lifecycle.
func (v Type) IsTaskType() bool {
	switch v {
	case
		TypeAssignTask,
		TypeCompleteTask,
		TypeCreateTask,
		TypeDeleteTask:
		return true
	default:
		return false
	}
}

func (v Type) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v Type) String() string {
	switch v {
	case TypeAssignTask:
		return "ASSIGN_TASK"
	case TypeCompleteTask:
		return "COMPLETE_TASK"
	case TypeCreateTask:
		return "CREATE_TASK"
	case TypeDeleteTask:
		return "DELETE_TASK"
	case TypeEndActivity:
		return "END_ACTIVITY"
	case TypeStartActivity:
		return "START_ACTIVITY"
	case TypeTake:
		return "TAKE"
	default:
		return ""
	}
}

func (v *Type) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid event type data %s", s)
	}
	return nil
}
