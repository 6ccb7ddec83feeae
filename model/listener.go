package model

import "fmt"

// EventName names the lifecycle moment, at which a runtime invokes a listener.
type EventName string

const (
	// execution listener events
	EventNameTake  EventName = "take"
	EventNameStart EventName = "start"
	EventNameEnd   EventName = "end"

	// task listener events
	EventNameCreate   EventName = "create"
	EventNameAssign   EventName = "assign"
	EventNameComplete EventName = "complete"
	EventNameDelete   EventName = "delete"
)

func (v EventName) IsValid() bool {
	switch v {
	case
		EventNameTake,
		EventNameStart,
		EventNameEnd,
		EventNameCreate,
		EventNameAssign,
		EventNameComplete,
		EventNameDelete:
		return true
	default:
		return false
	}
}

// ImplementationType describes how a runtime obtains the listener implementation.
type ImplementationType int

const (
	// ImplementationInstance indicates a listener, which is constructed during parsing and stored as instance.
	ImplementationInstance ImplementationType = iota + 1
)

func (v ImplementationType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v ImplementationType) String() string {
	switch v {
	case ImplementationInstance:
		return "INSTANCE"
	default:
		return ""
	}
}

// A Listener is attached to an element and instructs a runtime to notify the listener instance, when the event occurs.
type Listener struct {
	Event              EventName
	ImplementationType ImplementationType
	Instance           any // Pre-built listener, e.g. a payload of package event.
}

// NewInstanceListener creates a listener, bound to a pre-built instance.
func NewInstanceListener(event EventName, instance any) Listener {
	return Listener{
		Event:              event,
		ImplementationType: ImplementationInstance,
		Instance:           instance,
	}
}
