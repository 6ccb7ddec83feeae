// Package event provides the listeners, which are attached to BPMN elements during parsing, and the contract for publishing the
// events they produce.
//
// Listeners are plain values, constructed without any dependency. A runtime invokes them via [Fire] or [FireTask], when an
// element's lifecycle event occurs, and passes a [Publisher] that forwards the event - e.g. a [WatermillPublisher].
package event

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return validate
}

// An Event describes a lifecycle event of a BPMN element, which has been reached by an execution.
type Event struct {
	Type       Type   `json:"type" validate:"required"`
	ActivityId string `json:"activityId" validate:"required"` // ID of the BPMN element, the listener is attached to.

	// ID of the taken sequence flow - only set for TAKE events.
	TransitionName string `json:"transitionName,omitempty" validate:"required_if=Type 7"`

	ProcessId         string `json:"processId,omitempty"`
	ProcessInstanceId string `json:"processInstanceId,omitempty"`
	ExecutionId       string `json:"executionId,omitempty"`
	TaskId            string `json:"taskId,omitempty"` // Only set for task events.

	Time time.Time `json:"time" validate:"required"`
}

// Validate checks that the event carries its type, activity and time.
func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid %s event of activity %s: %v", e.Type, e.ActivityId, err)
	}
	return nil
}

// Execution is the context, a runtime provides when a listener is notified.
type Execution struct {
	ProcessId         string
	ProcessInstanceId string
	ExecutionId       string
	TaskId            string

	Time time.Time // If zero, the current time is used.
}

func (e Execution) time() time.Time {
	if e.Time.IsZero() {
		return time.Now().UTC()
	}
	return e.Time
}

// A Publisher forwards events to an event bus. Delivery and subscriber notification are up to the implementation.
type Publisher interface {
	Publish(context.Context, Event) error
}

// PublisherFunc allows the use of an ordinary function as [Publisher].
type PublisherFunc func(context.Context, Event) error

func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}
