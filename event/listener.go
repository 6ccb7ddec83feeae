package event

import (
	"context"
	"fmt"

	"github.com/gclaussn/go-bpmn-events/model"
)

// ExecutionListener is notified when an execution starts or ends an activity, or takes a sequence flow.
// A zero Type denotes a plain take listener of a sequence flow.
type ExecutionListener struct {
	ActivityId string
	Type       Type
}

func NewTakeListener(sequenceFlowId string) ExecutionListener {
	return ExecutionListener{ActivityId: sequenceFlowId}
}

func NewExecutionListener(activityId string, eventType Type) ExecutionListener {
	return ExecutionListener{ActivityId: activityId, Type: eventType}
}

func (l ExecutionListener) IsTake() bool {
	return l.Type == 0
}

// Notify publishes the event, which belongs to the listener.
func (l ExecutionListener) Notify(ctx context.Context, publisher Publisher, execution Execution) error {
	event := Event{
		Type:       l.Type,
		ActivityId: l.ActivityId,

		ProcessId:         execution.ProcessId,
		ProcessInstanceId: execution.ProcessInstanceId,
		ExecutionId:       execution.ExecutionId,

		Time: execution.time(),
	}

	if l.IsTake() {
		event.Type = TypeTake
		event.TransitionName = l.ActivityId
	}

	return publish(ctx, publisher, event)
}

// TaskListener is notified when a user task is created, assigned, completed or deleted.
type TaskListener struct {
	ActivityId string
	Type       Type
}

func NewTaskListener(activityId string, eventType Type) TaskListener {
	return TaskListener{ActivityId: activityId, Type: eventType}
}

// Notify publishes the event, which belongs to the listener.
func (l TaskListener) Notify(ctx context.Context, publisher Publisher, execution Execution) error {
	event := Event{
		Type:       l.Type,
		ActivityId: l.ActivityId,

		ProcessId:         execution.ProcessId,
		ProcessInstanceId: execution.ProcessInstanceId,
		ExecutionId:       execution.ExecutionId,
		TaskId:            execution.TaskId,

		Time: execution.time(),
	}

	return publish(ctx, publisher, event)
}

// Fire notifies all execution listeners of the element, which are registered for the given event name, in order of attachment.
// Listener instances of other packages are skipped. The first failure stops the notification.
func Fire(ctx context.Context, publisher Publisher, element *model.Element, eventName model.EventName, execution Execution) error {
	for _, listener := range element.ExecutionListenersByEvent(eventName) {
		executionListener, ok := listener.Instance.(ExecutionListener)
		if !ok {
			continue
		}
		if err := executionListener.Notify(ctx, publisher, execution); err != nil {
			return err
		}
	}
	return nil
}

// FireTask notifies all task listeners of the element, which are registered for the given event name, in order of attachment.
func FireTask(ctx context.Context, publisher Publisher, element *model.Element, eventName model.EventName, execution Execution) error {
	for _, listener := range element.TaskListenersByEvent(eventName) {
		taskListener, ok := listener.Instance.(TaskListener)
		if !ok {
			continue
		}
		if err := taskListener.Notify(ctx, publisher, execution); err != nil {
			return err
		}
	}
	return nil
}

func publish(ctx context.Context, publisher Publisher, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if err := publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish %s event of activity %s: %v", event.Type, event.ActivityId, err)
	}
	return nil
}
