package parse

import (
	"fmt"
	"slices"

	"github.com/gclaussn/go-bpmn-events/event"
	"github.com/gclaussn/go-bpmn-events/model"
)

// eventSupportTypes is fixed at compile time and never modified.
var eventSupportTypes = []model.ElementType{
	// tasks
	model.ElementBusinessRuleTask,
	model.ElementManualTask,
	model.ElementReceiveTask,
	model.ElementScriptTask,
	model.ElementSendTask,
	model.ElementServiceTask,
	model.ElementTask,
	model.ElementUserTask,
	// gateways
	model.ElementEventBasedGateway,
	model.ElementExclusiveGateway,
	model.ElementInclusiveGateway,
	model.ElementParallelGateway,
	// events
	model.ElementEndEvent,
	model.ElementStartEvent,
	model.ElementThrowEvent,
	// activities
	model.ElementCallActivity,
	model.ElementEventSubProcess,
	model.ElementSubProcess,
	model.ElementTransaction,
	// event definitions
	model.ElementErrorEventDefinition,
	model.ElementSignalEventDefinition,
	model.ElementTimerEventDefinition,

	model.ElementSequenceFlow,
}

// EventSupportHandler attaches listeners to BPMN elements, which enable a runtime to publish lifecycle events.
//
// Sequence flows get a take listener. Every other flow element gets a start and an end listener. User tasks get create, assign,
// complete and delete task listeners in addition.
// Event definitions are handled, but get no listeners - the enclosing event is notified instead.
//
// Parse only appends listeners. Parsing the same element twice results in duplicate listeners.
type EventSupportHandler struct{}

// HandledTypes returns a copy of the element types, the handler supports.
func (h EventSupportHandler) HandledTypes() []model.ElementType {
	return slices.Clone(eventSupportTypes)
}

func (h EventSupportHandler) HandlesType(elementType model.ElementType) bool {
	return slices.Contains(eventSupportTypes, elementType)
}

func (h EventSupportHandler) Parse(element *model.Element) error {
	switch element.Type {
	case model.ElementSequenceFlow:
		element.AddExecutionListener(model.NewInstanceListener(model.EventNameTake, event.NewTakeListener(element.Id)))
	case model.ElementUserTask:
		addTaskListeners(element)
		addStartEndListeners(element)
	case
		model.ElementBusinessRuleTask,
		model.ElementCallActivity,
		model.ElementEndEvent,
		model.ElementEventBasedGateway,
		model.ElementEventSubProcess,
		model.ElementExclusiveGateway,
		model.ElementInclusiveGateway,
		model.ElementManualTask,
		model.ElementParallelGateway,
		model.ElementReceiveTask,
		model.ElementScriptTask,
		model.ElementSendTask,
		model.ElementServiceTask,
		model.ElementStartEvent,
		model.ElementSubProcess,
		model.ElementTask,
		model.ElementThrowEvent,
		model.ElementTransaction:
		addStartEndListeners(element)
	case
		model.ElementErrorEventDefinition,
		model.ElementSignalEventDefinition,
		model.ElementTimerEventDefinition:
		// no flow element
	default:
		return Error{
			Type:   ErrorUnsupportedType,
			Title:  "failed to add event listeners",
			Detail: fmt.Sprintf("BPMN element %s of type %s is not supported", element.Id, element.Type),
		}
	}
	return nil
}

func addStartEndListeners(element *model.Element) {
	element.AddExecutionListener(model.NewInstanceListener(model.EventNameStart, event.NewExecutionListener(element.Id, event.TypeStartActivity)))
	element.AddExecutionListener(model.NewInstanceListener(model.EventNameEnd, event.NewExecutionListener(element.Id, event.TypeEndActivity)))
}

// addTaskListeners adds the task listeners in lifecycle order: create, assign, complete, delete.
func addTaskListeners(element *model.Element) {
	element.AddTaskListener(model.NewInstanceListener(model.EventNameCreate, event.NewTaskListener(element.Id, event.TypeCreateTask)))
	element.AddTaskListener(model.NewInstanceListener(model.EventNameAssign, event.NewTaskListener(element.Id, event.TypeAssignTask)))
	element.AddTaskListener(model.NewInstanceListener(model.EventNameComplete, event.NewTaskListener(element.Id, event.TypeCompleteTask)))
	element.AddTaskListener(model.NewInstanceListener(model.EventNameDelete, event.NewTaskListener(element.Id, event.TypeDeleteTask)))
}
