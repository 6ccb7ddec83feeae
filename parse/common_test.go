package parse

import (
	"os"
	"testing"

	"github.com/gclaussn/go-bpmn-events/event"
	"github.com/gclaussn/go-bpmn-events/model"
)

func mustCreateModel(t *testing.T, fileName string) *model.Model {
	fileName = "../test/bpmn/" + fileName

	bpmnFile, err := os.Open(fileName)
	if err != nil {
		t.Fatalf("failed to open BPMN file %s: %v", fileName, err)
	}

	defer bpmnFile.Close()

	bpmnModel, err := model.New(bpmnFile)
	if err != nil {
		t.Fatalf("failed to parse BPMN XML: %v", err)
	}

	return bpmnModel
}

func mustParse(t *testing.T, fileName string, processId string) *model.Model {
	bpmnModel := mustCreateModel(t, fileName)
	if err := New(EventSupportHandler{}).Parse(bpmnModel, processId); err != nil {
		t.Fatalf("failed to parse process %s: %v", processId, err)
	}
	return bpmnModel
}

// listenerSummary is a comparable view of an attached listener.
type listenerSummary struct {
	Event      model.EventName
	ActivityId string
	Type       event.Type
}

func executionListenerSummaries(t *testing.T, element *model.Element) []listenerSummary {
	var summaries []listenerSummary
	for _, listener := range element.ExecutionListeners {
		if listener.ImplementationType != model.ImplementationInstance {
			t.Fatalf("expected listener of %s to be bound to an instance", element.Id)
		}
		instance, ok := listener.Instance.(event.ExecutionListener)
		if !ok {
			t.Fatalf("expected execution listener of %s, but got %T", element.Id, listener.Instance)
		}
		summaries = append(summaries, listenerSummary{listener.Event, instance.ActivityId, instance.Type})
	}
	return summaries
}

func taskListenerSummaries(t *testing.T, element *model.Element) []listenerSummary {
	var summaries []listenerSummary
	for _, listener := range element.TaskListeners {
		if listener.ImplementationType != model.ImplementationInstance {
			t.Fatalf("expected listener of %s to be bound to an instance", element.Id)
		}
		instance, ok := listener.Instance.(event.TaskListener)
		if !ok {
			t.Fatalf("expected task listener of %s, but got %T", element.Id, listener.Instance)
		}
		summaries = append(summaries, listenerSummary{listener.Event, instance.ActivityId, instance.Type})
	}
	return summaries
}
