package parse

import (
	"errors"
	"sync"
	"testing"

	"github.com/gclaussn/go-bpmn-events/event"
	"github.com/gclaussn/go-bpmn-events/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	t.Run("user task", func(t *testing.T) {
		// when
		bpmnModel := mustParse(t, "task/user.bpmn", "userTest")

		// then
		processElement, err := bpmnModel.ProcessById("userTest")
		require.NoError(err)
		assert.Empty(processElement.ExecutionListeners)

		userTask := bpmnModel.ElementById("userTask")
		assert.Len(userTask.ExecutionListeners, 2)
		assert.Len(userTask.TaskListeners, 4)

		f1 := bpmnModel.ElementById("f1")
		assert.Equal([]listenerSummary{
			{model.EventNameTake, "f1", 0},
		}, executionListenerSummaries(t, f1))

		for _, id := range []string{"startEvent", "endEvent"} {
			element := bpmnModel.ElementById(id)
			assert.Equal([]listenerSummary{
				{model.EventNameStart, id, event.TypeStartActivity},
				{model.EventNameEnd, id, event.TypeEndActivity},
			}, executionListenerSummaries(t, element))
			assert.Empty(element.TaskListeners)
		}
	})

	t.Run("all kinds", func(t *testing.T) {
		// when
		bpmnModel := mustParse(t, "kinds.bpmn", "kindsTest")

		// then
		var (
			flowElements  int
			sequenceFlows int
			userTasks     int
		)

		for _, element := range bpmnModel.Elements {
			switch {
			case element.Type == model.ElementSequenceFlow:
				sequenceFlows++

				assert.Equal([]listenerSummary{
					{model.EventNameTake, element.Id, 0},
				}, executionListenerSummaries(t, element))
				assert.Empty(element.TaskListeners)
			case element.Type.IsEventDefinition():
				assert.Emptyf(element.ExecutionListeners, "event definition %s", element.Id)
			case EventSupportHandler{}.HandlesType(element.Type):
				flowElements++

				assert.Equalf([]listenerSummary{
					{model.EventNameStart, element.Id, event.TypeStartActivity},
					{model.EventNameEnd, element.Id, event.TypeEndActivity},
				}, executionListenerSummaries(t, element), "element %s", element.Id)

				if element.Type == model.ElementUserTask {
					userTasks++
					assert.Len(element.TaskListeners, 4)
				} else {
					assert.Emptyf(element.TaskListeners, "element %s", element.Id)
				}
			default:
				// process, boundary and catch events are not handled
				assert.Emptyf(element.ExecutionListeners, "element %s", element.Id)
				assert.Emptyf(element.TaskListeners, "element %s", element.Id)
			}
		}

		assert.Equal(26, flowElements)
		assert.Equal(25, sequenceFlows)
		assert.Equal(1, userTasks)

		// nested elements are parsed
		assert.Len(bpmnModel.ElementById("subProcessStartEvent").ExecutionListeners, 2)
		assert.Len(bpmnModel.ElementById("f25").ExecutionListeners, 1)
	})

	t.Run("returns error when process not exists", func(t *testing.T) {
		bpmnModel := mustCreateModel(t, "task/user.bpmn")

		err := New(EventSupportHandler{}).Parse(bpmnModel, "not-existing")
		require.Error(err)

		var parseErr Error
		require.True(errors.As(err, &parseErr))
		assert.Equal(ErrorProcessModel, parseErr.Type)
	})

	t.Run("returns error when process is invalid", func(t *testing.T) {
		bpmnModel := mustCreateModel(t, "invalid/element-unknown.bpmn")

		err := New(EventSupportHandler{}).Parse(bpmnModel, "elementUnknownTest")
		require.Error(err)

		var parseErr Error
		require.True(errors.As(err, &parseErr))
		assert.Equal(ErrorProcessModel, parseErr.Type)
		assert.Len(parseErr.Causes, 2)

		// no listener is attached
		for _, element := range bpmnModel.Elements {
			assert.Empty(element.ExecutionListeners)
		}
	})

	t.Run("returns handler error", func(t *testing.T) {
		bpmnModel := mustCreateModel(t, "task/user.bpmn")

		handlerErr := errors.New("handler failed")

		var parsed []string
		failing := testHandler{
			types: []model.ElementType{model.ElementUserTask, model.ElementStartEvent},
			parse: func(element *model.Element) error {
				parsed = append(parsed, element.Id)
				if element.Type == model.ElementUserTask {
					return handlerErr
				}
				return nil
			},
		}

		err := New(failing).Parse(bpmnModel, "userTest")
		assert.Equal(handlerErr, err)
		assert.Equal([]string{"startEvent", "userTask"}, parsed)
	})

	t.Run("parsing twice duplicates listeners", func(t *testing.T) {
		bpmnModel := mustCreateModel(t, "task/user.bpmn")

		parser := New(EventSupportHandler{})
		require.NoError(parser.Parse(bpmnModel, "userTest"))
		require.NoError(parser.Parse(bpmnModel, "userTest"))

		assert.Len(bpmnModel.ElementById("userTask").TaskListeners, 8)
		assert.Len(bpmnModel.ElementById("userTask").ExecutionListeners, 4)
		assert.Len(bpmnModel.ElementById("f1").ExecutionListeners, 2)
	})
}

func TestParser(t *testing.T) {
	assert := assert.New(t)

	t.Run("handlers are invoked in order", func(t *testing.T) {
		var calls []string

		a := testHandler{
			types: []model.ElementType{model.ElementStartEvent},
			parse: func(element *model.Element) error {
				calls = append(calls, "a:"+element.Id)
				return nil
			},
		}
		b := testHandler{
			types: []model.ElementType{model.ElementStartEvent, model.ElementEndEvent},
			parse: func(element *model.Element) error {
				calls = append(calls, "b:"+element.Id)
				return nil
			},
		}

		parser := New(a, b)

		assert.True(parser.HandlesType(model.ElementStartEvent))
		assert.True(parser.HandlesType(model.ElementEndEvent))
		assert.False(parser.HandlesType(model.ElementUserTask))

		assert.NoError(parser.ParseElement(&model.Element{Id: "startEvent", Type: model.ElementStartEvent}))
		assert.NoError(parser.ParseElement(&model.Element{Id: "endEvent", Type: model.ElementEndEvent}))
		assert.NoError(parser.ParseElement(&model.Element{Id: "userTask", Type: model.ElementUserTask}))

		assert.Equal([]string{"a:startEvent", "b:startEvent", "b:endEvent"}, calls)
	})

	t.Run("concurrent parsing", func(t *testing.T) {
		parser := New(EventSupportHandler{})

		bpmnModels := make([]*model.Model, 8)
		for i := range bpmnModels {
			bpmnModels[i] = mustCreateModel(t, "kinds.bpmn")
		}

		var wg sync.WaitGroup

		errs := make([]error, len(bpmnModels))
		for i := range bpmnModels {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = parser.Parse(bpmnModels[i], "kindsTest")
			}(i)
		}

		wg.Wait()

		for i := range bpmnModels {
			assert.NoError(errs[i])
			assert.Len(bpmnModels[i].ElementById("userTask").TaskListeners, 4)
		}
	})
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mustValidate := func(t *testing.T, fileName string, processId string) []ErrorCause {
		bpmnModel := mustCreateModel(t, fileName)

		processElement, err := bpmnModel.ProcessById(processId)
		require.NoError(err)

		return Validate(processElement.AllElements())
	}

	t.Run("valid", func(t *testing.T) {
		assert.Empty(mustValidate(t, "kinds.bpmn", "kindsTest"))
		assert.Empty(mustValidate(t, "task/user.bpmn", "userTest"))
		assert.Empty(Validate(nil))
	})

	t.Run("returns cause when BPMN process is not executable", func(t *testing.T) {
		causes := mustValidate(t, "invalid/process-not-executable.bpmn", "processNotExecutableTest")
		require.Len(causes, 1)

		assert.Equal("/processNotExecutableTest", causes[0].Pointer)
		assert.Equal("process", causes[0].Type)
		assert.Contains(causes[0].Detail, "not executable")
	})

	t.Run("returns cause when BPMN element has no ID", func(t *testing.T) {
		causes := mustValidate(t, "invalid/element-without-id.bpmn", "elementWithoutIdTest")
		require.Len(causes, 1)

		assert.Equal("/elementWithoutIdTest/", causes[0].Pointer)
		assert.Equal("element", causes[0].Type)
		assert.Equal("BPMN element of type START_EVENT has no ID", causes[0].Detail)
	})

	t.Run("returns cause when BPMN sequence flow has no source or target", func(t *testing.T) {
		causes := mustValidate(t, "invalid/element-unknown.bpmn", "elementUnknownTest")
		require.Len(causes, 2)

		assert.Equal("/elementUnknownTest/f1", causes[0].Pointer)
		assert.Equal("sequence_flow", causes[0].Type)
		assert.Contains(causes[0].Detail, "no target element")

		assert.Equal("/elementUnknownTest/f2", causes[1].Pointer)
		assert.Equal("sequence_flow", causes[1].Type)
		assert.Contains(causes[1].Detail, "no source element")
	})

	t.Run("returns cause when timer is invalid", func(t *testing.T) {
		causes := mustValidate(t, "invalid/timer-invalid.bpmn", "timerInvalidTest")
		require.Len(causes, 2)

		assert.Equal("/timerInvalidTest/timerCycleStartEvent", causes[0].Pointer)
		assert.Equal("timer", causes[0].Type)
		assert.Contains(causes[0].Detail, "CRON expression")

		assert.Equal("/timerInvalidTest/timeDateStartEvent", causes[1].Pointer)
		assert.Contains(causes[1].Detail, "RFC 3339")
	})

	t.Run("timer", func(t *testing.T) {
		assert.Empty(validateTimer(model.TimerEventDefinition{TimeCycle: "0 * * * *"}))
		assert.Empty(validateTimer(model.TimerEventDefinition{TimeCycle: "R3/PT10H"}))
		assert.Empty(validateTimer(model.TimerEventDefinition{TimeDate: "2026-10-16T12:00:00Z"}))
		assert.Empty(validateTimer(model.TimerEventDefinition{TimeDuration: "P1DT1H"}))
		assert.Empty(validateTimer(model.TimerEventDefinition{}))

		assert.NotEmpty(validateTimer(model.TimerEventDefinition{TimeCycle: "R3"}))
		assert.NotEmpty(validateTimer(model.TimerEventDefinition{TimeCycle: "R3/1H"}))
		assert.NotEmpty(validateTimer(model.TimerEventDefinition{TimeDuration: "PT"}))
		assert.NotEmpty(validateTimer(model.TimerEventDefinition{TimeDuration: "1H"}))
	})
}

func TestError(t *testing.T) {
	assert := assert.New(t)

	err := Error{
		Type:   ErrorProcessModel,
		Title:  "failed to parse process",
		Detail: "BPMN process test is invalid",
		Causes: []ErrorCause{
			{Pointer: "/test/f1", Type: "sequence_flow", Detail: "BPMN sequence flow f1 has no target element"},
		},
	}

	assert.Equal("PROCESS_MODEL: failed to parse process: BPMN process test is invalid\nsequence_flow: /test/f1: BPMN sequence flow f1 has no target element", err.Error())

	for errorType := ErrorBug; errorType <= ErrorUnsupportedType; errorType++ {
		assert.Equal(errorType, MapErrorType(errorType.String()))
	}
	assert.Equal("UNKNOWN", ErrorType(0).String())
}

type testHandler struct {
	types []model.ElementType
	parse func(*model.Element) error
}

func (h testHandler) HandledTypes() []model.ElementType {
	return h.types
}

func (h testHandler) Parse(element *model.Element) error {
	return h.parse(element)
}
