package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// New reads BPMN XML and creates a model, containing all processes and their elements.
//
// Elements, which are unknown, are skipped together with their content.
// Sequence flows are resolved after the whole document has been read, so that their order within the XML does not matter.
func New(bpmnXmlReader io.Reader) (*Model, error) {
	var (
		definitions       Definitions
		definitionsParsed bool

		elements []*Element
		frames   []frame

		flowRefs = make(map[*Element][2]string) // sequence flow -> source and target ref
	)

	// scope returns the nearest process, sub process or transaction, the current element belongs to.
	scope := func() *Element {
		for i := len(frames) - 1; i >= 0; i-- {
			if e := frames[i].element; e != nil && e.isScope() {
				return e
			}
		}
		return nil
	}

	// current returns the innermost known element.
	current := func() *Element {
		for i := len(frames) - 1; i >= 0; i-- {
			if e := frames[i].element; e != nil {
				return e
			}
		}
		return nil
	}

	addElement := func(element *Element) {
		if parent := scope(); parent != nil {
			element.Parent = parent
			parent.Children = append(parent.Children, element)
		}
		elements = append(elements, element)
	}

	addEventDefinition := func(element *Element) {
		if event := current(); event != nil {
			element.Parent = event
			event.EventDefinitions = append(event.EventDefinitions, element)
		}
		elements = append(elements, element)
	}

	decoder := xml.NewDecoder(bpmnXmlReader)

	count := 0
	for {
		token, err := decoder.Token()
		if token == nil || err == io.EOF {
			if count == 0 {
				return nil, errors.New("XML is empty")
			}
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode XML: %v", err)
		}

		count++

		switch t := token.(type) {
		case xml.StartElement:
			var element *Element

			if len(frames) != 0 && frames[len(frames)-1].skip {
				frames = append(frames, frame{name: t.Name.Local, skip: true})
				continue
			}

			switch t.Name.Local {
			case "boundaryEvent":
				cancelActivity, _ := strconv.ParseBool(getAttrValueWithDefault(t.Attr, "cancelActivity", "true"))

				element = newElement(ElementBoundaryEvent, t.Attr)
				element.Model = BoundaryEvent{
					AttachedTo:     &Element{Id: getAttrValue(t.Attr, "attachedToRef")}, // placeholder
					CancelActivity: cancelActivity,
				}
				addElement(element)
			case "businessRuleTask":
				element = newElement(ElementBusinessRuleTask, t.Attr)
				addElement(element)
			case "callActivity":
				element = newElement(ElementCallActivity, t.Attr)
				element.Model = CallActivity{CalledElement: getAttrValue(t.Attr, "calledElement")}
				addElement(element)
			case "definitions":
				definitions.Id = getAttrValue(t.Attr, "id")
				definitionsParsed = true
			case "endEvent":
				element = newElement(ElementEndEvent, t.Attr)
				addElement(element)
			case "errorEventDefinition":
				element = newElement(ElementErrorEventDefinition, t.Attr)
				element.Model = ErrorEventDefinition{ErrorRef: getAttrValue(t.Attr, "errorRef")}
				addEventDefinition(element)
			case "eventBasedGateway":
				element = newElement(ElementEventBasedGateway, t.Attr)
				addElement(element)
			case "exclusiveGateway":
				element = newElement(ElementExclusiveGateway, t.Attr)
				element.Model = ExclusiveGateway{Default: getAttrValue(t.Attr, "default")}
				addElement(element)
			case "inclusiveGateway":
				element = newElement(ElementInclusiveGateway, t.Attr)
				element.Model = InclusiveGateway{Default: getAttrValue(t.Attr, "default")}
				addElement(element)
			case "intermediateCatchEvent":
				element = newElement(ElementIntermediateCatchEvent, t.Attr)
				addElement(element)
			case "intermediateThrowEvent":
				element = newElement(ElementThrowEvent, t.Attr)
				addElement(element)
			case "manualTask":
				element = newElement(ElementManualTask, t.Attr)
				addElement(element)
			case "parallelGateway":
				element = newElement(ElementParallelGateway, t.Attr)
				addElement(element)
			case "process":
				isExecutable, _ := strconv.ParseBool(getAttrValue(t.Attr, "isExecutable"))

				element = newElement(ElementProcess, t.Attr)
				element.Model = Process{IsExecutable: isExecutable}
				elements = append(elements, element)

				definitions.Processes = append(definitions.Processes, element)
			case "receiveTask":
				element = newElement(ElementReceiveTask, t.Attr)
				addElement(element)
			case "scriptTask":
				element = newElement(ElementScriptTask, t.Attr)
				addElement(element)
			case "sendTask":
				element = newElement(ElementSendTask, t.Attr)
				addElement(element)
			case "sequenceFlow":
				element = newElement(ElementSequenceFlow, t.Attr)
				element.Model = SequenceFlow{}
				addElement(element)

				flowRefs[element] = [2]string{getAttrValue(t.Attr, "sourceRef"), getAttrValue(t.Attr, "targetRef")}
			case "serviceTask":
				element = newElement(ElementServiceTask, t.Attr)
				addElement(element)
			case "signalEventDefinition":
				element = newElement(ElementSignalEventDefinition, t.Attr)
				element.Model = SignalEventDefinition{SignalRef: getAttrValue(t.Attr, "signalRef")}
				addEventDefinition(element)
			case "startEvent":
				element = newElement(ElementStartEvent, t.Attr)
				addElement(element)
			case "subProcess":
				triggeredByEvent, _ := strconv.ParseBool(getAttrValue(t.Attr, "triggeredByEvent"))

				if triggeredByEvent {
					element = newElement(ElementEventSubProcess, t.Attr)
				} else {
					element = newElement(ElementSubProcess, t.Attr)
				}
				element.Model = SubProcess{TriggeredByEvent: triggeredByEvent}
				addElement(element)
			case "task":
				element = newElement(ElementTask, t.Attr)
				addElement(element)
			case "timerEventDefinition":
				element = newElement(ElementTimerEventDefinition, t.Attr)
				element.Model = TimerEventDefinition{}
				addEventDefinition(element)
			case "transaction":
				element = newElement(ElementTransaction, t.Attr)
				addElement(element)
			case "userTask":
				element = newElement(ElementUserTask, t.Attr)
				element.Model = UserTask{
					Assignee:        getAttrValue(t.Attr, "assignee"),
					CandidateGroups: getAttrValue(t.Attr, "candidateGroups"),
					CandidateUsers:  getAttrValue(t.Attr, "candidateUsers"),
				}
				addElement(element)
			case
				"conditionExpression",
				"documentation",
				"incoming",
				"outgoing",
				"timeCycle",
				"timeDate",
				"timeDuration":
				// content is read as character data
			case "collaboration", "message", "signal", "error", "escalation", "extensionElements", "BPMNDiagram":
				frames = append(frames, frame{name: t.Name.Local, skip: true})
				continue
			}

			frames = append(frames, frame{name: t.Name.Local, element: element})
		case xml.CharData:
			if len(frames) == 0 || frames[len(frames)-1].skip {
				continue
			}

			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}

			element := current()
			if element == nil {
				continue
			}

			switch frames[len(frames)-1].name {
			case "conditionExpression":
				if model, ok := element.Model.(SequenceFlow); ok {
					model.ConditionExpression = text
					element.Model = model
				}
			case "timeCycle", "timeDate", "timeDuration":
				if model, ok := element.Model.(TimerEventDefinition); ok {
					switch frames[len(frames)-1].name {
					case "timeCycle":
						model.TimeCycle = text
					case "timeDate":
						model.TimeDate = text
					case "timeDuration":
						model.TimeDuration = text
					}
					element.Model = model
				}
			}
		case xml.EndElement:
			if len(frames) != 0 {
				frames = frames[:len(frames)-1]
			}
		}
	}

	if !definitionsParsed {
		return nil, errors.New("no definitions found")
	}

	model := Model{
		Definitions: &definitions,
		Elements:    elements,

		elementsById: make(map[string]*Element, len(elements)),
	}

	for _, element := range elements {
		if element.Id == "" {
			continue
		}
		if _, ok := model.elementsById[element.Id]; !ok {
			model.elementsById[element.Id] = element
		}
	}

	for _, element := range elements {
		switch element.Type {
		case ElementBoundaryEvent:
			// resolve "attached to" placeholder
			boundaryEvent := element.Model.(BoundaryEvent)
			boundaryEvent.AttachedTo = model.ElementById(boundaryEvent.AttachedTo.Id)
			element.Model = boundaryEvent
		case ElementSequenceFlow:
			refs := flowRefs[element]

			if source := model.ElementById(refs[0]); source != nil && source.Type != ElementSequenceFlow {
				element.Source = source
				source.Outgoing = append(source.Outgoing, element)
			}
			if target := model.ElementById(refs[1]); target != nil && target.Type != ElementSequenceFlow {
				element.Target = target
				target.Incoming = append(target.Incoming, element)
			}
		}
	}

	return &model, nil
}

type Model struct {
	Definitions *Definitions

	Elements []*Element // All elements of all processes in document order.

	elementsById map[string]*Element
}

// AttachedTo returns all boundary events that are attached to a specific task, sub process or call activity.
func (m *Model) AttachedTo(id string) []*Element {
	var elements []*Element
	for _, element := range m.Elements {
		if element.Type != ElementBoundaryEvent {
			continue
		}
		if attachedTo := element.Model.(BoundaryEvent).AttachedTo; attachedTo != nil && attachedTo.Id == id {
			elements = append(elements, element)
		}
	}
	return elements
}

// ElementById returns the element with the given ID, or nil, if no such element exists.
func (m *Model) ElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return m.elementsById[id]
}

// ElementsByType returns all elements of the given type.
func (m *Model) ElementsByType(elementType ElementType) []*Element {
	var elements []*Element
	for _, element := range m.Elements {
		if element.Type == elementType {
			elements = append(elements, element)
		}
	}
	return elements
}

// ProcessById returns the process with the given ID or an error, if no such process exists.
func (m *Model) ProcessById(id string) (*Element, error) {
	for i := range m.Definitions.Processes {
		if m.Definitions.Processes[i].Id == id {
			return m.Definitions.Processes[i], nil
		}
	}
	return nil, fmt.Errorf("BPMN process %s not found", id)
}

type Definitions struct {
	Id string

	Processes []*Element
}

// frame is an open XML element. Skipped frames and their content are ignored.
type frame struct {
	name    string
	element *Element
	skip    bool
}

func (e *Element) isScope() bool {
	switch e.Type {
	case
		ElementEventSubProcess,
		ElementProcess,
		ElementSubProcess,
		ElementTransaction:
		return true
	default:
		return false
	}
}

func getAttrValue(attributes []xml.Attr, name string) string {
	for i := range attributes {
		if attributes[i].Name.Local == name {
			return attributes[i].Value
		}
	}
	return ""
}

func getAttrValueWithDefault(attributes []xml.Attr, name string, defaultValue string) string {
	if value := getAttrValue(attributes, name); value != "" {
		return value
	} else {
		return defaultValue
	}
}

func newElement(elementType ElementType, attributes []xml.Attr) *Element {
	return &Element{
		Id:   getAttrValue(attributes, "id"),
		Name: getAttrValue(attributes, "name"),
		Type: elementType,
	}
}
