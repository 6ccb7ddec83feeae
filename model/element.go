package model

import "time"

type Element struct {
	Id   string
	Name string
	Type ElementType

	Parent   *Element
	Children []*Element

	Incoming []*Element // Incoming sequence flows.
	Outgoing []*Element // Outgoing sequence flows.

	// Source and target are only set for sequence flows.
	Source *Element
	Target *Element

	EventDefinitions []*Element // Timer, error and signal event definitions of an event.

	ExecutionListeners []Listener
	TaskListeners      []Listener // Only used by user tasks.

	Model any
}

// AddExecutionListener appends an execution listener - existing listeners are never replaced.
func (e *Element) AddExecutionListener(listener Listener) {
	e.ExecutionListeners = append(e.ExecutionListeners, listener)
}

// AddTaskListener appends a task listener - existing listeners are never replaced.
func (e *Element) AddTaskListener(listener Listener) {
	e.TaskListeners = append(e.TaskListeners, listener)
}

// AllElements returns the element itself, all descendants and their event definitions in breadth-first order.
func (e *Element) AllElements() []*Element {
	all := []*Element{e}

	i := 0
	for i < len(all) {
		all = append(all, all[i].EventDefinitions...)
		all = append(all, all[i].Children...)
		i++
	}

	return all
}

func (e *Element) ChildById(id string) *Element {
	for i := 0; i < len(e.Children); i++ {
		if e.Children[i].Id == id {
			return e.Children[i]
		}
	}
	return nil
}

func (e *Element) ChildrenByType(elementType ElementType) []*Element {
	var elements []*Element
	for i := 0; i < len(e.Children); i++ {
		if e.Children[i].Type == elementType {
			elements = append(elements, e.Children[i])
		}
	}
	return elements
}

func (e *Element) ExecutionListenersByEvent(event EventName) []Listener {
	return listenersByEvent(e.ExecutionListeners, event)
}

func (e *Element) TaskListenersByEvent(event EventName) []Listener {
	return listenersByEvent(e.TaskListeners, event)
}

func (e *Element) OutgoingById(targetId string) *Element {
	for i := 0; i < len(e.Outgoing); i++ {
		target := e.Outgoing[i].Target
		if target != nil && target.Id == targetId {
			return target
		}
	}
	return nil
}

func listenersByEvent(listeners []Listener, event EventName) []Listener {
	var result []Listener
	for _, listener := range listeners {
		if listener.Event == event {
			result = append(result, listener)
		}
	}
	return result
}

// element specific models

type BoundaryEvent struct {
	AttachedTo     *Element
	CancelActivity bool
}

type CallActivity struct {
	CalledElement string
}

type ErrorEventDefinition struct {
	ErrorRef string
}

type ExclusiveGateway struct {
	Default string
}

type InclusiveGateway struct {
	Default string
}

type Process struct {
	IsExecutable bool
}

type SequenceFlow struct {
	ConditionExpression string
}

type SignalEventDefinition struct {
	SignalRef string
}

type SubProcess struct {
	TriggeredByEvent bool
}

// TimerEventDefinition holds the raw timer expressions. At most one of them is expected to be set.
type TimerEventDefinition struct {
	TimeCycle    string
	TimeDate     string
	TimeDuration string
}

// Time parses the time date as RFC 3339 timestamp.
func (d TimerEventDefinition) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, d.TimeDate)
}

type UserTask struct {
	Assignee        string
	CandidateGroups string
	CandidateUsers  string
}
