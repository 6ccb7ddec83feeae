// Package parse walks the elements of a BPMN process and passes them to parse handlers, which enrich the elements - e.g. by
// attaching listeners.
//
// A [Parser] only dispatches elements, whose type is handled by a handler. The [EventSupportHandler] attaches the listeners of
// package event.
package parse

import (
	"fmt"

	"github.com/gclaussn/go-bpmn-events/model"
)

// A Handler is invoked for each BPMN element of a type, it handles.
type Handler interface {
	// HandledTypes returns the element types, the handler is invoked for.
	HandledTypes() []model.ElementType

	// Parse processes a single element. An error aborts the parsing of the process.
	Parse(*model.Element) error
}

// New creates a parser, which dispatches elements to the given handlers.
// For each element, handlers are invoked in the order they are provided.
func New(handlers ...Handler) *Parser {
	handlersByType := make(map[model.ElementType][]Handler)
	for _, handler := range handlers {
		for _, elementType := range handler.HandledTypes() {
			handlersByType[elementType] = append(handlersByType[elementType], handler)
		}
	}
	return &Parser{handlersByType: handlersByType}
}

// Parser is safe for concurrent use, as long as each goroutine parses a different model.
type Parser struct {
	handlersByType map[model.ElementType][]Handler
}

// Parse validates a process of the model and dispatches all of its elements, including the process itself.
//
// If the process is invalid, an [Error] of type [ErrorProcessModel] is returned and no handler is invoked.
// The first handler error is returned as it is.
func (p *Parser) Parse(bpmnModel *model.Model, processId string) error {
	processElement, err := bpmnModel.ProcessById(processId)
	if err != nil {
		return Error{
			Type:   ErrorProcessModel,
			Title:  "failed to parse process",
			Detail: err.Error(),
		}
	}

	bpmnElements := processElement.AllElements()

	if causes := Validate(bpmnElements); len(causes) != 0 {
		return Error{
			Type:   ErrorProcessModel,
			Title:  "failed to parse process",
			Detail: fmt.Sprintf("BPMN process %s is invalid", processId),
			Causes: causes,
		}
	}

	for _, bpmnElement := range bpmnElements {
		if err := p.ParseElement(bpmnElement); err != nil {
			return err
		}
	}

	return nil
}

// ParseElement dispatches a single element, without validation.
func (p *Parser) ParseElement(bpmnElement *model.Element) error {
	for _, handler := range p.handlersByType[bpmnElement.Type] {
		if err := handler.Parse(bpmnElement); err != nil {
			return err
		}
	}
	return nil
}

// HandlesType reports whether any handler is invoked for the element type.
func (p *Parser) HandlesType(elementType model.ElementType) bool {
	return len(p.handlersByType[elementType]) != 0
}
