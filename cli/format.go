package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/gclaussn/go-bpmn-events/event"
	"github.com/gclaussn/go-bpmn-events/model"
)

// listenerView is a flat representation of a listener, attached to a BPMN element.
type listenerView struct {
	ElementId   string            `json:"elementId"`
	ElementType model.ElementType `json:"elementType"`
	Kind        string            `json:"kind"` // execution or task
	Event       model.EventName   `json:"event"`
	EventType   event.Type        `json:"eventType"`
}

func newListenerViews(bpmnElements []*model.Element) []listenerView {
	views := make([]listenerView, 0)
	for _, bpmnElement := range bpmnElements {
		for _, listener := range bpmnElement.ExecutionListeners {
			view := listenerView{
				ElementId:   bpmnElement.Id,
				ElementType: bpmnElement.Type,
				Kind:        "execution",
				Event:       listener.Event,
			}
			if instance, ok := listener.Instance.(event.ExecutionListener); ok {
				view.EventType = instance.Type
				if instance.IsTake() {
					view.EventType = event.TypeTake
				}
			}
			views = append(views, view)
		}
		for _, listener := range bpmnElement.TaskListeners {
			view := listenerView{
				ElementId:   bpmnElement.Id,
				ElementType: bpmnElement.Type,
				Kind:        "task",
				Event:       listener.Event,
			}
			if instance, ok := listener.Instance.(event.TaskListener); ok {
				view.EventType = instance.Type
			}
			views = append(views, view)
		}
	}
	return views
}

func newTable(headers []string) table {
	return table{rows: [][]string{headers}}
}

// table renders rows as left aligned columns. The header is underlined.
type table struct {
	rows [][]string
}

func (t *table) addRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *table) format() string {
	columns := make([]int, len(t.rows[0]))
	for _, row := range t.rows {
		for j := range columns {
			if l := utf8.RuneCountInString(row[j]); columns[j] < l {
				columns[j] = l
			}
		}
	}

	underline := make([]string, len(columns))
	for j, width := range columns {
		underline[j] = strings.Repeat("-", width)
	}

	rows := make([][]string, 0, len(t.rows)+1)
	rows = append(rows, t.rows[0], underline)
	rows = append(rows, t.rows[1:]...)

	var sb strings.Builder
	for _, row := range rows {
		for j, value := range row {
			if j != 0 {
				sb.WriteString("   ")
			}

			sb.WriteString(value)

			if j != len(row)-1 {
				sb.WriteString(strings.Repeat(" ", columns[j]-utf8.RuneCountInString(value)))
			}
		}
		sb.WriteRune('\n')
	}

	return sb.String()
}
