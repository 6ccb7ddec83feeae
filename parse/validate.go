package parse

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/adhocore/gronx"
	"github.com/gclaussn/go-bpmn-events/model"
)

var iso8601DurationDateRegexp = regexp.MustCompile(`^P(\d+Y)?(\d+M)?(\d+W)?(\d+D)?$`)
var iso8601DurationTimeRegexp = regexp.MustCompile(`^(\d+H)?(\d+M)?(\d+S)?$`)

// Validate validates if the process elements can be parsed and deployed.
// The first element must be the process. If the process is invalid, causes are returned.
func Validate(bpmnElements []*model.Element) []ErrorCause {
	if len(bpmnElements) == 0 {
		return nil
	}

	var causes []ErrorCause

	if process, ok := bpmnElements[0].Model.(model.Process); ok && !process.IsExecutable {
		causes = append(causes, ErrorCause{
			Pointer: elementPointer(bpmnElements[0]),
			Type:    "process",
			Detail:  fmt.Sprintf("BPMN process %s is not executable", bpmnElements[0].Id),
		})
	}

	for _, bpmnElement := range bpmnElements {
		if bpmnElement.Id == "" && !bpmnElement.Type.IsEventDefinition() {
			causes = append(causes, ErrorCause{
				Pointer: elementPointer(bpmnElement),
				Type:    "element",
				Detail:  fmt.Sprintf("BPMN element of type %s has no ID", bpmnElement.Type),
			})
		}

		switch bpmnElement.Type {
		case model.ElementSequenceFlow:
			if bpmnElement.Source == nil {
				causes = append(causes, ErrorCause{
					Pointer: elementPointer(bpmnElement),
					Type:    "sequence_flow",
					Detail:  fmt.Sprintf("BPMN sequence flow %s has no source element", bpmnElement.Id),
				})
			}
			if bpmnElement.Target == nil {
				causes = append(causes, ErrorCause{
					Pointer: elementPointer(bpmnElement),
					Type:    "sequence_flow",
					Detail:  fmt.Sprintf("BPMN sequence flow %s has no target element", bpmnElement.Id),
				})
			}
		case model.ElementTimerEventDefinition:
			timer, _ := bpmnElement.Model.(model.TimerEventDefinition)

			event := bpmnElement
			if event.Parent != nil {
				event = event.Parent
			}

			if detail := validateTimer(timer); detail != "" {
				causes = append(causes, ErrorCause{
					Pointer: elementPointer(event),
					Type:    "timer",
					Detail:  fmt.Sprintf("BPMN element %s has an invalid timer: %s", event.Id, detail),
				})
			}
		}
	}

	return causes
}

func validateTimer(timer model.TimerEventDefinition) string {
	switch {
	case timer.TimeCycle != "":
		// ISO 8601 repeating interval, e.g. R3/PT10H
		if strings.HasPrefix(timer.TimeCycle, "R") {
			s := strings.SplitN(timer.TimeCycle, "/", 2)
			if len(s) != 2 || !isISO8601Duration(s[1]) {
				return fmt.Sprintf("time cycle %s is not a valid repeating interval", timer.TimeCycle)
			}
			return ""
		}
		if !gronx.IsValid(timer.TimeCycle) {
			return fmt.Sprintf("time cycle %s is not a valid CRON expression", timer.TimeCycle)
		}
	case timer.TimeDate != "":
		if _, err := timer.Time(); err != nil {
			return fmt.Sprintf("time date %s is not a valid RFC 3339 timestamp", timer.TimeDate)
		}
	case timer.TimeDuration != "":
		if !isISO8601Duration(timer.TimeDuration) {
			return fmt.Sprintf("time duration %s is not a valid ISO 8601 duration", timer.TimeDuration)
		}
	}
	return ""
}

func isISO8601Duration(v string) bool {
	s := strings.Split(v, "T")

	var valid bool
	if len(s) == 1 && len(s[0]) >= 3 { // e.g. P1D
		valid = iso8601DurationDateRegexp.MatchString(s[0])
	} else if len(s) == 2 {
		if len(s[0]) == 1 && s[0][0] == 'P' { // e.g. PT1S -> P
			valid = true
		} else { // e.g. P1DT1S -> P1D
			valid = iso8601DurationDateRegexp.MatchString(s[0])
		}

		if len(s[1]) >= 2 { // e.g. PT1S -> 1S
			valid = valid && iso8601DurationTimeRegexp.MatchString(s[1])
		} else {
			valid = false
		}
	}

	return valid
}

// elementPointer returns the path of element IDs from the process to the element, e.g. /process/subProcess/task.
func elementPointer(bpmnElement *model.Element) string {
	var ids []string

	curr := bpmnElement
	for {
		ids = append(ids, curr.Id)
		if curr.Parent == nil {
			break
		}
		curr = curr.Parent
	}

	ids = append(ids, "") // for leading slash

	slices.Reverse(ids)

	return strings.Join(ids, "/")
}
