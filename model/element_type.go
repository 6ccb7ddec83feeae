package model

import "fmt"

// ElementType describes the different BPMN element types - especially tasks, gateways, events and event definitions.
type ElementType int

const (
	ElementBoundaryEvent ElementType = iota + 1
	ElementBusinessRuleTask
	ElementCallActivity
	ElementEndEvent
	ElementErrorEventDefinition
	ElementEventBasedGateway
	ElementEventSubProcess
	ElementExclusiveGateway
	ElementInclusiveGateway
	ElementIntermediateCatchEvent
	ElementManualTask
	ElementParallelGateway
	ElementProcess
	ElementReceiveTask
	ElementScriptTask
	ElementSendTask
	ElementSequenceFlow
	ElementServiceTask
	ElementSignalEventDefinition
	ElementStartEvent
	ElementSubProcess
	ElementTask
	ElementThrowEvent
	ElementTimerEventDefinition
	ElementTransaction
	ElementUserTask
)

func MapElementType(s string) ElementType {
	switch s {
	case "BOUNDARY_EVENT":
		return ElementBoundaryEvent
	case "BUSINESS_RULE_TASK":
		return ElementBusinessRuleTask
	case "CALL_ACTIVITY":
		return ElementCallActivity
	case "END_EVENT":
		return ElementEndEvent
	case "ERROR_EVENT_DEFINITION":
		return ElementErrorEventDefinition
	case "EVENT_BASED_GATEWAY":
		return ElementEventBasedGateway
	case "EVENT_SUB_PROCESS":
		return ElementEventSubProcess
	case "EXCLUSIVE_GATEWAY":
		return ElementExclusiveGateway
	case "INCLUSIVE_GATEWAY":
		return ElementInclusiveGateway
	case "INTERMEDIATE_CATCH_EVENT":
		return ElementIntermediateCatchEvent
	case "MANUAL_TASK":
		return ElementManualTask
	case "PARALLEL_GATEWAY":
		return ElementParallelGateway
	case "PROCESS":
		return ElementProcess
	case "RECEIVE_TASK":
		return ElementReceiveTask
	case "SCRIPT_TASK":
		return ElementScriptTask
	case "SEND_TASK":
		return ElementSendTask
	case "SEQUENCE_FLOW":
		return ElementSequenceFlow
	case "SERVICE_TASK":
		return ElementServiceTask
	case "SIGNAL_EVENT_DEFINITION":
		return ElementSignalEventDefinition
	case "START_EVENT":
		return ElementStartEvent
	case "SUB_PROCESS":
		return ElementSubProcess
	case "TASK":
		return ElementTask
	case "THROW_EVENT":
		return ElementThrowEvent
	case "TIMER_EVENT_DEFINITION":
		return ElementTimerEventDefinition
	case "TRANSACTION":
		return ElementTransaction
	case "USER_TASK":
		return ElementUserTask
	default:
		return 0
	}
}

// IsEventDefinition reports whether the type is nested under an event, rather than being part of the control flow.
func (v ElementType) IsEventDefinition() bool {
	switch v {
	case
		ElementErrorEventDefinition,
		ElementSignalEventDefinition,
		ElementTimerEventDefinition:
		return true
	default:
		return false
	}
}

func (v ElementType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v ElementType) String() string {
	switch v {
	case ElementBoundaryEvent:
		return "BOUNDARY_EVENT"
	case ElementBusinessRuleTask:
		return "BUSINESS_RULE_TASK"
	case ElementCallActivity:
		return "CALL_ACTIVITY"
	case ElementEndEvent:
		return "END_EVENT"
	case ElementErrorEventDefinition:
		return "ERROR_EVENT_DEFINITION"
	case ElementEventBasedGateway:
		return "EVENT_BASED_GATEWAY"
	case ElementEventSubProcess:
		return "EVENT_SUB_PROCESS"
	case ElementExclusiveGateway:
		return "EXCLUSIVE_GATEWAY"
	case ElementInclusiveGateway:
		return "INCLUSIVE_GATEWAY"
	case ElementIntermediateCatchEvent:
		return "INTERMEDIATE_CATCH_EVENT"
	case ElementManualTask:
		return "MANUAL_TASK"
	case ElementParallelGateway:
		return "PARALLEL_GATEWAY"
	case ElementProcess:
		return "PROCESS"
	case ElementReceiveTask:
		return "RECEIVE_TASK"
	case ElementScriptTask:
		return "SCRIPT_TASK"
	case ElementSendTask:
		return "SEND_TASK"
	case ElementSequenceFlow:
		return "SEQUENCE_FLOW"
	case ElementServiceTask:
		return "SERVICE_TASK"
	case ElementSignalEventDefinition:
		return "SIGNAL_EVENT_DEFINITION"
	case ElementStartEvent:
		return "START_EVENT"
	case ElementSubProcess:
		return "SUB_PROCESS"
	case ElementTask:
		return "TASK"
	case ElementThrowEvent:
		return "THROW_EVENT"
	case ElementTimerEventDefinition:
		return "TIMER_EVENT_DEFINITION"
	case ElementTransaction:
		return "TRANSACTION"
	case ElementUserTask:
		return "USER_TASK"
	default:
		return ""
	}
}

func (v *ElementType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapElementType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid element type data %s", s)
	}
	return nil
}
