package metadata

import "fmt"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
	StatusLost        Status = "lost"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusMaintenance, StatusRetired, StatusLost:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

func NewCondition(value string) (Condition, error) {
	condition := Condition(value)
	if !condition.isValid() {
		return "", fmt.Errorf("invalid condition: %s", value)
	}
	return condition, nil
}

func (c Condition) isValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}
