package model

import "time"

// Equipment condition values.
const (
	ConditionNew         = "new"
	ConditionGood        = "good"
	ConditionFair        = "fair"
	ConditionNeedsRepair = "needs-repair"
)

// ValidCondition reports whether s is a known equipment condition.
func ValidCondition(s string) bool {
	switch s {
	case ConditionNew, ConditionGood, ConditionFair, ConditionNeedsRepair:
		return true
	}
	return false
}

// Equipment is an inventory item independent of any user.  Its lifecycle is
// admin-owned; every authorized role may list it.
type Equipment struct {
	ID              uint64
	Name            string
	Description     string
	Quantity        uint
	Condition       string
	PurchaseDate    *time.Time
	LastMaintenance *time.Time
}
