package engine

import (
	"errors"
	"fmt"
)

// Precondition rejections. None of them leave a partial mutation behind;
// callers show them to the user and carry on.
var (
	ErrQuestNotFound   = errors.New("quest not found")
	ErrHistoryNotFound = errors.New("history entry not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrGoalNotFound    = errors.New("goal not found")
)

// GateError indicates a feature is locked behind a required global level.
type GateError struct {
	Feature       string
	RequiredLevel int
}

func (e GateError) Error() string {
	if e.RequiredLevel <= 0 {
		return fmt.Sprintf("feature '%s' is locked", e.Feature)
	}
	return fmt.Sprintf("feature '%s' unlocks at level %d", e.Feature, e.RequiredLevel)
}

// GoldError is returned when a purchase costs more than the player holds.
type GoldError struct {
	Need int
	Have int
}

func (e GoldError) Error() string {
	return fmt.Sprintf("not enough gold: need %d, have %d", e.Need, e.Have)
}

type RushReason string

const (
	RushAlreadyUsed RushReason = "already_used"
	RushNotBuilt    RushReason = "not_built"
)

// RushError explains why a rush was refused.
type RushError struct {
	Reason RushReason
}

func (e RushError) Error() string {
	switch e.Reason {
	case RushAlreadyUsed:
		return "daily rush already used today"
	case RushNotBuilt:
		return "build the Chrono Tower to unlock rushing"
	default:
		return "rush unavailable"
	}
}

// InventoryFullError is returned when equipping past the slot limit.
type InventoryFullError struct {
	Slots int
}

func (e InventoryFullError) Error() string {
	return fmt.Sprintf("all %d equipment slots are in use", e.Slots)
}

// IsRejection reports whether err is an expected precondition rejection rather than a failure.
func IsRejection(err error) bool {
	var (
		gate GateError
		gold GoldError
		rush RushError
		full InventoryFullError
	)
	switch {
	case errors.As(err, &gate), errors.As(err, &gold), errors.As(err, &rush), errors.As(err, &full):
		return true
	case errors.Is(err, ErrQuestNotFound), errors.Is(err, ErrHistoryNotFound),
		errors.Is(err, ErrItemNotFound), errors.Is(err, ErrGoalNotFound):
		return true
	default:
		return false
	}
}
