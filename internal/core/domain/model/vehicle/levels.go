package vehicle

import (
	"fmt"

	"fleetkernel/internal/pkg/errs"
)

// IntegrationLevel says how far the kernel integrates a vehicle into the plant.
//
// Levels, from least to most integrated:
//
//	ToBeIgnored ──> ToBeNoticed ──> ToBeRespected ──> ToBeUtilized
//
// Only ToBeUtilized vehicles receive transport orders. A vehicle that is processing
// an order cannot drop below ToBeRespected.
type IntegrationLevel int

const (
	// UnknownIntegrationLevel is the zero value and never valid.
	UnknownIntegrationLevel IntegrationLevel = iota
	// ToBeIgnored vehicles are neither displayed nor routed around.
	ToBeIgnored
	// ToBeNoticed vehicles are displayed but not considered for routing.
	ToBeNoticed
	// ToBeRespected vehicles block the resources they occupy.
	ToBeRespected
	// ToBeUtilized vehicles may be dispatched.
	ToBeUtilized
)

func getIntegrationLevelStrings() map[IntegrationLevel]string {
	//nolint:exhaustive // UnknownIntegrationLevel is intentionally excluded as it's invalid
	return map[IntegrationLevel]string{
		ToBeIgnored:   "TO_BE_IGNORED",
		ToBeNoticed:   "TO_BE_NOTICED",
		ToBeRespected: "TO_BE_RESPECTED",
		ToBeUtilized:  "TO_BE_UTILIZED",
	}
}

// ParseIntegrationLevel converts the textual form used on the wire.
func ParseIntegrationLevel(s string) (IntegrationLevel, error) {
	for level, str := range getIntegrationLevelStrings() {
		if str == s {
			return level, nil
		}
	}
	return UnknownIntegrationLevel, errs.NewValueIsInvalidErrorWithCause(
		"integration level is invalid",
		fmt.Errorf("%q is not a valid integration level", s),
	)
}

func (l IntegrationLevel) Validate() error {
	if _, ok := getIntegrationLevelStrings()[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"integration level is invalid",
			fmt.Errorf("%d is not a valid integration level", l),
		)
	}
	return nil
}

// AllowsProcessingOrders reports whether a vehicle at this level may keep a
// transport order.
func (l IntegrationLevel) AllowsProcessingOrders() bool {
	return l == ToBeRespected || l == ToBeUtilized
}

func (l IntegrationLevel) String() string {
	if str, ok := getIntegrationLevelStrings()[l]; ok {
		return str
	}
	return "UNKNOWN"
}

// State is the operational state reported by the vehicle's driver.
type State int

const (
	StateUnknown State = iota
	StateUnavailable
	StateError
	StateIdle
	StateExecuting
	StateCharging
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:     "UNKNOWN",
		StateUnavailable: "UNAVAILABLE",
		StateError:       "ERROR",
		StateIdle:        "IDLE",
		StateExecuting:   "EXECUTING",
		StateCharging:    "CHARGING",
	}
}

// ParseState converts the textual form of a state. UNKNOWN is a legitimate state
// for a vehicle whose driver has not reported yet.
func ParseState(s string) (State, error) {
	for state, str := range getStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a valid state", s))
}

func (s State) Validate() error {
	if _, ok := getStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
