package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type categorizes an order and determines which waypoint the driver search
// originates from.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypePackage is a point-to-point delivery: the route is a pickup
	// waypoint followed by a delivery waypoint, and the search always
	// originates from the pickup. The delivery address is never a search
	// origin.
	TypePackage

	// TypeMultiStop is a multi-waypoint errand: the search originates from
	// the first unfulfilled waypoint so drivers are found near the next
	// actual stop.
	TypeMultiStop
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:   "unknown",
		TypePackage:   "package",
		TypeMultiStop: "multi_stop",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		TypePackage:   "package",
		TypeMultiStop: "multi_stop",
	}
}

// TypeFromString parses the persisted representation of an order type.
func TypeFromString(s string) (Type, error) {
	for orderType, str := range getValidTypeStrings() {
		if str == s {
			return orderType, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type",
		fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks if the Type value is one of the defined categories.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the persisted/wire name of the type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
