package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// SearchStatus represents the phase of the driver search session attached to a
// pending order.
//
// Phase transitions:
//
//	SearchNotStarted ──> Searching ──> SearchExpanded ──> SearchStopped
//	                        ^                                   │
//	                        └────────── (restart) ──────────────┘
//
// The phase never regresses from SearchExpanded to Searching, and
// SearchStopped is reached from SearchExpanded only; a session cannot skip
// the expansion phase. The phase is meaningful only while the order status is
// Pending; once the order is claimed or cancelled it is frozen and ignored.
type SearchStatus int

const (
	// SearchNotStarted means no search session has ever been started.
	// Persisted as NULL.
	SearchNotStarted SearchStatus = iota

	// Searching is the initial phase: candidates inside the initial radius
	// are notified until the first deadline passes.
	Searching

	// SearchExpanded is the second phase with the wider radius.
	SearchExpanded

	// SearchStopped is the terminal phase: the session timed out without a
	// claim. The customer may restart the search or cancel the order.
	SearchStopped
)

func getSearchStatusStrings() map[SearchStatus]string {
	return map[SearchStatus]string{
		SearchNotStarted: "",
		Searching:        "searching",
		SearchExpanded:   "expanded",
		SearchStopped:    "stopped",
	}
}

// SearchStatusFromString parses the persisted representation of a search
// phase. The empty string maps to SearchNotStarted (a NULL column).
func SearchStatusFromString(s string) (SearchStatus, error) {
	for status, str := range getSearchStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return SearchNotStarted, errs.NewValueIsInvalidErrorWithCause("search status",
		fmt.Errorf("%q is not a valid search status", s))
}

// Validate checks if the SearchStatus value is one of the defined phases.
func (s SearchStatus) Validate() error {
	if _, ok := getSearchStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("search status",
			fmt.Errorf("%d is not a valid search status", s))
	}
	return nil
}

// String returns the persisted/wire name of the phase.
// SearchNotStarted renders as the empty string.
func (s SearchStatus) String() string {
	if str, ok := getSearchStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether a session is running and has a deadline to honor.
func (s SearchStatus) IsActive() bool {
	return s == Searching || s == SearchExpanded
}

// Start transitions into Searching. Valid from SearchNotStarted (first
// dispatch) and from SearchStopped (customer-requested restart).
func (s SearchStatus) Start() (SearchStatus, error) {
	if s.IsActive() {
		return 0, errs.NewInvalidStateError("start search", s.String())
	}

	return Searching, nil
}

// Expand transitions Searching into SearchExpanded. Any other origin phase is
// rejected, which makes scheduler re-fires on an already expanded session
// visible to the caller as invalid-state errors.
func (s SearchStatus) Expand() (SearchStatus, error) {
	if s != Searching {
		return 0, errs.NewInvalidStateError("expand search", s.String())
	}

	return SearchExpanded, nil
}

// Stop transitions SearchExpanded into SearchStopped. Stopping directly from
// Searching is not allowed: a session always passes through the expanded
// phase before giving up.
func (s SearchStatus) Stop() (SearchStatus, error) {
	if s != SearchExpanded {
		return 0, errs.NewInvalidStateError("stop search", s.String())
	}

	return SearchStopped, nil
}
