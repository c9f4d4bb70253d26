package order

import "sort"

var statuses = []Status{StatusPending, StatusInProgress, StatusReadyForPickup, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

var allowedTransitions = map[Status][]Status{
	StatusPending:        {StatusInProgress, StatusCancelled},
	StatusInProgress:     {StatusReadyForPickup, StatusCancelled},
	StatusReadyForPickup: {},
	StatusCancelled:      {},
}

// validateStatusTransition accepts legal forward moves and re-writes of the
// current status.
func validateStatusTransition(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// legacyStatuses maps statuses from the earlier delivery workflow onto the
// pickup workflow.
var legacyStatuses = map[string]Status{
	"confirmed":        StatusInProgress,
	"processing":       StatusInProgress,
	"shipped":          StatusReadyForPickup,
	"out-for-delivery": StatusReadyForPickup,
	"delivered":        StatusReadyForPickup,
	"refunded":         StatusCancelled,
}

func NormalizeStatus(s string) Status {
	if mapped, ok := legacyStatuses[s]; ok {
		return mapped
	}
	return Status(s)
}

func legacyStatusKeys() []string {
	keys := make([]string, 0, len(legacyStatuses))
	for k := range legacyStatuses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
