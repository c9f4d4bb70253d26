package servicerequest

var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusInProgress, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Cancellable reports whether the owner may still withdraw the request.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusAssigned
}

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
