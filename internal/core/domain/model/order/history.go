package order

import "time"

// StatusChange is one entry of an order's status history.
type StatusChange struct {
	Status    Status
	Timestamp time.Time
	UpdatedBy string
}

// validateHistory rejects histories with two consecutive entries of the same status.
func validateHistory(history []StatusChange) error {
	for i := 1; i < len(history); i++ {
		if history[i].Status == history[i-1].Status {
			return &HistoryIsInvalidError{Index: i, Status: history[i].Status}
		}
	}
	return nil
}
