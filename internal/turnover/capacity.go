package turnover

import "fmt"

// HasCapacity compares the current booking count with the configured daily maximum.
// A nil maxCount means no capacity has been set and every booking is refused.
func HasCapacity(maxCount *int, currentCount int) Decision {
	if maxCount == nil {
		return Reject(ErrNoCapacityConfigured)
	}
	if currentCount >= *maxCount {
		return Reject(fmt.Errorf("%w: %d of %d", ErrCapacityExceeded, currentCount, *maxCount))
	}
	return Allow()
}
