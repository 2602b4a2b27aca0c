package editor

// Status is implemented by the order status enums. It reports whether a
// status demands at least one line item before an order may enter it.
type Status interface {
	RequiresLineItems() bool
}

// CanTransition reports whether an order carrying lineCount line items may
// move to the target status. Statuses that require fulfilment are blocked at
// zero lines; every other status is allowed unconditionally. Enforcement
// (blocking the request, surfacing a message) is the caller's job.
func CanTransition(target Status, lineCount int) bool {
	if target.RequiresLineItems() {
		return lineCount > 0
	}
	return true
}

// CanRemoveLine reports whether a line may be removed from an order that
// currently has lineCount lines. The last remaining line is protected.
func CanRemoveLine(lineCount int) bool {
	return lineCount > 1
}
