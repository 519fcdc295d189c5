package leave

import "strings"

// CanTransition reports whether a status change is allowed. The only legal
// moves are Pending to Approved and Pending to Rejected; terminal states are
// immutable.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}

func ValidType(leaveType string) bool {
	for _, candidate := range Types {
		if leaveType == candidate {
			return true
		}
	}
	return false
}

// NormalizeType maps any casing of a known leave type to its canonical
// spelling. Unknown values pass through unchanged for ValidType to reject.
func NormalizeType(leaveType string) string {
	trimmed := strings.TrimSpace(leaveType)
	for _, candidate := range Types {
		if strings.EqualFold(trimmed, candidate) {
			return candidate
		}
	}
	return trimmed
}
