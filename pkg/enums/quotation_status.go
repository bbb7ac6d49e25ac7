package enums

import "fmt"

// QuotationStatus tracks the commercial lifecycle of a quotation version.
type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "draft"
	QuotationStatusCompleted QuotationStatus = "completed"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusResponded QuotationStatus = "responded"
	QuotationStatusAccepted  QuotationStatus = "accepted"
	QuotationStatusRejected  QuotationStatus = "rejected"
	QuotationStatusExpired   QuotationStatus = "expired"
)

var validQuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusCompleted,
	QuotationStatusSent,
	QuotationStatusResponded,
	QuotationStatusAccepted,
	QuotationStatusRejected,
	QuotationStatusExpired,
}

// quotationStatusTransitions is the closed transition table. Expiry is
// not listed; it is derived from validity_days rather than requested by
// clients.
var quotationStatusTransitions = map[QuotationStatus][]QuotationStatus{
	QuotationStatusDraft:     {QuotationStatusCompleted, QuotationStatusSent},
	QuotationStatusCompleted: {QuotationStatusDraft, QuotationStatusSent},
	QuotationStatusSent:      {QuotationStatusResponded, QuotationStatusExpired},
	QuotationStatusResponded: {QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired},
}

// String implements fmt.Stringer.
func (s QuotationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuotationStatus.
func (s QuotationStatus) IsValid() bool {
	for _, candidate := range validQuotationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed for this
// version. Terminal versions can still be forked into new versions.
func (s QuotationStatus) IsTerminal() bool {
	switch s {
	case QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired:
		return true
	default:
		return false
	}
}

// IsEditable reports whether in-place updates are still permitted.
// From "sent" onward a version is frozen and edits must fork.
func (s QuotationStatus) IsEditable() bool {
	return s == QuotationStatusDraft || s == QuotationStatusCompleted
}

// CanTransitionTo reports whether the target status is reachable from
// the current one in a single step.
func (s QuotationStatus) CanTransitionTo(target QuotationStatus) bool {
	for _, candidate := range quotationStatusTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseQuotationStatus converts raw input into a QuotationStatus.
func ParseQuotationStatus(value string) (QuotationStatus, error) {
	for _, candidate := range validQuotationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation status %q", value)
}
