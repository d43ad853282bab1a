// Package status holds the platform and transaction status catalogues.
// Each status carries a stable key (stored in the database), a display label and a color hint.
package status

type Status struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

const (
	ColorGreen  = "green"
	ColorOrange = "orange"
	ColorRed    = "red"
)

var (
	PlatformActive    = Status{Key: "ACTIVE", Label: "Active", Color: ColorGreen}
	PlatformInReview  = Status{Key: "IN_REVIEW", Label: "In Review", Color: ColorOrange}
	PlatformSuspended = Status{Key: "SUSPENDED", Label: "Suspended", Color: ColorRed}
	PlatformDeleted   = Status{Key: "DELETED", Label: "Deleted", Color: ColorRed}
)

var (
	TransactionReceived = Status{Key: "RECEIVED", Label: "Received", Color: ColorGreen}
	TransactionApproved = Status{Key: "APPROVED", Label: "Approved", Color: ColorGreen}
	TransactionPaid     = Status{Key: "PAID", Label: "Paid", Color: ColorGreen}
	TransactionPending  = Status{Key: "PENDING", Label: "Pending", Color: ColorOrange}
	TransactionDisputed = Status{Key: "DISPUTED", Label: "Disputed", Color: ColorRed}
	TransactionCanceled = Status{Key: "CANCELED", Label: "Canceled", Color: ColorRed}
	TransactionOverdue  = Status{Key: "OVERDUE", Label: "Overdue", Color: ColorRed}
)

var platformStatuses = index(PlatformActive, PlatformInReview, PlatformSuspended, PlatformDeleted)

var transactionStatuses = index(
	TransactionReceived,
	TransactionApproved,
	TransactionPaid,
	TransactionPending,
	TransactionDisputed,
	TransactionCanceled,
	TransactionOverdue,
)

func index(statuses ...Status) map[string]Status {
	m := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		m[s.Key] = s
	}
	return m
}

// Platform looks up a company platform status by key.
func Platform(key string) (Status, bool) {
	s, ok := platformStatuses[key]
	return s, ok
}

// Transaction looks up an invoice/bill transaction status by key.
func Transaction(key string) (Status, bool) {
	s, ok := transactionStatuses[key]
	return s, ok
}

// TransactionOrUnknown never fails; unknown keys echo back with a neutral label.
func TransactionOrUnknown(key string) Status {
	if s, ok := transactionStatuses[key]; ok {
		return s
	}
	return Status{Key: key, Label: key, Color: ColorOrange}
}

// IsActive reports whether a company with this platform status may be reached by tenant operations.
func IsActive(platformKey string) bool {
	return platformKey == PlatformActive.Key
}
