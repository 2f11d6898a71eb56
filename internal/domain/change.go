package domain

// RecordKind names one of the two record tables.
type RecordKind string

const (
	KindInquiries RecordKind = "inquiries"
	KindBookings  RecordKind = "bookings"
)

// Valid reports whether k is a known record kind.
func (k RecordKind) Valid() bool {
	return k == KindInquiries || k == KindBookings
}

// ChangeOp is the kind of row change a notification reports.
type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
	OpDelete ChangeOp = "DELETE"
)

// ChangeEvent is one row-level change notification. Delivery is at least once;
// consumers treat every event as "the view may be stale" and re-fetch.
type ChangeEvent struct {
	Table RecordKind `json:"table"`
	Op    ChangeOp   `json:"op"`
	ID    string     `json:"id"`
}
