package constant

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// ReservationEventType is the event_type field of published reservation events.
type ReservationEventType string

const (
	EventReservationCreated          ReservationEventType = "ReservationCreated"
	EventReservationConfirmed        ReservationEventType = "ReservationConfirmed"
	EventReservationCancelled        ReservationEventType = "ReservationCancelled"
	EventReservationExpired          ReservationEventType = "ReservationExpired"
	EventReservationStatusOverridden ReservationEventType = "ReservationStatusOverridden"
)
