package domain

import "time"

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

var reservationTransitions = transitions[ReservationStatus]{
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

func (s ReservationStatus) Valid() bool { return reservationTransitions.known(s) }

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return reservationTransitions.allows(s, next)
}

func (s ReservationStatus) EnteredFrom() []ReservationStatus {
	return reservationTransitions.sources(s)
}

// ReservationDateLayout is the wire format of Reservation.Date.
const ReservationDateLayout = "2006-01-02"

type Reservation struct {
	ID        string            `json:"id" bson:"_id"`
	UserID    string            `json:"userId" bson:"userId"`
	Date      time.Time         `json:"date" bson:"date"`
	Time      string            `json:"time" bson:"time"`
	People    int               `json:"people" bson:"people"`
	Status    ReservationStatus `json:"status" bson:"status"`
	Notes     string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}
