package domain

import (
	"fmt"
	"time"
)

// ActivityLog is an append-only audit entry. It is written as a side effect of
// order, payment, reservation and testimonial mutations and never modified.
type ActivityLog struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Action    string    `json:"action" bson:"action"`
	Details   string    `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Action labels as shown in the user dashboard.
const (
	ActionOrderCreated        = "Creó un pedido"
	ActionOrderUpdated        = "Actualizó un pedido"
	ActionPaymentCreated      = "Realizó un pago"
	ActionPaymentUpdated      = "Actualizó un pago"
	ActionReservationCreated  = "Hizo una reserva"
	ActionReservationUpdated  = "Actualizó una reserva"
	ActionTestimonialCreated  = "Creó un testimonio"
	ActionTestimonialApproved = "Aprobó un testimonio"
)

func NewActivityLog(userID, action, details string, at time.Time) ActivityLog {
	return ActivityLog{
		ID:        NewID(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: at,
	}
}

func OrderCreatedActivity(o *Order, at time.Time) ActivityLog {
	return NewActivityLog(o.UserID, ActionOrderCreated,
		fmt.Sprintf("Pedido #%s con un total de S/. %s", o.ID, FormatMoney(o.Total)), at)
}

func OrderStatusActivity(actorID string, o *Order, at time.Time) ActivityLog {
	return NewActivityLog(actorID, ActionOrderUpdated,
		fmt.Sprintf("Pedido #%s cambió a estado: %s", o.ID, o.Status), at)
}

func PaymentCreatedActivity(p *Payment, at time.Time) ActivityLog {
	return NewActivityLog(p.UserID, ActionPaymentCreated,
		fmt.Sprintf("Pago de S/. %s para el pedido #%s usando %s", FormatMoney(p.Amount), p.OrderID, p.Method), at)
}

func PaymentStatusActivity(actorID string, p *Payment, at time.Time) ActivityLog {
	return NewActivityLog(actorID, ActionPaymentUpdated,
		fmt.Sprintf("Pago #%s cambió a estado: %s", p.ID, p.Status), at)
}

func ReservationCreatedActivity(r *Reservation, at time.Time) ActivityLog {
	return NewActivityLog(r.UserID, ActionReservationCreated,
		fmt.Sprintf("Reserva para %d personas el %s a las %s", r.People, r.Date.Format(ReservationDateLayout), r.Time), at)
}

func ReservationStatusActivity(actorID string, r *Reservation, at time.Time) ActivityLog {
	return NewActivityLog(actorID, ActionReservationUpdated,
		fmt.Sprintf("Reserva #%s cambió a estado: %s", r.ID, r.Status), at)
}

func TestimonialCreatedActivity(t *Testimonial, at time.Time) ActivityLog {
	return NewActivityLog(t.UserID, ActionTestimonialCreated,
		fmt.Sprintf("Testimonio con calificación %d/5", t.Rating), at)
}

func TestimonialApprovedActivity(actorID string, t *Testimonial, at time.Time) ActivityLog {
	return NewActivityLog(actorID, ActionTestimonialApproved, fmt.Sprintf("Testimonio #%s", t.ID), at)
}
