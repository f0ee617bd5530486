package handler

import (
	"time"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateOrderInput(req createOrderRequest, idempotencyKey string) ports.CreateOrderInput {
	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return ports.CreateOrderInput{Items: items, Total: req.Total, IdempotencyKey: idempotencyKey}
}

func toProductInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Popular:     req.Popular,
	}
}

func toLocationInput(req locationRequest) ports.LocationInput {
	return ports.LocationInput{
		Name:        req.Name,
		Address:     req.Address,
		Coordinates: domain.Coordinates{Lat: req.Coordinates.Lat, Lng: req.Coordinates.Lng},
		Phone:       req.Phone,
		Hours:       req.Hours,
	}
}

// toReservationInput accepts a plain date or a full RFC 3339 timestamp.
func toReservationInput(req createReservationRequest) (ports.CreateReservationInput, error) {
	date, err := time.Parse(domain.ReservationDateLayout, req.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.Date); err != nil {
			return ports.CreateReservationInput{}, domain.Invalidf("date must be YYYY-MM-DD")
		}
	}
	return ports.CreateReservationInput{Date: date, Time: req.Time, People: req.People, Notes: req.Notes}, nil
}

// --- Service result → HTTP response ---

func toPagination[T any](p *ports.PageResult[T]) paginationResponse {
	return paginationResponse{Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
}

// toList maps a page of service results into the list envelope.
func toList[T, R any](p *ports.PageResult[T], mapFn func(T) R) listResponse[R] {
	data := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		data = append(data, mapFn(item))
	}
	return listResponse[R]{Data: data, Pagination: toPagination(p)}
}

func identity[T any](v T) T { return v }

func toOrderResponse(v ports.OrderView) orderResponse {
	items := make([]orderItemResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, orderItemResponse{ProductID: l.ProductID, Product: l.Product, Quantity: l.Quantity, Price: l.Price})
	}
	return orderResponse{
		ID:        v.Order.ID,
		UserID:    v.Order.UserID,
		User:      v.Owner,
		Items:     items,
		Total:     v.Order.Total,
		Status:    v.Order.Status,
		CreatedAt: v.Order.CreatedAt,
		UpdatedAt: v.Order.UpdatedAt,
	}
}

// toPlainOrderResponse renders an order whose products were not resolved.
func toPlainOrderResponse(o *domain.Order) orderResponse {
	lines := make([]ports.OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, ports.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return toOrderResponse(ports.OrderView{Order: o, Lines: lines})
}

func toPaymentResponse(v ports.PaymentView) paymentResponse {
	resp := paymentResponse{Payment: v.Payment, User: v.Owner}
	if v.Order != nil {
		resp.Order = &orderRefResponse{ID: v.Order.ID, Total: v.Order.Total, Status: v.Order.Status}
	}
	return resp
}

func toReservationResponse(v ports.ReservationView) reservationResponse {
	return reservationResponse{Reservation: v.Reservation, User: v.Owner}
}

func toTestimonialResponse(v ports.TestimonialView) testimonialResponse {
	return testimonialResponse{Testimonial: v.Testimonial, User: v.Owner}
}

func toActivityLogResponse(v ports.ActivityLogView) activityLogResponse {
	return activityLogResponse{ActivityLog: v.Entry, User: v.Owner}
}
