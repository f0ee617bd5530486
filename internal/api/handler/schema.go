package handler

import (
	"time"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// listResponse is the envelope shared by every list endpoint.
type listResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Users ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name           *string `json:"name"            validate:"omitempty,min=1"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
	Password       *string `json:"password"        validate:"omitempty,min=6"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type sessionResponse struct {
	OK   bool         `json:"ok"`
	User *domain.User `json:"user"`
}

// --- Catalogue ---

type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Popular     bool    `json:"popular"`
}

type coordinatesRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type locationRequest struct {
	Name        string             `json:"name"        validate:"required"`
	Address     string             `json:"address"     validate:"required"`
	Coordinates coordinatesRequest `json:"coordinates"`
	Phone       string             `json:"phone"`
	Hours       string             `json:"hours"`
}

// --- Orders ---

type orderItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity"  validate:"gte=1"`
	Price     float64 `json:"price"     validate:"gt=0"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total *float64           `json:"total" validate:"omitempty,gt=0"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending delivered cancelled"`
}

type orderItemResponse struct {
	ProductID string          `json:"productId"`
	Product   *domain.Product `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	User      *domain.UserSummary `json:"user,omitempty"`
	Items     []orderItemResponse `json:"items"`
	Total     float64             `json:"total"`
	Status    domain.OrderStatus  `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// --- Payments ---

type createPaymentRequest struct {
	OrderID string  `json:"orderId" validate:"required"`
	Amount  float64 `json:"amount"  validate:"gt=0"`
	Method  string  `json:"method"  validate:"required,oneof=cash card yape plin"`
}

type paymentStatusRequest struct {
	Status        string `json:"status"        validate:"required,oneof=pending completed failed"`
	TransactionID string `json:"transactionId"`
}

type orderRefResponse struct {
	ID     string             `json:"id"`
	Total  float64            `json:"total"`
	Status domain.OrderStatus `json:"status"`
}

type paymentResponse struct {
	*domain.Payment
	Order *orderRefResponse   `json:"order,omitempty"`
	User  *domain.UserSummary `json:"user,omitempty"`
}

// --- Reservations ---

type createReservationRequest struct {
	Date   string `json:"date"   validate:"required"`
	Time   string `json:"time"   validate:"required,hhmm"`
	People int    `json:"people" validate:"gte=1"`
	Notes  string `json:"notes"  validate:"max=500"`
}

type reservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

type reservationResponse struct {
	*domain.Reservation
	User *domain.UserSummary `json:"user,omitempty"`
}

// --- Testimonials ---

type createTestimonialRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
	Rating  int    `json:"rating"  validate:"gte=1,lte=5"`
}

type testimonialResponse struct {
	*domain.Testimonial
	User *domain.UserSummary `json:"user,omitempty"`
}

// --- Notifications ---

type createNotificationRequest struct {
	UserID  string `json:"userId"  validate:"required"`
	Type    string `json:"type"    validate:"required"`
	Message string `json:"message" validate:"required"`
}

// --- Activity logs ---

type activityLogResponse struct {
	*domain.ActivityLog
	User *domain.UserSummary `json:"user,omitempty"`
}
