package handler

import (
	"time"

	"github.com/teachreach/marketplace/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the flat identity + token payload returned by register/login.
type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func newAuthResponse(u *domain.User, token string) authResponse {
	return authResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role, Token: token}
}

// --- Orders ---

type orderItemRequest struct {
	Title   string  `json:"title"   validate:"required"`
	Qty     int     `json:"qty"     validate:"gte=0"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"   validate:"gte=0"`
	Service string  `json:"service"`
}

type createOrderRequest struct {
	OrderItems []orderItemRequest `json:"orderItems" validate:"dive"`
	TotalPrice float64            `json:"totalPrice" validate:"gte=0"`
}

type updateStatusRequest struct {
	Status       string `json:"status"       validate:"required"`
	Deliverables string `json:"deliverables"`
}

func toOrderItems(reqs []orderItemRequest) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(reqs))
	for _, r := range reqs {
		qty := r.Qty
		if qty == 0 {
			qty = 1
		}
		items = append(items, domain.OrderItem{
			Title:     r.Title,
			Qty:       qty,
			Image:     r.Image,
			Price:     r.Price,
			ServiceID: r.Service,
		})
	}
	return items
}

// --- Reviews ---

type createReviewRequest struct {
	Rating    int    `json:"rating"    validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment"   validate:"required"`
	ServiceID string `json:"serviceId"`
	OrderID   string `json:"orderId"`
}

// --- Users ---

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type identityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func newIdentityResponse(u *domain.User) identityResponse {
	return identityResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role, CreatedAt: u.CreatedAt}
}

type supportResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
