package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/teachreach/marketplace/internal/client/model"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OrderLine is one purchased service in a checkout.
type OrderLine struct {
	Title   string  `json:"title"`
	Qty     int     `json:"qty"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Service string  `json:"service"`
}

type CheckoutRequest struct {
	OrderItems []OrderLine `json:"orderItems"`
	TotalPrice float64     `json:"totalPrice"`
}

// OrderReceipt is the server's confirmation of a checkout. Status may be
// empty when the server only echoes the new id.
type OrderReceipt struct {
	ID     string
	Status model.OrderStatus
}

type statusRequest struct {
	Status       string `json:"status"`
	Deliverables string `json:"deliverables,omitempty"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Recipient is the administrator that receives client messages.
type Recipient struct {
	ID   string
	Name string
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.Identity, error) {
	var out wireAuth
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return model.Identity{}, err
	}
	return out.identity(), nil
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (model.Identity, error) {
	var out wireAuth
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return model.Identity{}, err
	}
	return out.identity(), nil
}

// MyOrders calls GET /orders/myorders.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	return c.orders(ctx, "/orders/myorders")
}

// AllOrders calls GET /orders (admin).
func (c *Client) AllOrders(ctx context.Context) ([]model.Order, error) {
	return c.orders(ctx, "/orders")
}

func (c *Client) orders(ctx context.Context, path string) ([]model.Order, error) {
	var out []wireOrder
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(out))
	for _, w := range out {
		orders = append(orders, w.order())
	}
	return orders, nil
}

// CreateOrder calls POST /orders.
func (c *Client) CreateOrder(ctx context.Context, req CheckoutRequest) (OrderReceipt, error) {
	var out struct {
		docID
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return OrderReceipt{}, err
	}
	return OrderReceipt{ID: out.value(), Status: model.OrderStatus(out.Status)}, nil
}

// UpdateOrderStatus calls PUT /orders/:id/status (admin).
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, deliverables string) (model.Order, error) {
	var out wireOrder
	path := "/orders/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, statusRequest{Status: string(status), Deliverables: deliverables}, &out); err != nil {
		return model.Order{}, err
	}
	return out.order(), nil
}

// Reviews calls GET /reviews.
func (c *Client) Reviews(ctx context.Context) ([]model.Review, error) {
	var out []wireReview
	if err := c.do(ctx, http.MethodGet, "/reviews", nil, &out); err != nil {
		return nil, err
	}
	reviews := make([]model.Review, 0, len(out))
	for _, w := range out {
		reviews = append(reviews, w.review())
	}
	return reviews, nil
}

// CreateReview calls POST /reviews.
func (c *Client) CreateReview(ctx context.Context, rating int, comment string) (model.Review, error) {
	var out wireReview
	if err := c.do(ctx, http.MethodPost, "/reviews", reviewRequest{Rating: rating, Comment: comment}, &out); err != nil {
		return model.Review{}, err
	}
	return out.review(), nil
}

// DeleteReview calls DELETE /reviews/:id (admin).
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	var out wireMessage
	return c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, &out)
}

// Users calls GET /admin/users.
func (c *Client) Users(ctx context.Context) ([]model.Identity, error) {
	var out []wireUser
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	users := make([]model.Identity, 0, len(out))
	for _, w := range out {
		users = append(users, w.identity())
	}
	return users, nil
}

// DeleteUser calls DELETE /admin/users/:id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}

// UpdateProfile calls PUT /users/me.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileRequest) (model.Identity, error) {
	var out wireUser
	if err := c.do(ctx, http.MethodPut, "/users/me", req, &out); err != nil {
		return model.Identity{}, err
	}
	return out.identity(), nil
}

// DeleteMe calls DELETE /users/me.
func (c *Client) DeleteMe(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users/me", nil, nil)
}

// SupportRecipient calls GET /users/support.
func (c *Client) SupportRecipient(ctx context.Context) (Recipient, error) {
	var out wireRecipient
	if err := c.do(ctx, http.MethodGet, "/users/support", nil, &out); err != nil {
		return Recipient{}, err
	}
	return Recipient{ID: out.value(), Name: out.Name}, nil
}
