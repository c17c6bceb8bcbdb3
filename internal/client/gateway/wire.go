package gateway

import (
	"strings"
	"time"

	"github.com/teachreach/marketplace/internal/client/model"
)

// docID accepts both "id" and Mongo-style "_id" keys.
type docID struct {
	ID      string `json:"id"  validate:"required_without=MongoID"`
	MongoID string `json:"_id" validate:"required_without=ID"`
}

func (d docID) value() string {
	if d.ID != "" {
		return d.ID
	}
	return d.MongoID
}

type wireAuth struct {
	docID
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role"  validate:"required"`
	Token string `json:"token" validate:"required"`
}

func (w wireAuth) identity() model.Identity {
	return model.Identity{
		ID:         w.value(),
		Name:       w.Name,
		Email:      w.Email,
		Phone:      w.Phone,
		Avatar:     model.AvatarFor(w.Name),
		Role:       w.Role,
		Credential: w.Token,
		IsVerified: true,
	}
}

type wireUser struct {
	docID
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role"  validate:"required"`
}

func (w wireUser) identity() model.Identity {
	return model.Identity{
		ID:         w.value(),
		Name:       w.Name,
		Email:      w.Email,
		Phone:      w.Phone,
		Avatar:     model.AvatarFor(w.Name),
		Role:       w.Role,
		IsVerified: true,
	}
}

type wireOrderItem struct {
	Title   string  `json:"title"`
	Qty     int     `json:"qty"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Service string  `json:"service"`
}

type wireOrder struct {
	docID
	User struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	OrderItems   []wireOrderItem `json:"orderItems"`
	TotalPrice   float64         `json:"totalPrice"`
	Status       string          `json:"status"`
	Deliverables string          `json:"deliverables"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (w wireOrder) order() model.Order {
	o := model.Order{
		ID:           w.value(),
		Title:        "Service",
		Price:        w.TotalPrice,
		Status:       model.OrderStatus(strings.ToLower(w.Status)),
		CreatedDate:  w.CreatedAt,
		OwnerName:    w.User.Name,
		Deliverables: w.Deliverables,
	}
	if !o.Status.Valid() {
		o.Status = model.OrderActive
	}
	if len(w.OrderItems) > 0 {
		first := w.OrderItems[0]
		o.ServiceRef = first.Service
		if first.Title != "" {
			o.Title = first.Title
		}
		o.Image = first.Image
	}
	return o
}

type wireReview struct {
	docID
	User      string    `json:"user"`
	Name      string    `json:"name"    validate:"required"`
	Rating    int       `json:"rating"  validate:"gte=1,lte=5"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireReview) review() model.Review {
	return model.Review{
		ID:           w.value(),
		AuthorID:     w.User,
		AuthorName:   w.Name,
		AuthorAvatar: model.AvatarFor(w.Name),
		Rating:       w.Rating,
		Comment:      w.Comment,
		CreatedDate:  w.CreatedAt,
	}
}

type wireRecipient struct {
	docID
	Name string `json:"name"`
}

type wireMessage struct {
	Message string `json:"message"`
}
