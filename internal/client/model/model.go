// Package model holds the client-side view of marketplace data: the current
// identity, the mirrored collections and the error taxonomy surfaced to
// callers of the orchestrator.
package model

import (
	"fmt"
	"net/url"
	"time"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Identity is a registered account as the client knows it. Credential is the
// bearer token; it is only present on the current identity.
type Identity struct {
	ID                      string `json:"id" validate:"required"`
	Name                    string `json:"name" validate:"required"`
	Email                   string `json:"email" validate:"required"`
	Phone                   string `json:"phone,omitempty"`
	Avatar                  string `json:"avatar,omitempty"`
	Role                    string `json:"role" validate:"required,oneof=client admin"`
	Credential              string `json:"credential,omitempty"`
	IsVerified              bool   `json:"isVerified,omitempty"`
	PendingVerificationCode string `json:"pendingVerificationCode,omitempty"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// AvatarFor returns the placeholder avatar used when an account has none.
func AvatarFor(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/100/100", url.PathEscape(name))
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderActive, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           string      `json:"id"`
	ServiceRef   string      `json:"serviceRef"`
	Title        string      `json:"title"`
	Image        string      `json:"image"`
	Price        float64     `json:"price"`
	Status       OrderStatus `json:"status"`
	CreatedDate  time.Time   `json:"createdDate"`
	OwnerName    string      `json:"ownerName"`
	Deliverables string      `json:"deliverables,omitempty"`
}

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	Attachment string    `json:"attachment,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"isRead"`
}

type Review struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedDate  time.Time `json:"createdDate"`
	// Pending marks an optimistic entry not yet confirmed by the server.
	// Pending entries are never persisted.
	Pending bool `json:"-"`
}

type Service struct {
	ID           string  `json:"id"`
	Title        string  `json:"title" validate:"required"`
	Image        string  `json:"image"`
	Price        float64 `json:"price" validate:"gte=0"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	DeliveryDays int     `json:"deliveryDays" validate:"gte=0"`
}

type SiteConfig struct {
	SiteName string `json:"siteName"`
}

// Verification is an outstanding email verification. Identity is the
// profile snapshot, without credential; the session store keeps the
// credential until the code is confirmed.
type Verification struct {
	Email    string   `json:"email"`
	Code     string   `json:"code"`
	Identity Identity `json:"identity"`
}
