package events

import (
	"context"
	"time"
)

const (
	TopicProducts  = "product_events"
	TopicSuppliers = "supplier_events"
	TopicUsers     = "user_events"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"productID"`
	Name       string    `json:"name,omitempty"`
	SupplierID uint      `json:"supplierID,omitempty"`
	At         time.Time `json:"at"`
}

type SupplierEvent struct {
	Type       string    `json:"type"`
	SupplierID uint      `json:"supplierID"`
	Name       string    `json:"name,omitempty"`
	At         time.Time `json:"at"`
}

type UserEvent struct {
	Type   string    `json:"type"`
	UserID uint      `json:"userID"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	At     time.Time `json:"at"`
}

type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                            { return nil }
