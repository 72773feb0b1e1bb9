package models

import (
	"fmt"
	"time"
)

// EventType enumerates the kinds of behavioral events, in funnel order.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventProductView  EventType = "product_view"
	EventAddToCart    EventType = "add_to_cart"
	EventPurchase     EventType = "purchase"
	EventSessionEnd   EventType = "session_end"
)

// EventTypes lists all event types in funnel order.
var EventTypes = []EventType{
	EventSessionStart,
	EventProductView,
	EventAddToCart,
	EventPurchase,
	EventSessionEnd,
}

// Rank returns the position of the event type in the funnel order,
// or -1 for an unknown type.
func (t EventType) Rank() int {
	for i, et := range EventTypes {
		if t == et {
			return i
		}
	}
	return -1
}

// UserSegment enumerates the generator-assigned customer segments.
type UserSegment string

const (
	SegmentHighValue  UserSegment = "High Value"
	SegmentRegular    UserSegment = "Regular"
	SegmentOccasional UserSegment = "Occasional"
	SegmentNew        UserSegment = "New"
)

// Product is one catalog item. Immutable after generation; events reference
// products by ID and never own them.
type Product struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"product_name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}

// User is one generated customer. The demographic fields are opaque metadata
// for downstream analytics; only Segment drives simulated behavior.
type User struct {
	UserID           string      `json:"user_id"`
	RegistrationDate time.Time   `json:"registration_date"`
	Age              int         `json:"age"`
	Gender           string      `json:"gender"`
	Location         string      `json:"location"`
	Segment          UserSegment `json:"segment"`
}

// Event is one row of the behavioral event log. ProductID, Category, Price
// and Quantity are populated only for product-bearing event types
// (product_view carries no quantity).
type Event struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Type      EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProductID string    `json:"product_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
}

// HasProduct reports whether the event type carries a product reference.
func (e Event) HasProduct() bool {
	switch e.Type {
	case EventProductView, EventAddToCart, EventPurchase:
		return true
	}
	return false
}

// Fixed-width, type-prefixed ordinal ID formats. Ordinals are 1-based and
// assigned monotonically in generation order.

// ProductID formats the nth product identifier, e.g. P0001.
func ProductID(n int) string { return fmt.Sprintf("P%04d", n) }

// UserID formats the nth user identifier, e.g. U000001.
func UserID(n int) string { return fmt.Sprintf("U%06d", n) }

// EventID formats the nth event identifier, e.g. E00000001.
func EventID(n int) string { return fmt.Sprintf("E%08d", n) }

// SessionID formats the nth session identifier, e.g. S00000001.
func SessionID(n int) string { return fmt.Sprintf("S%08d", n) }
