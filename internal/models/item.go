package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item represents a single entry on a shopping list
type Item struct {
	ID             string    `json:"id"`
	ListID         string    `json:"listId"`
	Name           string    `json:"name"`
	EstimatedPrice *float64  `json:"estimatedPrice,omitempty"`
	Quantity       int       `json:"quantity"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewItem creates a new item for a list. Quantity defaults to 1 when
// zero or negative.
func NewItem(listID, name string, estimatedPrice *float64, quantity int) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrItemNameRequired
	}
	if quantity <= 0 {
		quantity = 1
	}

	now := time.Now().UTC()
	return &Item{
		ID:             uuid.New().String(),
		ListID:         listID,
		Name:           strings.TrimSpace(name),
		EstimatedPrice: estimatedPrice,
		Quantity:       quantity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Item errors
type ItemError struct {
	Message string
}

func (e ItemError) Error() string {
	return e.Message
}

var (
	ErrItemNotFound     = ItemError{"item not found"}
	ErrItemNameRequired = ItemError{"item name is required"}
)
