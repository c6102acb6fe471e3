package domain

import "time"

type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item is exclusively owned by one Order; it has no life outside of it.
type Item struct {
	ID        int64 `json:"id,omitempty"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type Order struct {
	ID           int64     `json:"id"`
	Notes        string    `json:"notes"`
	Status       Status    `json:"orderStatus"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ContactPhone string    `json:"contactPhone"`
	UserID       int64     `json:"userId"`
	Items        []Item    `json:"orderItems"`
}

// Patch carries the mutable part of an order. A nil Items keeps the current items.
type Patch struct {
	Notes        string `json:"notes"`
	Status       Status `json:"orderStatus"`
	ContactPhone string `json:"contactPhone"`
	Items        []Item `json:"orderItems,omitempty"`
}

// Apply returns the replacement for o: identity, owner and creation time are kept,
// everything the patch carries is taken from it and UpdatedAt is set to updatedAt.
func (o Order) Apply(p Patch, updatedAt time.Time) Order {
	next := Order{
		ID:           o.ID,
		Notes:        p.Notes,
		Status:       p.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    updatedAt,
		ContactPhone: p.ContactPhone,
		UserID:       o.UserID,
		Items:        o.Items,
	}
	if p.Items != nil {
		next.Items = make([]Item, len(p.Items))
		for i, it := range p.Items {
			next.Items[i] = Item{ProductID: it.ProductID, Quantity: it.Quantity}
		}
	}
	return next
}

// ProductIDs returns the distinct product ids referenced by the order, in first-seen order.
func (o Order) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Items))
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

// RemoteUser is the user service projection. It is only used to prove the user exists.
type RemoteUser struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"emailConfirmed"`
	Role           string `json:"role"`
}

// RemoteProduct is the product catalog projection.
type RemoteProduct struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"inStock"`
	CategoryID  int64   `json:"categoryId"`
}
