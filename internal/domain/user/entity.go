// internal/domain/user/entity.go
package user

import (
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/novastore/internal/domain/order"
)

// User represents the signed-in shopper. Orders is kept for shape
// compatibility; order history lives in the session, not here.
type User struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone,omitempty"`
	Address *order.Address `json:"address,omitempty"`
	Orders  []order.Order  `json:"orders"`
}

// New creates a user with a fresh identifier and no orders. A blank name
// falls back to the part of email before the "@".
func New(email, name string) *User {
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return &User{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Orders: []order.Order{},
	}
}

// Update is a partial profile change; nil fields are left untouched
type Update struct {
	Name    *string        `json:"name,omitempty"`
	Email   *string        `json:"email,omitempty"`
	Phone   *string        `json:"phone,omitempty"`
	Address *order.Address `json:"address,omitempty"`
}

// Apply merges the non-nil fields of upd into u
func (u *User) Apply(upd Update) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Address != nil {
		addr := *upd.Address
		u.Address = &addr
	}
}

// Clone returns a deep copy safe to hand out of the store
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Address != nil {
		addr := *u.Address
		out.Address = &addr
	}
	out.Orders = append([]order.Order{}, u.Orders...)
	return &out
}

// GetDisplayName returns display name (name or email)
func (u *User) GetDisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}
