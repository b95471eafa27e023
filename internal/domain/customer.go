package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsMember  bool      `json:"is_member"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// NewCustomer holds the fields accepted when registering a customer.
type NewCustomer struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	IsMember  bool
}

// CustomerTier selects the discount applied at checkout.
type CustomerTier int

const (
	TierNone CustomerTier = iota
	TierExisting
	TierMember
)

func (t CustomerTier) String() string {
	switch t {
	case TierExisting:
		return "existing"
	case TierMember:
		return "member"
	default:
		return "none"
	}
}

// TierFor resolves the tier of a customer fetched at checkout time; nil means walk-in.
func TierFor(c *Customer) CustomerTier {
	if c == nil {
		return TierNone
	}
	if c.IsMember {
		return TierMember
	}
	return TierExisting
}
