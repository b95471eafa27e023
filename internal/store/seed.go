package store

import (
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
)

// SeedCustomers mirrors the customer seed migration.
func SeedCustomers() []*domain.Customer {
	now := time.Now().UTC()
	return []*domain.Customer{
		{
			ID:        uuid.MustParse("694865db-b395-4f02-9af0-ee050c17b52e"),
			FirstName: "Anita",
			LastName:  "Kumar",
			Phone:     "9876543210",
			Email:     "anita.kumar@example.com",
			IsMember:  true,
			CreatedAt: now,
		},
		{
			ID:        uuid.MustParse("20706986-551e-4abe-9fa5-3c7f8203ad07"),
			FirstName: "Rajesh",
			LastName:  "Sharma",
			Phone:     "9876543211",
			Email:     "rajesh.sharma@example.com",
			IsMember:  true,
			CreatedAt: now,
		},
		{
			ID:        uuid.MustParse("4fc16ae3-b328-45e0-a579-9f2fa11fffcc"),
			FirstName: "Priya",
			LastName:  "Patel",
			Phone:     "9876543212",
			Email:     "priya.patel@example.com",
			IsMember:  false,
			CreatedAt: now,
		},
	}
}
