// Package customer looks up and registers customers by phone number.
package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Repository interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// FindByPhone reports whether a customer with the phone exists. A miss is not an error.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*domain.Customer, bool, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, false, err
	}

	c, err := s.repo.GetCustomerByPhone(ctx, normalized)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find customer by phone: %w", err)
	}
	return c, true, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetCustomerByID(ctx, id)
}

// Register creates a customer. A phone already on file returns domain.ErrConflict.
func (s *Service) Register(ctx context.Context, in domain.NewCustomer) (*domain.Customer, error) {
	c, err := validate(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.log.InfoContext(ctx, "duplicate customer registration", "phone", c.Phone)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "customer registered", "customer_id", c.ID, "is_member", c.IsMember)
	return c, nil
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizePhone strips every non-digit and requires exactly ten digits.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: phone must have exactly 10 digits", domain.ErrValidation)
	}
	return digits, nil
}

func validate(in domain.NewCustomer) (*domain.Customer, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", domain.ErrValidation)
	}

	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	if email != "" && !ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}

	return &domain.Customer{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     phone,
		Email:     email,
		IsMember:  in.IsMember,
	}, nil
}
