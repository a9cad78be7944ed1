// Package order implements merchandise pre-order submission.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"novaition/internal/model"
	"novaition/internal/store"
)

// Error kinds surfaced to the handler layer.
var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrEmailOrdered  = errors.New("This email is already associated with an existing order.")
	ErrNICOrdered    = errors.New("This NIC is already associated with an existing order.")
)

// Store is the order persistence the service needs.
type Store interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	NICExists(ctx context.Context, nic string) (bool, error)
	Insert(ctx context.Context, o model.Order) (string, error)
}

// Service coordinates pre-order submission.
type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates an order service.
func NewService(s Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

// Submit validates and persists one order. The stored createdAt is assigned
// here, server-side; any client-supplied timestamp is discarded to keep the
// collection consistent under clock skew. Returns the new document ID.
func (s *Service) Submit(ctx context.Context, o model.Order) (string, error) {
	if o.Name == "" || o.ClothType == "" || o.Amount <= 0 || o.Address == "" || o.PhoneNumber == "" {
		return "", ErrMissingFields
	}

	if o.ImageURL == "" {
		o.ImageURL = model.NoImage
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = model.PaymentPending
	}
	o.CreatedAt = s.now().UTC()

	id, err := s.store.Insert(ctx, o)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return "", ErrEmailOrdered
		case errors.Is(err, store.ErrDuplicateNIC):
			return "", ErrNICOrdered
		}
		return "", err
	}
	s.log.Info().Str("orderId", id).Str("clothType", o.ClothType).Msg("order saved")
	return id, nil
}
