// Package registration implements attendee sign-up: presence validation,
// duplicate email/NIC checks, the persisted write and the best-effort
// confirmation email.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"novaition/internal/model"
	"novaition/internal/store"
)

// Error kinds surfaced to the handler layer. The messages are the exact
// strings the site shows, so they double as the response payload.
var (
	ErrMissingFields   = errors.New("All fields (Name, Email, University, NIC) are required.")
	ErrEmailRegistered = errors.New("This email is already registered.")
	ErrNICRegistered   = errors.New("This NIC is already registered.")
)

// Store is the attendee persistence the service needs.
type Store interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	NICExists(ctx context.Context, nic string) (bool, error)
	Insert(ctx context.Context, a model.Attendee) (string, error)
}

// Mailer sends the registration confirmation.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, name, university string) error
}

// Service coordinates attendee registration.
type Service struct {
	store  Store
	mailer Mailer // nil when email is not configured
	log    zerolog.Logger
}

// NewService creates a registration service. mailer may be nil.
func NewService(s Store, m Mailer, log zerolog.Logger) *Service {
	return &Service{store: s, mailer: m, log: log}
}

// Register validates and persists a new attendee, then attempts the
// confirmation email. Persistence is authoritative: a failed send is logged
// and the registration still succeeds. Returns the new document ID.
func (s *Service) Register(ctx context.Context, a model.Attendee) (string, error) {
	if a.Name == "" || a.Email == "" || a.University == "" || a.NIC == "" {
		return "", ErrMissingFields
	}

	if exists, err := s.store.EmailExists(ctx, a.Email); err != nil {
		return "", err
	} else if exists {
		return "", ErrEmailRegistered
	}
	if exists, err := s.store.NICExists(ctx, a.NIC); err != nil {
		return "", err
	} else if exists {
		return "", ErrNICRegistered
	}

	if a.Attend == "" {
		a.Attend = "0"
	}
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	id, err := s.store.Insert(ctx, a)
	if err != nil {
		// The unique indexes catch submissions that raced past the checks.
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			return "", ErrEmailRegistered
		case errors.Is(err, store.ErrDuplicateNIC):
			return "", ErrNICRegistered
		}
		return "", err
	}
	s.log.Info().Str("userId", id).Msg("attendee registered")

	if s.mailer != nil {
		// The record is already persisted; a client hanging up must not
		// cancel the send. The mail client carries its own timeout.
		mailCtx := context.WithoutCancel(ctx)
		if err := s.mailer.SendConfirmation(mailCtx, a.Email, a.Name, a.University); err != nil {
			s.log.Warn().Err(err).Str("email", a.Email).Msg("confirmation email failed")
		}
	}
	return id, nil
}
