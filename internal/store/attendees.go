package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"novaition/internal/model"
)

// Attendees persists registration records in the "users" collection.
type Attendees struct {
	col *mongo.Collection
}

// NewAttendees creates the attendee store.
func NewAttendees(m *Mongo) *Attendees {
	return &Attendees{col: m.DB.Collection(usersCollection)}
}

// EmailExists reports whether any attendee has the exact email.
func (s *Attendees) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.M{"email": email})
}

// NICExists reports whether any attendee has the exact NIC.
func (s *Attendees) NICExists(ctx context.Context, nic string) (bool, error) {
	return s.exists(ctx, bson.M{"nic": nic})
}

func (s *Attendees) exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.col.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert writes a new attendee document and returns its document ID. A
// unique-index violation comes back as ErrDuplicateEmail or ErrDuplicateNIC.
func (s *Attendees) Insert(ctx context.Context, a model.Attendee) (string, error) {
	res, err := s.col.InsertOne(ctx, a)
	if err != nil {
		return "", dupErr(err, idxUserEmail, idxUserNIC)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("store: unexpected inserted id type")
	}
	return oid.Hex(), nil
}
