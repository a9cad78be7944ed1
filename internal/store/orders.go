package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"novaition/internal/model"
)

// Orders persists merchandise pre-orders in the "orders" collection.
type Orders struct {
	col *mongo.Collection
}

// NewOrders creates the order store.
func NewOrders(m *Mongo) *Orders {
	return &Orders{col: m.DB.Collection(ordersCollection)}
}

// EmailExists reports whether any order has the exact email.
func (s *Orders) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.M{"email": email})
}

// NICExists reports whether any order has the exact NIC ("id" field).
func (s *Orders) NICExists(ctx context.Context, nic string) (bool, error) {
	return s.exists(ctx, bson.M{"id": nic})
}

func (s *Orders) exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.col.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert writes a new order document and returns its document ID.
func (s *Orders) Insert(ctx context.Context, o model.Order) (string, error) {
	res, err := s.col.InsertOne(ctx, o)
	if err != nil {
		return "", dupErr(err, idxOrderEmail, idxOrderNIC)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("store: unexpected inserted id type")
	}
	return oid.Hex(), nil
}
