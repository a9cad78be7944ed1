package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection  = "users"
	ordersCollection = "orders"
)

// Duplicate-key sentinels returned by the insert paths. The unique indexes
// back the read-then-check duplicate lookups, so two concurrent submissions
// with the same email or NIC cannot both land. Both field sentinels wrap
// ErrDuplicate.
var (
	ErrDuplicate      = errors.New("store: duplicate document")
	ErrDuplicateEmail = fmt.Errorf("%w: email", ErrDuplicate)
	ErrDuplicateNIC   = fmt.Errorf("%w: nic", ErrDuplicate)
)

// Mongo wraps the document-store connection.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects to MongoDB and pings the primary.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, err
	}
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// Healthy verifies connectivity.
func (m *Mongo) Healthy(ctx context.Context) bool {
	if m == nil || m.Client == nil {
		return false
	}
	return m.Client.Ping(ctx, readpref.Primary()) == nil
}

// EnsureIndexes creates the unique indexes that enforce one attendee per
// email/NIC and one order per email/NIC. The order indexes are sparse since
// email and NIC are optional on orders; both fields omit empty values so an
// absent field never reaches the index.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	users := m.DB.Collection(usersCollection)
	orders := m.DB.Collection(ordersCollection)

	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(idxUserEmail).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "nic", Value: 1}},
			Options: options.Index().SetName(idxUserNIC).SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(idxOrderEmail).SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName(idxOrderNIC).SetUnique(true).SetSparse(true),
		},
	})
	return err
}

const (
	idxUserEmail  = "uniq_user_email"
	idxUserNIC    = "uniq_user_nic"
	idxOrderEmail = "uniq_order_email"
	idxOrderNIC   = "uniq_order_nic"
)

// dupErr maps a Mongo duplicate-key error to the sentinel for the violated
// index, or passes the error through unchanged. A duplicate-key error naming
// neither index maps to the generic ErrDuplicate.
func dupErr(err error, emailIdx, nicIdx string) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, nicIdx) {
		return ErrDuplicateNIC
	}
	if strings.Contains(msg, emailIdx) {
		return ErrDuplicateEmail
	}
	return ErrDuplicate
}
