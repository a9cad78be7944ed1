package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendee is one conference registration, stored in the "users" collection.
// Email and NIC are unique by index. CreatedAt is a client-set RFC3339 string;
// the registration endpoint fills it at write time.
type Attendee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	University string             `bson:"university" json:"university"`
	NIC        string             `bson:"nic" json:"nic"`
	Attend     string             `bson:"attend" json:"attend"`
	CreatedAt  string             `bson:"createdAt" json:"createdAt"`
}

// Payment status values for orders.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

// NoImage is stored when an order was submitted without a receipt URL.
const NoImage = "No Image"

// Order is one merchandise pre-order, stored in the "orders" collection.
// NIC lives in the "id" field; that is what the front end sends and what
// existing order documents already use.
// CreatedAt is server-assigned at insert; client timestamps are ignored.
type Order struct {
	DocID         primitive.ObjectID `bson:"_id,omitempty" json:"docId,omitempty"`
	Name          string             `bson:"name" json:"name"`
	PhoneNumber   string             `bson:"phoneNumber" json:"phoneNumber"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	NIC           string             `bson:"id,omitempty" json:"id,omitempty"`
	ClothType     string             `bson:"clothType" json:"clothType"`
	Amount        int                `bson:"amount" json:"amount"`
	Address       string             `bson:"address" json:"address"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	ImageURL      string             `bson:"imageUrl" json:"imageUrl"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
