package models

import "time"

// Patient is the identity record a booking is attached to.
type Patient struct {
	ID        string    `bson:"id" json:"id"`
	FirstName string    `bson:"first_name" json:"firstName"`
	LastName  string    `bson:"last_name" json:"lastName"`
	Phone     string    `bson:"phone" json:"phone"`
	DOB       string    `bson:"dob" json:"dob"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
