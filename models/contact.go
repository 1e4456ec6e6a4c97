package models

import "time"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Subject   string    `bson:"subject" json:"subject" validate:"required,min=3,max=200"`
	Message   string    `bson:"message" json:"message" validate:"required,min=10,max=5000"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
