package entity

import "time"

const AdminAccountID = "admin"

type AdminAccount struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// AdminAuth is the identity carried by a verified session token.
type AdminAuth struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}
