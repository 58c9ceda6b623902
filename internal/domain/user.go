package domain

import "time"

// UserCredential is the slice of a user record the auth core needs.
// The record is owned by the user-management system; this service only reads it.
type UserCredential struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Phone        string    `json:"phone" dynamodbav:"phone"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Enable       bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}
