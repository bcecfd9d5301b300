// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered account.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Name      string    `gorm:"not null" bson:"name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Password  string    `gorm:"not null" bson:"password" json:"-"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	Age       int       `bson:"age,omitempty" json:"age,omitempty"`
	CreatedAt time.Time `bson:"date" json:"date"`
}

// UserSummary is the public subset of a user attached to profiles.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Summary returns the public subset of u.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
