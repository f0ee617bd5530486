package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User models an account, either registered with a password or created by federated login.
type User struct {
	ID             string     `json:"id" bson:"_id"`
	Name           string     `json:"name" bson:"name"`
	Email          string     `json:"email" bson:"email"`
	PasswordHash   string     `json:"-" bson:"password,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Phone          string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Role           Role       `json:"role" bson:"role"`
	Status         UserStatus `json:"status" bson:"status"`
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsActive() bool { return u.Status == UserActive }

func (u *User) HasPassword() bool { return u.PasswordHash != "" }

// UserSummary is the owner projection attached to listings.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
