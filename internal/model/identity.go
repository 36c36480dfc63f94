package model

import "time"

// Role is the authorization role of an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated subject of a session.
type Identity struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	IsAdmin        bool   `json:"isAdmin"`
	WhatsappNumber string `json:"whatsappNumber"`
}

// Session is the persisted state container of one login.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned on login and signup.
type SessionResponse struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}
