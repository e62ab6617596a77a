package models

import "time"

// Project groups tasks, statuses and team members
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   *int      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Project) GetID() int {
	return p.ID
}

// User is a person who can own projects, be assigned tasks and receive notifications
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) GetID() int {
	return u.ID
}
