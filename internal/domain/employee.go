package domain

import "time"

type Employee struct {
	ID         string    `json:"id"`
	EmpCode    string    `json:"empCode"`
	FullName   string    `json:"fullName"`
	Nickname   string    `json:"nickname,omitempty"`
	Department string    `json:"department,omitempty"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
