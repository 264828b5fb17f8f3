package models

import "time"

type User struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           string    `json:"role" db:"role"`
	OrganizationID int       `json:"organization_id" db:"organization_id"`
	EmployeeID     *string   `json:"employee_id,omitempty" db:"employee_id"`
	Department     *string   `json:"department,omitempty" db:"department"`
	Position       *string   `json:"position,omitempty" db:"position"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
