package models

import "time"

type Client struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          *string   `json:"bio"`
	FunFact      *string   `json:"fun_fact"`
	MobileNumber *string   `json:"mobile_number"`
	IDNumber     *string   `json:"id_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientProfilePatch carries a partial profile update. Nil fields are left
// untouched.
type ClientProfilePatch struct {
	Bio          *string `json:"bio"`
	FunFact      *string `json:"fun_fact"`
	MobileNumber *string `json:"mobile_number"`
	IDNumber     *string `json:"id_number"`
}
