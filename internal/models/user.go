package models

import "jobly/internal/query"

// User mirrors the users table. Password holds the hash and, like IsAdmin,
// is never serialized.
type User struct {
	Username  string  `db:"username" json:"username"`
	Password  string  `db:"password" json:"-"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Email     string  `db:"email" json:"email"`
	PhotoURL  *string `db:"photo_url" json:"photo_url"`
	IsAdmin   bool    `db:"is_admin" json:"-"`
}

type UserSummary struct {
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}

// NewUser is a registration payload. Password is plaintext until the
// service layer hashes it.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	PhotoURL  *string
}

type UserUpdate struct {
	Password  query.Optional[string]
	FirstName query.Optional[string]
	LastName  query.Optional[string]
	Email     query.Optional[string]
	PhotoURL  query.Optional[*string]
}

func (u UserUpdate) Fields() []query.Field {
	var f fieldList
	addField(&f, "password", u.Password)
	addField(&f, "first_name", u.FirstName)
	addField(&f, "last_name", u.LastName)
	addField(&f, "email", u.Email)
	addField(&f, "photo_url", u.PhotoURL)
	return f
}
