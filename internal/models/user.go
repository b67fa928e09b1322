package models

import "time"

// Account is a named balance holder. The HTTP API exposes it as a "user".
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountFilter narrows account listings. Empty fields are ignored.
type AccountFilter struct {
	Name       string
	NamePrefix string
}
