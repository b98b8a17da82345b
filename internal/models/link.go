package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is a friend-site link shown on the links page. Links have no
// visibility logic beyond existence.
type Link struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Href      string    `json:"href"`
	Weight    int       `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}
