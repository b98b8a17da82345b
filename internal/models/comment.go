// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a visitor comment. Target is the path of the content item it
// was posted against — a loose back-reference matched by value equality,
// not a foreign key, so comments survive whatever happens to the content.
type Comment struct {
	ID        uuid.UUID        `json:"id"`
	Target    string           `json:"target"`
	Nickname  string           `json:"nickname"`
	Email     string           `json:"email"`
	Website   string           `json:"website"`
	Content   string           `json:"content"`
	Status    VisibilityStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
