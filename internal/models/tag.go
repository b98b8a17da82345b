// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels posts; a post can carry any number of tags.
type Tag struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Status    VisibilityStatus `json:"status"`
	OwnerID   uuid.UUID        `json:"owner_id"`
	CreatedAt time.Time        `json:"created_at"`
}
