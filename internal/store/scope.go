// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all blogsys entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Public query methods bake the status='normal' predicate into their base
// SQL; derived queries only ever AND further predicates onto it.
// Administrative post queries take a Scope so per-owner isolation is
// applied where the query is constructed, not after the fact.
package store

import (
	"strconv"

	"github.com/google/uuid"
)

// Scope identifies the acting owner for administrative queries. A
// privileged scope sees every row; any other scope is intersected with
// owner_id at query-construction time for every list, fetch, update and
// delete entry point.
type Scope struct {
	OwnerID    uuid.UUID
	Privileged bool
}

// ownerClause returns an extra WHERE fragment enforcing ownership for
// non-privileged scopes. argn is the positional parameter index the owner
// id will occupy; the caller appends Scope.OwnerID to its args when the
// fragment is non-empty.
func (sc Scope) ownerClause(column string, argn int) string {
	if sc.Privileged {
		return ""
	}
	return " AND " + column + " = $" + strconv.Itoa(argn)
}
