// Package repository contains the data access layer. This file defines
// error values that are reused across multiple repositories. These
// sentinel values allow higher layers such as handlers to distinguish
// between failure scenarios without inspecting driver errors
// themselves: conflicts map to HTTP 409, the per-entity not-found
// sentinels to HTTP 404.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state that is not a simple uniqueness violation, such as
// deleting a breed that still has flocks referencing it. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// MySQL error numbers surfaced through the driver. The repositories
// pre-check uniqueness and references before writing, but a concurrent
// writer can still win the race; these checks catch the violation
// coming back from the store so it is translated instead of leaked.
//
// 1062: duplicate entry for a unique key.
// 1451: row is referenced by a foreign key (cannot delete parent).
// 1452: foreign key target missing (cannot add child).
func isDuplicateKey(err error) bool     { return isMySQLErr(err, 1062) }
func isRowReferenced(err error) bool    { return isMySQLErr(err, 1451) }
func isMissingReference(err error) bool { return isMySQLErr(err, 1452) }

// isMySQLErr matches on the driver's typed error number rather than
// the message text, so an error that merely mentions a number in its
// payload never trips the translation.
func isMySQLErr(err error, code uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == code
}
