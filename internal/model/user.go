package model

import "time"

// User represents an account record as stored in the `users` table.
// Accounts are created by privileged registration only; self-service
// signup does not exist. The json tags are omitted here because these
// structs are used internally by the repository layer; handlers define
// separate response types where identifiers are serialized as decimal
// strings.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address (lower-cased before storage).
//  PasswordHash – bcrypt hashed password; never serialized.
//  Role         – one of admin, moderator, hatchery_member.
//  Phone        – contact phone number.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password
	Role         string    // users.role
	Phone        string    // users.phone
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
