package models

import "github.com/google/uuid"

// ensureID assigns a random id when the caller left it zero. Ids are minted in
// Go so sqlite-backed tests behave like Postgres.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
