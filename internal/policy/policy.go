// Package policy holds the pure access predicates shared by the service and
// serialization layers. Enforcement happens in the callers; nothing here has
// side effects or touches storage.
package policy

import "github.com/google/uuid"

// Operation identifies the kind of request being served, for predicates whose
// answer depends on how an entity was reached rather than who is asking.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
	OpJoin   Operation = "join"
)

// CanModifyTeam reports whether the actor may mutate or delete a team.
// Only the owner may.
func CanModifyTeam(actorID, ownerID uuid.UUID) bool {
	return actorID == ownerID
}

// CanModifyNote reports whether the actor may mutate or delete a note.
// Only the note's owner may.
func CanModifyNote(actorID, ownerID uuid.UUID) bool {
	return actorID == ownerID
}

// CanViewTeamCode reports whether the join code may appear in a response.
// The code is shown only on the response to the request that created the
// team and suppressed on every other read.
func CanViewTeamCode(op Operation) bool {
	return op == OpCreate
}
