// Package history implements the branching edit history of a dashboard
// session: a persistent version tree of canonical tree snapshots plus a
// cursor.
//
// This is not a linear undo stack. Undoing and then editing again appends a
// sibling branch; abandoned branches stay navigable for the life of the
// session via Jump. The tree is append-only: snapshots are never deleted or
// mutated after creation.
package history
