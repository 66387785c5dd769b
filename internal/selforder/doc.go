// Package selforder implements the client side of the shared table-session
// cart: an optimistic mutation layer over the remote cart service plus a
// reconciler that keeps local state eventually consistent with server pushes.
//
// Responsibilities are split three ways:
//
//   - Store: the single client-visible cart value and a transient error
//     message. A passive container; the only shared mutable state.
//   - Executor: applies each user mutation speculatively against the Store,
//     issues the remote call, and restores the pre-mutation snapshot when the
//     call fails. Snapshots are taken per call, at call time; there is no
//     global undo stack, and concurrent calls are deliberately not serialized.
//   - Reconciler: subscribes to session-scoped push events and overwrites the
//     Store wholesale with every cart.updated payload. Pushes are always
//     authoritative; no version or timestamp comparison is performed, so a
//     reordered push can apply a stale snapshot (known gap).
//
// An item's "pending" state is inferred only from its temporary identifier;
// the next authoritative snapshot supplants it.
package selforder
