// Package conversation contains the negotiation-thread aggregate attached to
// orders with custom items. A conversation owns an append-only log of
// messages exchanged between exactly one staff side and one customer side,
// including staff-issued quote messages, per-message read flags tracked
// relative to the opposite side, and the active/archived switch used by the
// idle-conversation cleanup job.
package conversation
