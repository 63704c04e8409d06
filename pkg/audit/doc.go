// Package audit records the append-only change history of content items.
//
// Every entry is written once and never mutated or deleted. Entries are
// members of exactly two indexes: the global audit index and the per-subject
// index keyed by the item they describe. ListBySubject reconstructs a
// subject's history newest first, with equal timestamps kept in append order.
package audit
