// Package search maintains the flattened text projection of content items
// and answers substring queries over it.
//
// Every content item has exactly one Record: the item's data flattened to a
// lowercase string plus a best-effort title. The Service scans the global
// search index in insertion order and returns the first N records whose
// title or content contains the query substring. No ranking, no tokenization.
package search
