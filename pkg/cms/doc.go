// Package cms defines the Stratum content model and the stores that keep it
// consistent over the key-value backend.
//
// Content types, media assets, and users are plain collections (see
// entity.CollectionStore). Content items are the complex case: every write
// must keep four artifacts in step: the item record, the global item index,
// the per-type index, and the derived search record plus its index entry.
// ContentItemStore owns that discipline.
//
// The item record write always comes first, so an id visible in any index
// resolves to a record; secondary artifacts are best-effort, and a failure
// after the record write surfaces as *PartialIndexError rather than rolling
// back (the backend has no cross-key transactions).
//
// Item status is stored and returned verbatim. The draft → published →
// archived machine is caller policy; the store's only default is draft for an
// unset status on create.
package cms
