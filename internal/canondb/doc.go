// Package canondb persists canonical documents into a normalized SQLite
// database for downstream querying.
//
// The store applies versioned schema migrations on open and takes a file
// lock beside the database so concurrent load invocations cannot interleave
// writes. Loading is transactional: a document lands fully or not at all.
package canondb
