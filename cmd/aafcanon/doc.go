// Command aafcanon converts timeline graph snapshots into canonical JSON
// documents and works with the results: validation, SQLite loading, CSV
// and FCPXML export, and a terminal event view.
package main
