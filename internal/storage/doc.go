// Package storage provides JSON-based persistence for assignment snapshots.
//
// The storage package manages local snapshot files that track assignments across
// runs, powering new-assignment and moved-deadline detection. Snapshots are stored
// in JSON format, one file per feed source (snapshot_SOURCE.json). The default
// storage location is ~/.local/share/ilearnics/.
package storage
