// Package runlog persists an audit record for every pipeline run in a
// SQLite database: input, mode, languages, status, output paths, and the
// emitted progress messages. The CLI lists these records with `subweave runs`.
package runlog
