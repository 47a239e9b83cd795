// Package catalog provides the in-memory record collection at the heart of
// the application: normalization of raw tabular rows into the canonical
// record shape, the authoritative store with provenance tracking, and the
// pure query engine the presentation layer renders from.
//
// The package has no I/O dependencies. Parsing, persistence and HTTP live in
// their own packages and treat this one as the single source of truth.
package catalog
