// Package core defines the domain model for company intelligence:
// profiles, analysis results, historical snapshots, metric samples, and
// knowledge chunks, together with slug derivation, validation rules, and
// the binary serializers used by storage.
package core
