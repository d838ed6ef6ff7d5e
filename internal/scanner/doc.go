// Package scanner infers project characteristics from a directory's
// manifest and configuration files. Every probe is best-effort: a missing or
// unreadable file means "feature absent," never a scan failure. Scan always
// returns a usable result.
package scanner
