// Package configstore reads a generated .claude/ configuration directory
// back into memory. Loading is tolerant throughout: a missing directory means
// "not configured," and a missing or unparsable sub-resource yields an empty
// value for that resource plus a warning, never a failed load. User-authored
// custom sections inside component files are extracted so later regeneration
// can preserve them.
package configstore
