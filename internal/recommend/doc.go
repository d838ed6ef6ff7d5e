// Package recommend evaluates declarative condition→contribution rules
// against a project context to derive suggested skills, agents, and hooks.
// The rule list is passed in explicitly so tests can supply synthetic rule
// sets; production callers use DefaultRules.
package recommend
