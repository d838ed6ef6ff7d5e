// Package generate renders a fully-resolved configuration to disk: the
// top-level CLAUDE.md instructions file, .claude/settings.json, and one file
// (or directory) per resolved component. Components marked as existing are
// left untouched; updated components are regenerated from their base
// template with the preserved custom sections re-appended.
package generate
