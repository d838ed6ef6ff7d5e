// Package merge reconciles an existing on-disk configuration with a newly
// requested one under a chosen strategy, and computes the additive/removal
// diff shown to the user before committing. The merge strategy never
// silently discards a component the user already has, and custom sections
// extracted at load time are carried through to regeneration.
package merge
