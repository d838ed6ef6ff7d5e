package merge

import (
	"sort"

	"github.com/claudekit-labs/claudekit/internal/configstore"
)

// KindDiff partitions the union of existing and requested names of one
// component kind. Lists are sorted for stable output.
type KindDiff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Kept    []string `json:"kept"`
}

// Diff summarizes how a requested configuration differs from the existing
// one, per component kind. Pure computation; no filesystem access.
type Diff struct {
	Skills KindDiff `json:"skills"`
	Agents KindDiff `json:"agents"`
	Hooks  KindDiff `json:"hooks"`
}

// ComputeDiff diffs the existing configuration against the requested names.
// "Removed" reflects what a replace strategy would drop; the merge strategy
// retains those components regardless.
func ComputeDiff(existing *configstore.ExistingConfig, requested Requested) Diff {
	if existing == nil {
		existing = &configstore.ExistingConfig{}
	}
	return Diff{
		Skills: diffNames(existing.SkillNames(), requested.Skills),
		Agents: diffNames(existing.AgentNames(), requested.Agents),
		Hooks:  diffNames(existing.HookNames(), requested.Hooks),
	}
}

// Empty reports whether the diff contains no changes at all.
func (d Diff) Empty() bool {
	return len(d.Skills.Added)+len(d.Skills.Removed)+
		len(d.Agents.Added)+len(d.Agents.Removed)+
		len(d.Hooks.Added)+len(d.Hooks.Removed) == 0
}

func diffNames(existing, requested []string) KindDiff {
	existingSet := toSet(existing)
	requestedSet := toSet(requested)

	diff := KindDiff{
		Added:   []string{},
		Removed: []string{},
		Kept:    []string{},
	}

	for name := range requestedSet {
		if existingSet[name] {
			diff.Kept = append(diff.Kept, name)
		} else {
			diff.Added = append(diff.Added, name)
		}
	}
	for name := range existingSet {
		if !requestedSet[name] {
			diff.Removed = append(diff.Removed, name)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(diff.Kept)
	return diff
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
