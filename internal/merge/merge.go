package merge

import (
	"fmt"

	"github.com/claudekit-labs/claudekit/internal/configstore"
)

// Strategy selects how a new configuration reconciles with an existing one.
type Strategy string

// Known merge strategies.
const (
	// StrategyMerge keeps existing components, updates re-requested ones in
	// place (preserving custom sections), and adds new ones.
	StrategyMerge Strategy = "merge"

	// StrategyReplace regenerates from the requested set only.
	StrategyReplace Strategy = "replace"

	// StrategyBackupReplace is replace preceded by a snapshot. Taking the
	// snapshot is the caller's responsibility, before any write.
	StrategyBackupReplace Strategy = "backup-replace"

	// StrategyCancel aborts: Merge returns nil and no files are touched.
	StrategyCancel Strategy = "cancel"
)

// Requested is the component selection produced by recommendation plus user
// choices.
type Requested struct {
	Skills []string
	Agents []string
	Hooks  []string
}

// ResolvedComponent is one component in the post-merge configuration.
// Exactly one of IsNew, IsUpdate, IsExisting is set.
type ResolvedComponent struct {
	Name string

	// IsNew: requested and not present on disk.
	IsNew bool

	// IsUpdate: requested and already present; the base template is
	// regenerated and CustomSections re-appended.
	IsUpdate bool

	// IsExisting: present on disk but not re-requested; kept untouched.
	IsExisting bool

	// CustomSections carries the user-authored blocks of the prior file for
	// IsUpdate components.
	CustomSections string

	// Content is the original file content, populated for IsExisting
	// components so generation can leave them as they are.
	Content string
}

// Resolved is the full post-merge configuration handed to the generator.
type Resolved struct {
	Strategy Strategy
	Skills   []ResolvedComponent
	Agents   []ResolvedComponent
	Hooks    []ResolvedComponent
}

// Merge reconciles existing with requested under the given strategy.
// StrategyCancel returns (nil, nil): a normal outcome, not an error.
// An unknown strategy is an error.
func Merge(existing *configstore.ExistingConfig, requested Requested, strategy Strategy) (*Resolved, error) {
	if err := ValidateStrategy(string(strategy)); err != nil {
		return nil, fmt.Errorf("invalid merge strategy %q: %w", strategy, err)
	}

	switch strategy {
	case StrategyCancel:
		return nil, nil

	case StrategyReplace, StrategyBackupReplace:
		return &Resolved{
			Strategy: strategy,
			Skills:   allNew(requested.Skills),
			Agents:   allNew(requested.Agents),
			Hooks:    allNew(requested.Hooks),
		}, nil

	case StrategyMerge:
		if existing == nil {
			existing = &configstore.ExistingConfig{}
		}
		return &Resolved{
			Strategy: strategy,
			Skills:   mergeComponents(existing.Skills, requested.Skills),
			Agents:   mergeComponents(existing.Agents, requested.Agents),
			Hooks:    mergeHooks(existing.Hooks, requested.Hooks),
		}, nil
	}

	return nil, fmt.Errorf("unhandled merge strategy %q", strategy)
}

// allNew marks every requested name as a fresh component.
func allNew(names []string) []ResolvedComponent {
	components := make([]ResolvedComponent, 0, len(names))
	for _, name := range names {
		components = append(components, ResolvedComponent{Name: name, IsNew: true})
	}
	return components
}

// mergeComponents reconciles one kind of stored component with the requested
// names. Requested names present on disk become updates carrying the prior
// custom sections; requested names absent from disk are new; names on disk
// that were not re-requested are retained untouched.
func mergeComponents(existing []configstore.StoredComponent, requested []string) []ResolvedComponent {
	byName := make(map[string]configstore.StoredComponent, len(existing))
	for _, c := range existing {
		byName[c.Name] = c
	}

	requestedSet := make(map[string]bool, len(requested))
	var resolved []ResolvedComponent

	for _, name := range requested {
		if requestedSet[name] {
			continue
		}
		requestedSet[name] = true

		if prior, ok := byName[name]; ok {
			resolved = append(resolved, ResolvedComponent{
				Name:           name,
				IsUpdate:       true,
				CustomSections: prior.CustomSections,
			})
		} else {
			resolved = append(resolved, ResolvedComponent{Name: name, IsNew: true})
		}
	}

	for _, c := range existing {
		if !requestedSet[c.Name] {
			resolved = append(resolved, ResolvedComponent{
				Name:       c.Name,
				IsExisting: true,
				Content:    c.Content,
			})
		}
	}

	return resolved
}

// mergeHooks is mergeComponents for hook scripts, which carry no custom
// sections: a re-requested hook is regenerated wholesale.
func mergeHooks(existing []configstore.HookFile, requested []string) []ResolvedComponent {
	byName := make(map[string]configstore.HookFile, len(existing))
	for _, h := range existing {
		byName[h.Name] = h
	}

	requestedSet := make(map[string]bool, len(requested))
	var resolved []ResolvedComponent

	for _, name := range requested {
		if requestedSet[name] {
			continue
		}
		requestedSet[name] = true

		if _, ok := byName[name]; ok {
			resolved = append(resolved, ResolvedComponent{Name: name, IsUpdate: true})
		} else {
			resolved = append(resolved, ResolvedComponent{Name: name, IsNew: true})
		}
	}

	for _, h := range existing {
		if !requestedSet[h.Name] {
			resolved = append(resolved, ResolvedComponent{
				Name:       h.Name,
				IsExisting: true,
				Content:    h.Content,
			})
		}
	}

	return resolved
}
