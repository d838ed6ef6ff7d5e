package merge

import (
	"reflect"
	"testing"

	"github.com/claudekit-labs/claudekit/internal/configstore"
)

func TestComputeDiffPartitionsNames(t *testing.T) {
	existing := &configstore.ExistingConfig{
		Exists: true,
		Skills: []configstore.StoredComponent{
			{Name: "code-reviewer"},
			{Name: "legacy-skill"},
		},
		Hooks: []configstore.HookFile{
			{Name: "secrets-scanner"},
		},
	}
	requested := Requested{
		Skills: []string{"code-reviewer", "api-design-reviewer"},
		Hooks:  []string{"coverage-gate"},
	}

	diff := ComputeDiff(existing, requested)

	if !reflect.DeepEqual(diff.Skills.Added, []string{"api-design-reviewer"}) {
		t.Errorf("Skills.Added = %v", diff.Skills.Added)
	}
	if !reflect.DeepEqual(diff.Skills.Removed, []string{"legacy-skill"}) {
		t.Errorf("Skills.Removed = %v", diff.Skills.Removed)
	}
	if !reflect.DeepEqual(diff.Skills.Kept, []string{"code-reviewer"}) {
		t.Errorf("Skills.Kept = %v", diff.Skills.Kept)
	}
	if !reflect.DeepEqual(diff.Hooks.Added, []string{"coverage-gate"}) {
		t.Errorf("Hooks.Added = %v", diff.Hooks.Added)
	}
	if !reflect.DeepEqual(diff.Hooks.Removed, []string{"secrets-scanner"}) {
		t.Errorf("Hooks.Removed = %v", diff.Hooks.Removed)
	}
}

// Each name appears in exactly one of Added, Removed, Kept.
func TestComputeDiffNoOverlap(t *testing.T) {
	existing := &configstore.ExistingConfig{
		Skills: []configstore.StoredComponent{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	}
	requested := Requested{Skills: []string{"b", "c", "d"}}

	diff := ComputeDiff(existing, requested)

	seen := make(map[string]int)
	for _, list := range [][]string{diff.Skills.Added, diff.Skills.Removed, diff.Skills.Kept} {
		for _, name := range list {
			seen[name]++
		}
	}
	for _, name := range []string{"a", "b", "c", "d"} {
		if seen[name] != 1 {
			t.Errorf("%q appears in %d partitions, want 1", name, seen[name])
		}
	}
}

func TestComputeDiffEmpty(t *testing.T) {
	if !ComputeDiff(nil, Requested{}).Empty() {
		t.Error("diff of nothing against nothing should be empty")
	}

	existing := &configstore.ExistingConfig{
		Skills: []configstore.StoredComponent{{Name: "code-reviewer"}},
	}
	same := ComputeDiff(existing, Requested{Skills: []string{"code-reviewer"}})
	if !same.Empty() {
		t.Errorf("identical sets should be an empty diff: %+v", same)
	}

	changed := ComputeDiff(existing, Requested{Skills: []string{"other"}})
	if changed.Empty() {
		t.Error("diff with changes reported Empty")
	}
}
