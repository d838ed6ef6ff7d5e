package merge

import (
	"testing"

	"github.com/claudekit-labs/claudekit/internal/configstore"
)

func existingFixture() *configstore.ExistingConfig {
	return &configstore.ExistingConfig{
		Exists: true,
		Skills: []configstore.StoredComponent{
			{
				Name:           "code-reviewer",
				Content:        "# code-reviewer\n\n## Project-Specific\nskip vendored code\n",
				CustomSections: "## Project-Specific\nskip vendored code",
			},
			{
				Name:    "legacy-skill",
				Content: "# legacy-skill\n",
			},
		},
		Agents: []configstore.StoredComponent{
			{Name: "security-reviewer", Content: "# security-reviewer\n"},
		},
		Hooks: []configstore.HookFile{
			{Name: "secrets-scanner", Content: "#!/bin/sh\nexit 0\n"},
		},
	}
}

func TestMergeCancelReturnsNil(t *testing.T) {
	resolved, err := Merge(existingFixture(), Requested{Skills: []string{"code-reviewer"}}, StrategyCancel)
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if resolved != nil {
		t.Errorf("resolved = %+v, want nil", resolved)
	}
}

func TestMergeUnknownStrategy(t *testing.T) {
	if _, err := Merge(existingFixture(), Requested{}, Strategy("yolo")); err == nil {
		t.Error("expected an error for an unknown strategy")
	}
	if _, err := Merge(existingFixture(), Requested{}, Strategy("")); err == nil {
		t.Error("expected an error for an empty strategy")
	}
}

func TestMergeReplaceMarksEverythingNew(t *testing.T) {
	for _, strategy := range []Strategy{StrategyReplace, StrategyBackupReplace} {
		resolved, err := Merge(existingFixture(), Requested{
			Skills: []string{"code-reviewer", "api-design-reviewer"},
			Hooks:  []string{"secrets-scanner"},
		}, strategy)
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}

		if len(resolved.Skills) != 2 {
			t.Fatalf("%s: Skills = %v", strategy, resolved.Skills)
		}
		for _, c := range append(resolved.Skills, resolved.Hooks...) {
			if !c.IsNew || c.IsUpdate || c.IsExisting {
				t.Errorf("%s: %s flags = new:%v update:%v existing:%v, want new only",
					strategy, c.Name, c.IsNew, c.IsUpdate, c.IsExisting)
			}
		}
		// Components on disk but not requested do not survive a replace.
		if len(resolved.Agents) != 0 {
			t.Errorf("%s: Agents = %v, want empty", strategy, resolved.Agents)
		}
	}
}

func TestMergeRetainsUnrequestedComponents(t *testing.T) {
	resolved, err := Merge(existingFixture(), Requested{
		Skills: []string{"code-reviewer", "api-design-reviewer"},
	}, StrategyMerge)
	if err != nil {
		t.Fatal(err)
	}

	byName := make(map[string]ResolvedComponent)
	for _, c := range resolved.Skills {
		byName[c.Name] = c
	}

	update, ok := byName["code-reviewer"]
	if !ok || !update.IsUpdate {
		t.Fatalf("code-reviewer = %+v, want IsUpdate", update)
	}
	if update.CustomSections != "## Project-Specific\nskip vendored code" {
		t.Errorf("CustomSections = %q", update.CustomSections)
	}

	added, ok := byName["api-design-reviewer"]
	if !ok || !added.IsNew {
		t.Fatalf("api-design-reviewer = %+v, want IsNew", added)
	}

	kept, ok := byName["legacy-skill"]
	if !ok || !kept.IsExisting {
		t.Fatalf("legacy-skill = %+v, want IsExisting", kept)
	}
	if kept.Content != "# legacy-skill\n" {
		t.Errorf("legacy-skill Content = %q", kept.Content)
	}

	// Agents and hooks on disk are retained even with nothing requested.
	if len(resolved.Agents) != 1 || !resolved.Agents[0].IsExisting {
		t.Errorf("Agents = %+v", resolved.Agents)
	}
	if len(resolved.Hooks) != 1 || !resolved.Hooks[0].IsExisting {
		t.Errorf("Hooks = %+v", resolved.Hooks)
	}
}

func TestMergeHooksUpdateCarriesNoCustomSections(t *testing.T) {
	resolved, err := Merge(existingFixture(), Requested{
		Hooks: []string{"secrets-scanner"},
	}, StrategyMerge)
	if err != nil {
		t.Fatal(err)
	}

	if len(resolved.Hooks) != 1 {
		t.Fatalf("Hooks = %+v", resolved.Hooks)
	}
	hook := resolved.Hooks[0]
	if !hook.IsUpdate {
		t.Errorf("secrets-scanner flags = %+v, want IsUpdate", hook)
	}
	if hook.CustomSections != "" {
		t.Errorf("CustomSections = %q, want empty for hooks", hook.CustomSections)
	}
}

func TestMergeDeduplicatesRequestedNames(t *testing.T) {
	resolved, err := Merge(nil, Requested{
		Skills: []string{"code-reviewer", "code-reviewer"},
	}, StrategyMerge)
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved.Skills) != 1 {
		t.Errorf("Skills = %+v, want one entry", resolved.Skills)
	}
}

func TestMergeNilExisting(t *testing.T) {
	resolved, err := Merge(nil, Requested{Skills: []string{"code-reviewer"}}, StrategyMerge)
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved.Skills) != 1 || !resolved.Skills[0].IsNew {
		t.Errorf("Skills = %+v, want one new component", resolved.Skills)
	}
}
