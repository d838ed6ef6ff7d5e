package configstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingConfigDir(t *testing.T) {
	config := Load(t.TempDir())

	if config.Exists {
		t.Error("Exists = true, want false")
	}
	if len(config.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", config.Warnings)
	}
}

func TestLoadFullConfiguration(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".claude/settings.json", `{
  "version": "1",
  "generatedBy": "claudekit v0.3.0",
  "hooks": {"PreToolUse": [{"matcher": "Write|Edit", "command": ".claude/hooks/secrets-scanner.sh"}]}
}`)
	writeFile(t, dir, ".claude/skills/code-reviewer/SKILL.md", "# code-reviewer\n\n## Project-Specific\nskip vendored code\n")
	writeFile(t, dir, ".claude/agents/security-reviewer.md", "# security-reviewer\n")
	writeFile(t, dir, ".claude/hooks/secrets-scanner.sh", "#!/bin/sh\nexit 0\n")
	writeFile(t, dir, ".claude/context/architecture.md", "layered\n")
	writeFile(t, dir, "CLAUDE.md", "# Project\n\n## Custom Rules\nno force-push\n")

	config := Load(dir)

	if !config.Exists {
		t.Fatal("Exists = false, want true")
	}
	if len(config.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", config.Warnings)
	}

	if config.Settings == nil {
		t.Fatal("Settings = nil")
	}
	if config.Settings.GeneratedBy != "claudekit v0.3.0" {
		t.Errorf("GeneratedBy = %q", config.Settings.GeneratedBy)
	}
	entries := config.Settings.Hooks["PreToolUse"]
	if len(entries) != 1 || entries[0].Matcher != "Write|Edit" {
		t.Errorf("PreToolUse hooks = %v", entries)
	}

	if len(config.Skills) != 1 || config.Skills[0].Name != "code-reviewer" {
		t.Fatalf("Skills = %v", config.Skills)
	}
	if config.Skills[0].CustomSections != "## Project-Specific\nskip vendored code" {
		t.Errorf("skill CustomSections = %q", config.Skills[0].CustomSections)
	}

	if names := config.AgentNames(); len(names) != 1 || names[0] != "security-reviewer" {
		t.Errorf("AgentNames = %v", names)
	}
	if names := config.HookNames(); len(names) != 1 || names[0] != "secrets-scanner" {
		t.Errorf("HookNames = %v", names)
	}

	if got := config.PreservedContext["architecture"]; got != "layered\n" {
		t.Errorf("PreservedContext[architecture] = %q", got)
	}
	if !strings.Contains(config.ClaudeMD, "## Custom Rules") {
		t.Errorf("ClaudeMD = %q", config.ClaudeMD)
	}
}

func TestLoadMalformedSettingsIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".claude/settings.json", "{not valid json")
	writeFile(t, dir, ".claude/skills/code-reviewer/SKILL.md", "# ok\n")

	config := Load(dir)

	if !config.Exists {
		t.Fatal("Exists = false, want true")
	}
	if config.Settings != nil {
		t.Error("Settings should be nil for malformed JSON")
	}
	if len(config.Warnings) != 1 || !strings.Contains(config.Warnings[0], "settings.json") {
		t.Errorf("Warnings = %v", config.Warnings)
	}
	// The rest of the configuration still loads.
	if len(config.Skills) != 1 {
		t.Errorf("Skills = %v", config.Skills)
	}
}

func TestLoadSkillDirWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".claude", "skills", "orphan"), 0755); err != nil {
		t.Fatal(err)
	}

	config := Load(dir)

	// Listed so merge can still see it, but with empty content and a warning.
	if names := config.SkillNames(); len(names) != 1 || names[0] != "orphan" {
		t.Fatalf("SkillNames = %v", names)
	}
	if config.Skills[0].Content != "" {
		t.Errorf("Content = %q, want empty", config.Skills[0].Content)
	}
	if len(config.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one", config.Warnings)
	}
}

func TestLoadIgnoresNonComponentFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".claude/agents/README.txt", "not an agent\n")
	writeFile(t, dir, ".claude/hooks/notes.md", "not a hook\n")

	config := Load(dir)

	if len(config.Agents) != 0 {
		t.Errorf("Agents = %v, want empty", config.Agents)
	}
	if len(config.Hooks) != 0 {
		t.Errorf("Hooks = %v, want empty", config.Hooks)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
