package configstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claudekit-labs/claudekit/internal/project"
)

// Load reads the configuration under projectDir into an ExistingConfig.
// A missing .claude/ directory yields {Exists: false} with no error. Every
// sub-resource is read independently; failures become warnings, not errors.
func Load(projectDir string) *ExistingConfig {
	config := &ExistingConfig{
		PreservedContext: make(map[string]string),
	}

	claudeDir := filepath.Join(projectDir, project.ConfigDirName)
	info, err := os.Stat(claudeDir)
	if err != nil || !info.IsDir() {
		return config
	}
	config.Exists = true

	config.loadSettings(claudeDir)
	config.loadSkills(claudeDir)
	config.loadAgents(claudeDir)
	config.loadHooks(claudeDir)
	config.loadContext(claudeDir)
	config.loadClaudeMD(projectDir)

	return config
}

func (c *ExistingConfig) warnf(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *ExistingConfig) loadSettings(claudeDir string) {
	path := filepath.Join(claudeDir, "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.warnf("reading settings.json: %v", err)
		}
		return
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		c.warnf("parsing settings.json: %v", err)
		return
	}
	c.Settings = &settings
}

// loadSkills reads each skills/<name>/SKILL.md. A skill directory whose
// SKILL.md is missing or unreadable is still listed, with empty content.
func (c *ExistingConfig) loadSkills(claudeDir string) {
	entries, err := os.ReadDir(filepath.Join(claudeDir, "skills"))
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		component := StoredComponent{Name: entry.Name()}
		path := filepath.Join(claudeDir, "skills", entry.Name(), "SKILL.md")
		data, err := os.ReadFile(path)
		if err != nil {
			c.warnf("reading skill %s: %v", entry.Name(), err)
		} else {
			component.Content = string(data)
			component.CustomSections = ExtractCustomSections(component.Content)
		}
		c.Skills = append(c.Skills, component)
	}
}

func (c *ExistingConfig) loadAgents(claudeDir string) {
	entries, err := os.ReadDir(filepath.Join(claudeDir, "agents"))
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		component := StoredComponent{Name: strings.TrimSuffix(entry.Name(), ".md")}
		data, err := os.ReadFile(filepath.Join(claudeDir, "agents", entry.Name()))
		if err != nil {
			c.warnf("reading agent %s: %v", component.Name, err)
		} else {
			component.Content = string(data)
			component.CustomSections = ExtractCustomSections(component.Content)
		}
		c.Agents = append(c.Agents, component)
	}
}

func (c *ExistingConfig) loadHooks(claudeDir string) {
	entries, err := os.ReadDir(filepath.Join(claudeDir, "hooks"))
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sh") {
			continue
		}

		hook := HookFile{Name: strings.TrimSuffix(entry.Name(), ".sh")}
		data, err := os.ReadFile(filepath.Join(claudeDir, "hooks", entry.Name()))
		if err != nil {
			c.warnf("reading hook %s: %v", hook.Name, err)
		} else {
			hook.Content = string(data)
		}
		c.Hooks = append(c.Hooks, hook)
	}
}

// loadContext reads .claude/context/*.md into PreservedContext.
func (c *ExistingConfig) loadContext(claudeDir string) {
	entries, err := os.ReadDir(filepath.Join(claudeDir, "context"))
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(claudeDir, "context", entry.Name()))
		if err != nil {
			c.warnf("reading context file %s: %v", entry.Name(), err)
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		c.PreservedContext[name] = string(data)
	}
}

func (c *ExistingConfig) loadClaudeMD(projectDir string) {
	data, err := os.ReadFile(filepath.Join(projectDir, project.InstructionsFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			c.warnf("reading %s: %v", project.InstructionsFileName, err)
		}
		return
	}
	c.ClaudeMD = string(data)
}
