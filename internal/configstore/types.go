package configstore

// StoredComponent is one skill or agent read back from disk.
type StoredComponent struct {
	Name string

	// Content is the full file content, or empty when the file was missing
	// or unreadable.
	Content string

	// CustomSections holds the user-authored blocks extracted from Content.
	// Empty string when no marker heading is present; never meaningful
	// markdown of its own.
	CustomSections string
}

// HookFile is one hook script read back from disk.
type HookFile struct {
	Name    string
	Content string
}

// HookEntry is a single matcher/command pair under a settings.json event.
type HookEntry struct {
	Matcher string `json:"matcher"`
	Command string `json:"command"`
}

// Settings mirrors .claude/settings.json.
type Settings struct {
	Version     string                 `json:"version,omitempty"`
	GeneratedBy string                 `json:"generatedBy,omitempty"`
	Hooks       map[string][]HookEntry `json:"hooks,omitempty"`
}

// ExistingConfig aggregates everything read from a project's configuration.
// Absence of any sub-part is tolerated and represented by an empty value.
type ExistingConfig struct {
	// Exists is false when the .claude/ directory is not present at all.
	Exists bool

	Skills []StoredComponent
	Agents []StoredComponent
	Hooks  []HookFile

	// Settings is nil when settings.json is missing or unparsable.
	Settings *Settings

	// ClaudeMD is the top-level instructions file content, empty if absent.
	ClaudeMD string

	// PreservedContext maps context file names to their content.
	PreservedContext map[string]string

	// Warnings collects non-fatal read/parse problems encountered during
	// the load, for the caller to surface at its discretion.
	Warnings []string
}

// SkillNames returns the names of all loaded skills.
func (c *ExistingConfig) SkillNames() []string { return componentNames(c.Skills) }

// AgentNames returns the names of all loaded agents.
func (c *ExistingConfig) AgentNames() []string { return componentNames(c.Agents) }

// HookNames returns the names of all loaded hooks.
func (c *ExistingConfig) HookNames() []string {
	names := make([]string, 0, len(c.Hooks))
	for _, h := range c.Hooks {
		names = append(names, h.Name)
	}
	return names
}

func componentNames(components []StoredComponent) []string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return names
}
