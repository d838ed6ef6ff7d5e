package generate

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.yaml.in/yaml/v3"

	"github.com/claudekit-labs/claudekit/internal/configstore"
	"github.com/claudekit-labs/claudekit/internal/merge"
	"github.com/claudekit-labs/claudekit/internal/project"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/*.tmpl"))

// Input is everything the generator needs to materialize a configuration.
type Input struct {
	ProjectName string
	Context     project.Context
	Resolved    *merge.Resolved
	Reasons     []string

	// Version is the CLI version recorded in settings.json.
	Version string

	// PreservedClaudeMD carries custom sections extracted from a prior
	// CLAUDE.md, re-appended after the regenerated content.
	PreservedClaudeMD string

	// PreservedContext carries .claude/context/ files from a prior
	// configuration, written back verbatim.
	PreservedContext map[string]string
}

// Result reports what was written.
type Result struct {
	Files    []string
	Warnings []string
}

// Write renders the resolved configuration under projectDir. Components
// marked IsExisting are left untouched on disk. Write errors propagate: an
// unwritable destination is one of the few genuinely fatal conditions.
func Write(projectDir string, in Input) (*Result, error) {
	if in.Resolved == nil {
		return nil, fmt.Errorf("nothing to generate: resolved configuration is nil")
	}

	claudeDir := filepath.Join(projectDir, project.ConfigDirName)
	for _, sub := range []string{"skills", "agents", "hooks"} {
		if err := os.MkdirAll(filepath.Join(claudeDir, sub), 0755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", sub, err)
		}
	}

	result := &Result{}

	if err := writeClaudeMD(projectDir, in, result); err != nil {
		return nil, err
	}
	if err := writeSettings(claudeDir, in, result); err != nil {
		return nil, err
	}
	if err := writeSkills(claudeDir, in.Resolved.Skills, result); err != nil {
		return nil, err
	}
	if err := writeAgents(claudeDir, in.Resolved.Agents, result); err != nil {
		return nil, err
	}
	if err := writeHooks(claudeDir, in.Resolved.Hooks, result); err != nil {
		return nil, err
	}
	if err := writeContext(claudeDir, in.PreservedContext, result); err != nil {
		return nil, err
	}

	return result, nil
}

// claudeMDData is the template payload for claude.md.tmpl.
type claudeMDData struct {
	ProjectName  string
	Generator    string
	ProjectType  project.Type
	TechStack    []string
	Architecture []string
	Concerns     []string
	Skills       []string
	Agents       []string
	Hooks        []string
	Reasons      []string
}

func writeClaudeMD(projectDir string, in Input, result *Result) error {
	data := claudeMDData{
		ProjectName:  in.ProjectName,
		Generator:    generatorStamp(in.Version),
		ProjectType:  in.Context.ProjectType,
		TechStack:    in.Context.TechStack,
		Architecture: in.Context.Architecture,
		Concerns:     in.Context.Concerns,
		Skills:       componentNames(in.Resolved.Skills),
		Agents:       componentNames(in.Resolved.Agents),
		Hooks:        componentNames(in.Resolved.Hooks),
		Reasons:      in.Reasons,
	}
	if data.ProjectType == "" {
		data.ProjectType = project.TypeGeneral
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "claude.md.tmpl", data); err != nil {
		return fmt.Errorf("rendering %s: %w", project.InstructionsFileName, err)
	}

	content := appendCustomSections(buf.String(), in.PreservedClaudeMD)

	path := filepath.Join(projectDir, project.InstructionsFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", project.InstructionsFileName, err)
	}
	result.Files = append(result.Files, path)
	return nil
}

func writeSettings(claudeDir string, in Input, result *Result) error {
	settings := BuildSettings(in.Resolved, in.Version)

	data, err := MarshalSettings(settings)
	if err != nil {
		return fmt.Errorf("encoding settings.json: %w", err)
	}

	// The schema validates our own output; a failure here is a bug worth
	// surfacing but not worth aborting the write for.
	if issues := validateSettings(data); len(issues) > 0 {
		result.Warnings = append(result.Warnings, issues...)
	}

	path := filepath.Join(claudeDir, "settings.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings.json: %w", err)
	}
	result.Files = append(result.Files, path)
	return nil
}

// skillFrontmatter is the YAML block at the top of a SKILL.md.
type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func writeSkills(claudeDir string, skills []merge.ResolvedComponent, result *Result) error {
	for _, skill := range skills {
		if skill.IsExisting {
			continue
		}

		meta := lookupSkill(skill.Name)
		front := skillFrontmatter{Name: skill.Name, Description: meta.Description}

		body, err := renderComponent("skill.md.tmpl", map[string]string{
			"Name":        skill.Name,
			"Description": meta.Description,
			"Guidance":    meta.Guidance,
		})
		if err != nil {
			return err
		}

		content, err := withFrontmatter(front, body)
		if err != nil {
			return fmt.Errorf("encoding frontmatter for skill %s: %w", skill.Name, err)
		}
		content = appendCustomSections(content, skill.CustomSections)

		dir := filepath.Join(claudeDir, "skills", skill.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating skill directory %s: %w", skill.Name, err)
		}
		path := filepath.Join(dir, "SKILL.md")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing skill %s: %w", skill.Name, err)
		}
		result.Files = append(result.Files, path)
	}
	return nil
}

// agentFrontmatter is the YAML block at the top of an agent file.
type agentFrontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tools       []string `yaml:"tools"`
	Model       string   `yaml:"model"`
}

func writeAgents(claudeDir string, agents []merge.ResolvedComponent, result *Result) error {
	for _, agent := range agents {
		if agent.IsExisting {
			continue
		}

		meta := lookupAgent(agent.Name)
		front := agentFrontmatter{
			Name:        agent.Name,
			Description: meta.Description,
			Tools:       meta.Tools,
			Model:       meta.Model,
		}

		body, err := renderComponent("agent.md.tmpl", map[string]string{
			"Name":        agent.Name,
			"Description": meta.Description,
			"Guidance":    meta.Guidance,
		})
		if err != nil {
			return err
		}

		content, err := withFrontmatter(front, body)
		if err != nil {
			return fmt.Errorf("encoding frontmatter for agent %s: %w", agent.Name, err)
		}
		content = appendCustomSections(content, agent.CustomSections)

		path := filepath.Join(claudeDir, "agents", agent.Name+".md")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing agent %s: %w", agent.Name, err)
		}
		result.Files = append(result.Files, path)
	}
	return nil
}

func writeHooks(claudeDir string, hooks []merge.ResolvedComponent, result *Result) error {
	for _, hook := range hooks {
		if hook.IsExisting {
			continue
		}

		meta := lookupHook(hook.Name)
		content, err := renderComponent("hook.sh.tmpl", map[string]string{
			"Name":        hook.Name,
			"Description": meta.Description,
			"Check":       meta.Check,
		})
		if err != nil {
			return err
		}

		path := filepath.Join(claudeDir, "hooks", hook.Name+".sh")
		if err := os.WriteFile(path, []byte(content), 0755); err != nil {
			return fmt.Errorf("writing hook %s: %w", hook.Name, err)
		}
		result.Files = append(result.Files, path)
	}
	return nil
}

func writeContext(claudeDir string, preserved map[string]string, result *Result) error {
	if len(preserved) == 0 {
		return nil
	}

	dir := filepath.Join(claudeDir, "context")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating context directory: %w", err)
	}

	for name, content := range preserved {
		path := filepath.Join(dir, name+".md")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing context file %s: %w", name, err)
		}
		result.Files = append(result.Files, path)
	}
	return nil
}

func renderComponent(tmpl string, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", tmpl, err)
	}
	return buf.String(), nil
}

// withFrontmatter prepends a YAML frontmatter block to body.
func withFrontmatter(front interface{}, body string) (string, error) {
	encoded, err := yaml.Marshal(front)
	if err != nil {
		return "", err
	}
	return "---\n" + string(encoded) + "---\n\n" + body, nil
}

// appendCustomSections re-appends preserved user content after generated
// content, separated by one blank line.
func appendCustomSections(content, custom string) string {
	if custom == "" {
		return content
	}
	return strings.TrimRight(content, "\n") + "\n\n" + custom + "\n"
}

func generatorStamp(version string) string {
	if version == "" {
		version = "dev"
	}
	return "claudekit v" + strings.TrimPrefix(version, "v")
}

func componentNames(components []merge.ResolvedComponent) []string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return names
}

// BuildSettings assembles the settings.json structure for a resolved
// configuration: one hook entry per resolved hook, grouped by event.
func BuildSettings(resolved *merge.Resolved, version string) *configstore.Settings {
	settings := &configstore.Settings{
		Version:     "1",
		GeneratedBy: generatorStamp(version),
		Hooks:       make(map[string][]configstore.HookEntry),
	}

	for _, hook := range resolved.Hooks {
		meta := lookupHook(hook.Name)
		settings.Hooks[meta.Event] = append(settings.Hooks[meta.Event], configstore.HookEntry{
			Matcher: meta.Matcher,
			Command: fmt.Sprintf(".claude/hooks/%s.sh", hook.Name),
		})
	}

	return settings
}
