package project

// ConfigDirName is the configuration directory generated into a project root.
const ConfigDirName = ".claude"

// InstructionsFileName is the top-level instructions file at the project root.
const InstructionsFileName = "CLAUDE.md"

// Type classifies a project into one of a fixed set of shapes used by
// the recommendation rules.
type Type string

// Known project types, from least to most specific.
const (
	TypeGeneral         Type = "general"
	TypeCLITool         Type = "cli-tool"
	TypeMonorepo        Type = "monorepo"
	TypeAPIService      Type = "api-service"
	TypeReactNextJS     Type = "react-nextjs"
	TypeAngularFrontend Type = "angular-frontend"
	TypeDotnetCleanArch Type = "dotnet-clean-arch"
)

// ValidTypes contains all valid project type values.
var ValidTypes = []Type{
	TypeGeneral,
	TypeCLITool,
	TypeMonorepo,
	TypeAPIService,
	TypeReactNextJS,
	TypeAngularFrontend,
	TypeDotnetCleanArch,
}

// Audience describes who the generated configuration is written for.
type Audience string

// Known audience values.
const (
	AudienceDevelopers   Audience = "developers"
	AudienceNonTechnical Audience = "non-technical"
	AudienceMixed        Audience = "mixed"
)

// ArchitectureTags is the fixed vocabulary for the Architecture field.
// Values outside this list are tolerated by rule evaluation (they simply
// match no rule) but are never produced by the scanner.
var ArchitectureTags = []string{
	"clean-architecture",
	"vertical-slice",
	"cqrs",
	"event-sourcing",
	"repository-pattern",
	"microservices",
	"modular-monolith",
}

// ConcernTags is the fixed vocabulary for the Concerns field.
var ConcernTags = []string{
	"data-integrity",
	"security",
	"performance",
	"accessibility",
	"user-experience",
	"test-coverage",
	"documentation",
}

// Context describes the characteristics of a project that drive component
// recommendations. All fields are optional; an empty Context yields only the
// unconditional recommendations.
type Context struct {
	ProjectType  Type     `json:"projectType,omitempty"`
	TechStack    []string `json:"techStack,omitempty"`
	Architecture []string `json:"architecture,omitempty"`
	Concerns     []string `json:"concerns,omitempty"`
	TargetUsers  Audience `json:"targetUsers,omitempty"`
	HasAPI       bool     `json:"hasApi"`
}

// HasArchitecture reports whether the context carries the given architecture tag.
func (c Context) HasArchitecture(tag string) bool { return contains(c.Architecture, tag) }

// HasConcern reports whether the context carries the given concern tag.
func (c Context) HasConcern(tag string) bool { return contains(c.Concerns, tag) }

// HasTech reports whether the context carries the given tech stack tag.
func (c Context) HasTech(tag string) bool { return contains(c.TechStack, tag) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ExistingComponents lists component names found in an on-disk configuration
// directory, grouped by kind.
type ExistingComponents struct {
	Skills []string `json:"skills"`
	Agents []string `json:"agents"`
	Hooks  []string `json:"hooks"`
}

// ScanResult holds everything the scanner inferred about a project directory.
// It is constructed fresh per scan and read-only afterward.
type ScanResult struct {
	Name         string   `json:"name"`
	Languages    []string `json:"languages"`
	Frameworks   []string `json:"frameworks"`
	Databases    []string `json:"databases"`
	Architecture []string `json:"architecture"`
	ProjectType  Type     `json:"projectType"`
	TechStack    []string `json:"techStack"`

	HasTests  bool `json:"hasTests"`
	HasDocker bool `json:"hasDocker"`
	HasCI     bool `json:"hasCI"`
	HasAPI    bool `json:"hasApi"`

	ExistingClaude     bool               `json:"existingClaude"`
	ExistingComponents ExistingComponents `json:"existingClaudeComponents"`
}

// Context pre-fills a recommendation Context from the scan result.
func (r ScanResult) Context() Context {
	return Context{
		ProjectType:  r.ProjectType,
		TechStack:    r.TechStack,
		Architecture: r.Architecture,
		TargetUsers:  AudienceDevelopers,
		HasAPI:       r.HasAPI,
	}
}
