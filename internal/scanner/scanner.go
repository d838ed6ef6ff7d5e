package scanner

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/claudekit-labs/claudekit/internal/project"
)

// DefaultConfigFileCap bounds how many configuration-like files the database
// probe reads per scan.
const DefaultConfigFileCap = 30

// maxProbeBytes bounds how much of a single file a content probe reads.
const maxProbeBytes = 256 * 1024

// Options tunes a scan. The zero value applies defaults.
type Options struct {
	// ConfigFileCap overrides DefaultConfigFileCap when positive.
	ConfigFileCap int
}

// projectTypeRank orders project types by specificity. A detection only
// overwrites the assigned type when its rank is greater than or equal to the
// rank already recorded, making the "last specific match wins" policy
// explicit rather than an artifact of probe ordering.
var projectTypeRank = map[project.Type]int{
	project.TypeGeneral:         0,
	project.TypeCLITool:         1,
	project.TypeMonorepo:        1,
	project.TypeAPIService:      2,
	project.TypeReactNextJS:     3,
	project.TypeAngularFrontend: 3,
	project.TypeDotnetCleanArch: 4,
}

// scan accumulates detections for one Scan invocation.
type scan struct {
	dir      string
	opts     Options
	result   *project.ScanResult
	typeRank int
}

// Scan inspects dir and returns the inferred project characteristics.
// It never fails: on an empty or unreadable directory it returns a result
// with ProjectType "general", empty lists, and false flags.
func Scan(dir string) *project.ScanResult {
	return ScanWithOptions(dir, Options{})
}

// ScanWithOptions is Scan with explicit tuning options.
func ScanWithOptions(dir string, opts Options) *project.ScanResult {
	s := &scan{
		dir:  dir,
		opts: opts,
		result: &project.ScanResult{
			Name:         filepath.Base(dir),
			Languages:    []string{},
			Frameworks:   []string{},
			Databases:    []string{},
			Architecture: []string{},
			ProjectType:  project.TypeGeneral,
			TechStack:    []string{},
			ExistingComponents: project.ExistingComponents{
				Skills: []string{},
				Agents: []string{},
				Hooks:  []string{},
			},
		},
	}

	if abs, err := filepath.Abs(dir); err == nil {
		s.result.Name = filepath.Base(abs)
	}

	// Manifest probes. Order does not decide the project type; specificity
	// ranks do (see projectTypeRank).
	s.detectNode()
	s.detectGo()
	s.detectDotnet()
	s.detectPython()
	s.detectRust()
	s.detectJava()
	s.detectRuby()
	s.detectPHP()
	s.detectMonorepo()

	s.detectArchitectureDirs()
	s.detectFeatureFlags()
	s.detectDatabases()
	s.detectExistingClaude()

	s.finish()
	return s.result
}

// setProjectType records t unless a more specific type is already assigned.
func (s *scan) setProjectType(t project.Type) {
	rank := projectTypeRank[t]
	if rank >= s.typeRank {
		s.typeRank = rank
		s.result.ProjectType = t
	}
}

func (s *scan) addLanguage(names ...string) {
	s.result.Languages = append(s.result.Languages, names...)
}

func (s *scan) addFramework(names ...string) {
	s.result.Frameworks = append(s.result.Frameworks, names...)
}

func (s *scan) addTech(names ...string) {
	s.result.TechStack = append(s.result.TechStack, names...)
}

func (s *scan) addArchitecture(names ...string) {
	s.result.Architecture = append(s.result.Architecture, names...)
}

// detectNode probes package.json for languages, frameworks, and type hints.
func (s *scan) detectNode() {
	pkg := s.readJSON("package.json")
	if pkg == nil {
		return
	}

	s.addLanguage("javascript")
	s.addTech("nodejs")

	deps := dependencyNames(pkg)

	if deps["typescript"] {
		s.addLanguage("typescript")
		s.addTech("typescript")
	}
	if deps["react"] {
		s.addTech("react")
		s.addFramework("react")
	}
	if deps["next"] {
		s.addFramework("nextjs")
		s.setProjectType(project.TypeReactNextJS)
	}
	if deps["@angular/core"] {
		s.addTech("angular")
		s.addFramework("angular")
		s.setProjectType(project.TypeAngularFrontend)
	}
	for _, api := range []string{"express", "fastify", "@nestjs/core", "koa"} {
		if deps[api] {
			s.addFramework(strings.TrimPrefix(strings.Split(api, "/")[0], "@"))
			s.result.HasAPI = true
			s.setProjectType(project.TypeAPIService)
		}
	}
	for _, cli := range []string{"commander", "yargs", "oclif"} {
		if deps[cli] {
			s.setProjectType(project.TypeCLITool)
		}
	}
	if _, ok := pkg["workspaces"]; ok {
		s.setProjectType(project.TypeMonorepo)
	}
}

// detectGo probes go.mod for the Go toolchain and common frameworks.
func (s *scan) detectGo() {
	content, ok := s.readText("go.mod")
	if !ok {
		return
	}

	s.addLanguage("go")
	s.addTech("go")

	for _, api := range []string{"github.com/gin-gonic/gin", "github.com/go-chi/chi", "github.com/labstack/echo", "github.com/gofiber/fiber"} {
		if strings.Contains(content, api) {
			s.addFramework(frameworkFromModule(api))
			s.result.HasAPI = true
			s.setProjectType(project.TypeAPIService)
		}
	}
	for _, cli := range []string{"github.com/spf13/cobra", "github.com/urfave/cli"} {
		if strings.Contains(content, cli) {
			s.setProjectType(project.TypeCLITool)
		}
	}
}

// detectDotnet probes for .csproj files up to two levels deep.
func (s *scan) detectDotnet() {
	var projects []string
	for _, pattern := range []string{"*.csproj", "*/*.csproj", "src/*/*.csproj"} {
		matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
		if err != nil {
			continue
		}
		projects = append(projects, matches...)
	}
	if len(projects) == 0 {
		return
	}

	s.addLanguage("csharp")
	s.addTech("dotnet")

	for _, p := range projects {
		content, err := readCapped(p)
		if err != nil {
			continue
		}
		if strings.Contains(content, "Microsoft.NET.Sdk.Web") {
			s.result.HasAPI = true
			s.setProjectType(project.TypeAPIService)
		}
	}

	if s.hasCleanArchLayout() {
		s.addArchitecture("clean-architecture")
		s.setProjectType(project.TypeDotnetCleanArch)
	}
}

// hasCleanArchLayout reports whether the conventional Domain/Application
// layer directories exist at the root or under src/.
func (s *scan) hasCleanArchLayout() bool {
	for _, base := range []string{"", "src"} {
		domain := s.dirExists(filepath.Join(base, "Domain")) || s.dirExists(filepath.Join(base, "Core"))
		application := s.dirExists(filepath.Join(base, "Application")) || s.dirExists(filepath.Join(base, "UseCases"))
		if domain && application {
			return true
		}
	}
	return false
}

// detectPython probes requirements.txt, pyproject.toml, and Pipfile.
func (s *scan) detectPython() {
	var content string
	found := false
	for _, name := range []string{"requirements.txt", "pyproject.toml", "Pipfile"} {
		if c, ok := s.readText(name); ok {
			content += "\n" + strings.ToLower(c)
			found = true
		}
	}
	if !found {
		return
	}

	s.addLanguage("python")
	s.addTech("python")

	for _, api := range []string{"django", "flask", "fastapi"} {
		if strings.Contains(content, api) {
			s.addFramework(api)
			s.result.HasAPI = true
			s.setProjectType(project.TypeAPIService)
		}
	}
	for _, cli := range []string{"click", "typer"} {
		if strings.Contains(content, cli) {
			s.setProjectType(project.TypeCLITool)
		}
	}
}

func (s *scan) detectRust() {
	if _, ok := s.readText("Cargo.toml"); ok {
		s.addLanguage("rust")
		s.addTech("rust")
	}
}

func (s *scan) detectJava() {
	var content string
	found := false
	for _, name := range []string{"pom.xml", "build.gradle", "build.gradle.kts"} {
		if c, ok := s.readText(name); ok {
			content += "\n" + strings.ToLower(c)
			found = true
		}
	}
	if !found {
		return
	}

	s.addLanguage("java")
	s.addTech("java")

	if strings.Contains(content, "spring-boot") || strings.Contains(content, "springframework") {
		s.addFramework("spring")
		s.result.HasAPI = true
		s.setProjectType(project.TypeAPIService)
	}
}

func (s *scan) detectRuby() {
	content, ok := s.readText("Gemfile")
	if !ok {
		return
	}
	s.addLanguage("ruby")
	s.addTech("ruby")
	if strings.Contains(content, "rails") {
		s.addFramework("rails")
		s.result.HasAPI = true
		s.setProjectType(project.TypeAPIService)
	}
}

func (s *scan) detectPHP() {
	content, ok := s.readText("composer.json")
	if !ok {
		return
	}
	s.addLanguage("php")
	s.addTech("php")
	if strings.Contains(content, "laravel") {
		s.addFramework("laravel")
		s.result.HasAPI = true
		s.setProjectType(project.TypeAPIService)
	}
}

// detectMonorepo probes for workspace orchestration files.
func (s *scan) detectMonorepo() {
	for _, name := range []string{"pnpm-workspace.yaml", "lerna.json", "turbo.json", "nx.json", "go.work"} {
		if s.fileExists(name) {
			s.setProjectType(project.TypeMonorepo)
			return
		}
	}
}

// detectArchitectureDirs probes for conventional architecture folder names.
func (s *scan) detectArchitectureDirs() {
	if !contains(s.result.Architecture, "clean-architecture") && s.hasCleanArchLayout() {
		s.addArchitecture("clean-architecture")
	}
	if s.anyDirExists("features", "Features", "src/features", "src/Features") {
		s.addArchitecture("vertical-slice")
	}
	if s.anyDirExists("Commands", "src/Commands", "commands") && s.anyDirExists("Queries", "src/Queries", "queries") {
		s.addArchitecture("cqrs")
	}
	if s.anyDirExists("Repositories", "repositories", "src/repositories", "src/Repositories") {
		s.addArchitecture("repository-pattern")
	}
}

// detectFeatureFlags probes for tests, containers, CI, and API descriptions.
func (s *scan) detectFeatureFlags() {
	if s.anyDirExists("test", "tests", "__tests__", "spec") {
		s.result.HasTests = true
	} else if matches, err := filepath.Glob(filepath.Join(s.dir, "*_test.go")); err == nil && len(matches) > 0 {
		s.result.HasTests = true
	}

	for _, name := range []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"} {
		if s.fileExists(name) {
			s.result.HasDocker = true
			break
		}
	}

	if s.anyDirExists(".github/workflows", ".circleci") || s.fileExists(".gitlab-ci.yml") || s.fileExists("azure-pipelines.yml") || s.fileExists("Jenkinsfile") {
		s.result.HasCI = true
	}

	for _, name := range []string{"openapi.yaml", "openapi.yml", "openapi.json", "swagger.json", "swagger.yaml"} {
		if s.fileExists(name) {
			s.result.HasAPI = true
			break
		}
	}
}

// detectExistingClaude lists components already generated into .claude/.
// Purely a directory listing; missing subdirectories are tolerated.
func (s *scan) detectExistingClaude() {
	claudeDir := filepath.Join(s.dir, project.ConfigDirName)
	if info, err := os.Stat(claudeDir); err != nil || !info.IsDir() {
		return
	}
	s.result.ExistingClaude = true

	if entries, err := os.ReadDir(filepath.Join(claudeDir, "skills")); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				s.result.ExistingComponents.Skills = append(s.result.ExistingComponents.Skills, e.Name())
			}
		}
	}
	if entries, err := os.ReadDir(filepath.Join(claudeDir, "agents")); err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
				s.result.ExistingComponents.Agents = append(s.result.ExistingComponents.Agents, strings.TrimSuffix(e.Name(), ".md"))
			}
		}
	}
	if entries, err := os.ReadDir(filepath.Join(claudeDir, "hooks")); err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".sh") {
				s.result.ExistingComponents.Hooks = append(s.result.ExistingComponents.Hooks, strings.TrimSuffix(e.Name(), ".sh"))
			}
		}
	}
}

// finish deduplicates all list-typed fields.
func (s *scan) finish() {
	r := s.result
	r.Languages = dedupe(r.Languages)
	r.Frameworks = dedupe(r.Frameworks)
	r.Databases = dedupe(r.Databases)
	r.Architecture = dedupe(r.Architecture)
	r.TechStack = dedupe(r.TechStack)
	r.ExistingComponents.Skills = dedupe(r.ExistingComponents.Skills)
	r.ExistingComponents.Agents = dedupe(r.ExistingComponents.Agents)
	r.ExistingComponents.Hooks = dedupe(r.ExistingComponents.Hooks)
}

// readJSON reads and parses a JSON file relative to the scan root.
// Returns nil when missing or malformed.
func (s *scan) readJSON(name string) map[string]interface{} {
	content, ok := s.readText(name)
	if !ok {
		return nil
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil
	}
	return parsed
}

// readText reads a file relative to the scan root, capped at maxProbeBytes.
func (s *scan) readText(name string) (string, bool) {
	content, err := readCapped(filepath.Join(s.dir, name))
	if err != nil {
		return "", false
	}
	return content, true
}

func (s *scan) fileExists(name string) bool {
	info, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil && !info.IsDir()
}

func (s *scan) dirExists(name string) bool {
	info, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil && info.IsDir()
}

func (s *scan) anyDirExists(names ...string) bool {
	for _, name := range names {
		if s.dirExists(name) {
			return true
		}
	}
	return false
}

// dependencyNames merges the dependencies and devDependencies maps of a
// parsed package.json into a name set.
func dependencyNames(pkg map[string]interface{}) map[string]bool {
	names := make(map[string]bool)
	for _, key := range []string{"dependencies", "devDependencies"} {
		deps, ok := pkg[key].(map[string]interface{})
		if !ok {
			continue
		}
		for name := range deps {
			names[name] = true
		}
	}
	return names
}

// frameworkFromModule derives a short framework name from a Go module path.
func frameworkFromModule(module string) string {
	base := filepath.Base(module)
	return strings.TrimPrefix(base, "go-")
}

// readCapped reads at most maxProbeBytes from a file.
func readCapped(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxProbeBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
