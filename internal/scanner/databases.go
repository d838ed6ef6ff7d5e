package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

// databaseKeywords maps connection-string substrings to database names.
// Checked against lowercased file content.
var databaseKeywords = []struct {
	keyword  string
	database string
}{
	{"postgresql", "postgresql"},
	{"postgres", "postgresql"},
	{"mysql", "mysql"},
	{"mariadb", "mysql"},
	{"mongodb", "mongodb"},
	{"mongo://", "mongodb"},
	{"redis", "redis"},
	{"sqlite", "sqlite"},
	{"sqlserver", "sqlserver"},
	{"mssql", "sqlserver"},
	{"data source=", "sqlserver"},
}

// skippedDirs are never descended into while collecting config files.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".claude":      true,
	"vendor":       true,
	"bin":          true,
	"obj":          true,
	"dist":         true,
	"build":        true,
}

// detectDatabases searches a capped number of configuration-like files for
// connection-string keywords. Unreadable files are skipped. Detected
// databases are added to both Databases and TechStack.
func (s *scan) detectDatabases() {
	limit := s.opts.ConfigFileCap
	if limit <= 0 {
		limit = DefaultConfigFileCap
	}

	files := collectConfigFiles(s.dir, limit)
	for _, path := range files {
		for _, db := range probeFile(path) {
			s.result.Databases = append(s.result.Databases, db)
			s.addTech(db)
		}
	}

	// A compose file declaring several services is a microservices signal.
	if services := s.composeServices(); len(services) >= 3 {
		s.addArchitecture("microservices")
	}
}

// collectConfigFiles walks dir (bounded depth, skipping dependency and build
// directories) and returns up to max configuration-like file paths.
func collectConfigFiles(dir string, max int) []string {
	var files []string

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if len(files) >= max {
			return filepath.SkipAll
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			// Bounded depth: root plus two levels.
			if strings.Count(rel, string(filepath.Separator)) >= 2 {
				return filepath.SkipDir
			}
			return nil
		}

		if isConfigLike(d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files
}

// isConfigLike reports whether a file name looks like configuration worth
// probing for connection strings.
func isConfigLike(name string) bool {
	lower := strings.ToLower(name)

	if lower == ".env" || strings.HasPrefix(lower, ".env.") {
		return true
	}
	if strings.HasPrefix(lower, "appsettings") && strings.HasSuffix(lower, ".json") {
		return true
	}
	if strings.HasPrefix(lower, "docker-compose") || strings.HasPrefix(lower, "compose.") {
		return true
	}
	if strings.HasPrefix(lower, "application") &&
		(strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".properties")) {
		return true
	}
	switch lower {
	case "config.json", "config.yml", "config.yaml", "database.yml", "settings.py":
		return true
	}
	return strings.HasSuffix(lower, ".properties") || strings.HasSuffix(lower, ".ini")
}

// probeFile reads one config file and returns the databases it mentions.
func probeFile(path string) []string {
	content, err := readCapped(path)
	if err != nil {
		return nil
	}

	// .env-style files: parse with godotenv and probe values only, so a
	// commented-out connection string does not count.
	base := strings.ToLower(filepath.Base(path))
	if base == ".env" || strings.HasPrefix(base, ".env.") {
		values, err := godotenv.Unmarshal(content)
		if err != nil {
			return matchKeywords(strings.ToLower(content))
		}
		var joined strings.Builder
		for _, v := range values {
			joined.WriteString(strings.ToLower(v))
			joined.WriteByte('\n')
		}
		return matchKeywords(joined.String())
	}

	return matchKeywords(strings.ToLower(content))
}

// matchKeywords returns the unique database names whose keywords appear.
func matchKeywords(content string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, kw := range databaseKeywords {
		if seen[kw.database] {
			continue
		}
		if strings.Contains(content, kw.keyword) {
			seen[kw.database] = true
			found = append(found, kw.database)
		}
	}
	return found
}

// composeServices parses the first docker-compose file found and returns its
// service names. A malformed file yields nil.
func (s *scan) composeServices() []string {
	for _, name := range []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"} {
		content, ok := s.readText(name)
		if !ok {
			continue
		}
		var compose struct {
			Services map[string]interface{} `yaml:"services"`
		}
		if err := yaml.Unmarshal([]byte(content), &compose); err != nil {
			return nil
		}
		names := make([]string, 0, len(compose.Services))
		for svc := range compose.Services {
			names = append(names, svc)
		}
		return names
	}
	return nil
}
