package recommend

import "github.com/claudekit-labs/claudekit/internal/project"

// DefaultRules returns the production rule table. The returned slice is
// freshly allocated on each call so callers can safely reorder or extend it.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "baseline",
			Always: true,
			Skills: []string{"code-reviewer"},
			Reason: "Baseline review support for every project",
		},
		{
			Name:      "clean-architecture",
			Condition: func(c project.Context) bool { return c.HasArchitecture("clean-architecture") },
			Skills:    []string{"refactoring-advisor", "naming-conventions"},
			Agents:    []string{"architecture-guardian"},
			Hooks:     []string{"layer-violation-blocker"},
			Reason:    "Clean architecture layering calls for dependency-rule enforcement",
		},
		{
			Name:      "vertical-slice",
			Condition: func(c project.Context) bool { return c.HasArchitecture("vertical-slice") },
			Skills:    []string{"feature-slicer"},
			Reason:    "Vertical slices benefit from per-feature scaffolding guidance",
		},
		{
			Name:      "cqrs",
			Condition: func(c project.Context) bool { return c.HasArchitecture("cqrs") },
			Skills:    []string{"cqrs-modeler"},
			Agents:    []string{"event-flow-reviewer"},
			Reason:    "CQRS separates command and query paths worth reviewing independently",
		},
		{
			Name:      "event-sourcing",
			Condition: func(c project.Context) bool { return c.HasArchitecture("event-sourcing") },
			Skills:    []string{"event-store-advisor"},
			Reason:    "Event-sourced systems need careful event schema evolution",
		},
		{
			Name:      "repository-pattern",
			Condition: func(c project.Context) bool { return c.HasArchitecture("repository-pattern") },
			Skills:    []string{"data-access-reviewer"},
			Reason:    "Repository abstractions benefit from data-access review",
		},
		{
			Name:      "microservices",
			Condition: func(c project.Context) bool { return c.HasArchitecture("microservices") },
			Agents:    []string{"service-boundary-reviewer"},
			Hooks:     []string{"contract-drift-checker"},
			Reason:    "Microservices need service-boundary and contract oversight",
		},
		{
			Name:      "modular-monolith",
			Condition: func(c project.Context) bool { return c.HasArchitecture("modular-monolith") },
			Skills:    []string{"module-boundary-advisor"},
			Reason:    "Module boundaries in a monolith erode without active guidance",
		},
		{
			Name:      "security",
			Condition: func(c project.Context) bool { return c.HasConcern("security") },
			Skills:    []string{"security-auditor", "dependency-auditor"},
			Agents:    []string{"security-reviewer"},
			Hooks:     []string{"secrets-scanner"},
			Reason:    "Security concern: audit code, dependencies, and committed secrets",
		},
		{
			Name:      "performance",
			Condition: func(c project.Context) bool { return c.HasConcern("performance") },
			Skills:    []string{"performance-profiler"},
			Reason:    "Performance concern: profile before optimizing",
		},
		{
			Name:      "accessibility",
			Condition: func(c project.Context) bool { return c.HasConcern("accessibility") },
			Skills:    []string{"a11y-checker"},
			Reason:    "Accessibility concern: check WCAG conformance during review",
		},
		{
			Name:      "data-integrity",
			Condition: func(c project.Context) bool { return c.HasConcern("data-integrity") },
			Skills:    []string{"migration-reviewer"},
			Hooks:     []string{"schema-change-guard"},
			Reason:    "Data integrity concern: guard schema changes and migrations",
		},
		{
			Name:      "test-coverage",
			Condition: func(c project.Context) bool { return c.HasConcern("test-coverage") },
			Skills:    []string{"test-generator"},
			Hooks:     []string{"coverage-gate"},
			Reason:    "Test coverage concern: generate tests and gate on coverage",
		},
		{
			Name:      "documentation",
			Condition: func(c project.Context) bool { return c.HasConcern("documentation") },
			Skills:    []string{"doc-writer"},
			Agents:    []string{"docs-maintainer"},
			Reason:    "Documentation concern: keep docs in step with the code",
		},
		{
			Name:      "user-experience",
			Condition: func(c project.Context) bool { return c.HasConcern("user-experience") },
			Skills:    []string{"ux-copy-reviewer"},
			Reason:    "User experience concern: review user-facing copy and flows",
		},
		{
			Name:      "api",
			Condition: func(c project.Context) bool { return c.HasAPI },
			Skills:    []string{"api-design-reviewer"},
			Agents:    []string{"api-docs-writer"},
			Hooks:     []string{"breaking-change-detector"},
			Reason:    "API surface detected: review design and catch breaking changes",
		},
		{
			Name:      "dotnet",
			Condition: func(c project.Context) bool { return c.HasTech("dotnet") },
			Skills:    []string{"dotnet-conventions"},
			Reason:    ".NET stack: apply C# and .NET conventions",
		},
		{
			Name:      "react",
			Condition: func(c project.Context) bool { return c.HasTech("react") },
			Skills:    []string{"react-patterns"},
			Reason:    "React stack: apply component and hook patterns",
		},
		{
			Name:      "angular",
			Condition: func(c project.Context) bool { return c.HasTech("angular") },
			Skills:    []string{"angular-patterns"},
			Reason:    "Angular stack: apply module and signal patterns",
		},
		{
			Name:      "go",
			Condition: func(c project.Context) bool { return c.HasTech("go") },
			Skills:    []string{"go-idioms"},
			Reason:    "Go stack: apply standard Go idioms",
		},
		{
			Name:      "python",
			Condition: func(c project.Context) bool { return c.HasTech("python") },
			Skills:    []string{"python-idioms"},
			Reason:    "Python stack: apply standard Python idioms",
		},
		{
			Name: "non-technical-audience",
			Condition: func(c project.Context) bool {
				return c.TargetUsers == project.AudienceNonTechnical || c.TargetUsers == project.AudienceMixed
			},
			Skills: []string{"plain-language-explainer"},
			Reason: "Non-technical audience: explain changes in plain language",
		},
	}
}
