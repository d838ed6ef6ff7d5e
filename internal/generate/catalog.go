package generate

import "fmt"

// skillMeta describes a known skill's generated content.
type skillMeta struct {
	Description string
	Guidance    string
}

// agentMeta describes a known agent's frontmatter.
type agentMeta struct {
	Description string
	Tools       []string
	Model       string
	Guidance    string
}

// hookMeta describes a known hook: which event it binds to in settings.json
// and what its script checks.
type hookMeta struct {
	Description string
	Event       string
	Matcher     string
	Check       string
}

var defaultAgentTools = []string{"Read", "Grep", "Glob"}

// skillCatalog maps known skill names to their generated content. Names not
// listed here are generated with a generic description.
var skillCatalog = map[string]skillMeta{
	"code-reviewer":            {Description: "Review code changes for correctness, clarity, and style", Guidance: "Review diffs hunk by hunk. Flag correctness issues first, style second."},
	"refactoring-advisor":      {Description: "Suggest refactorings that respect the project's layer boundaries", Guidance: "Propose the smallest refactoring that removes the smell. Never move code across layers in the same change."},
	"naming-conventions":       {Description: "Enforce the project's naming conventions across layers", Guidance: "Check new identifiers against the conventions below before approving."},
	"security-auditor":         {Description: "Audit changes for common vulnerability patterns", Guidance: "Check inputs for injection, outputs for leaks, and authentication paths for bypasses."},
	"dependency-auditor":       {Description: "Review dependency additions and upgrades for risk", Guidance: "For every new dependency, note its maintenance state and transitive surface."},
	"api-design-reviewer":      {Description: "Review API surface changes for consistency and compatibility", Guidance: "Compare new endpoints against existing conventions. Flag breaking changes explicitly."},
	"test-generator":           {Description: "Generate tests for new and changed code paths", Guidance: "Prefer table-driven tests. Cover the error paths, not just the happy path."},
	"doc-writer":               {Description: "Write and update documentation alongside code changes", Guidance: "Update docs in the same change as the code they describe."},
	"migration-reviewer":       {Description: "Review schema migrations for safety and reversibility", Guidance: "Every migration needs a rollback path. Flag destructive operations."},
	"performance-profiler":     {Description: "Identify likely performance regressions before they ship", Guidance: "Ask for a benchmark before accepting an optimization."},
	"a11y-checker":             {Description: "Check UI changes for accessibility regressions", Guidance: "Verify focus order, contrast, and screen-reader labels on every UI change."},
	"plain-language-explainer": {Description: "Explain technical changes for a non-technical audience", Guidance: "Summarize what changed and why it matters, without jargon."},
	"dotnet-conventions":       {Description: "Apply C# and .NET project conventions", Guidance: "Follow the project's analyzer rules; prefer framework idioms over custom helpers."},
	"react-patterns":           {Description: "Apply React component and hook patterns", Guidance: "Prefer composition over prop drilling; keep effects minimal."},
	"angular-patterns":         {Description: "Apply Angular module and signal patterns", Guidance: "Use standalone components and signals for new code."},
	"go-idioms":                {Description: "Apply standard Go idioms", Guidance: "Accept interfaces, return structs. Wrap errors with context."},
	"python-idioms":            {Description: "Apply standard Python idioms", Guidance: "Prefer the standard library; type-annotate public functions."},
	"feature-slicer":           {Description: "Scaffold and review vertical feature slices", Guidance: "Keep each slice self-contained: handler, logic, and tests together."},
	"cqrs-modeler":             {Description: "Model commands and queries as separate paths", Guidance: "Commands mutate, queries read. Never both in one handler."},
	"event-store-advisor":      {Description: "Guide event schema design and evolution", Guidance: "Events are immutable. Version them; never edit a published schema."},
	"data-access-reviewer":     {Description: "Review repository implementations and query usage", Guidance: "Keep queries behind the repository boundary; no leaking ORM types."},
	"module-boundary-advisor":  {Description: "Guard module boundaries inside the monolith", Guidance: "Modules communicate through published interfaces only."},
	"ux-copy-reviewer":         {Description: "Review user-facing copy for tone and clarity", Guidance: "Read every user-facing string aloud; cut what does not help."},
}

// agentCatalog maps known agent names to their frontmatter.
var agentCatalog = map[string]agentMeta{
	"architecture-guardian":     {Description: "Watches changes for dependency-rule violations between layers", Tools: defaultAgentTools, Model: "sonnet", Guidance: "Inspect import graphs on every structural change. Inner layers must not reference outer layers."},
	"security-reviewer":         {Description: "Reviews changes with a security-first lens", Tools: defaultAgentTools, Model: "sonnet", Guidance: "Assume hostile input everywhere. Trace tainted data to its sinks."},
	"api-docs-writer":           {Description: "Keeps API documentation synchronized with the implementation", Tools: []string{"Read", "Grep", "Glob", "Write"}, Model: "haiku", Guidance: "Regenerate endpoint docs whenever a handler signature changes."},
	"event-flow-reviewer":       {Description: "Reviews command/query separation and event flows", Tools: defaultAgentTools, Model: "sonnet", Guidance: "Follow each command to its events and each event to its consumers."},
	"service-boundary-reviewer": {Description: "Reviews cross-service contracts and boundaries", Tools: defaultAgentTools, Model: "sonnet", Guidance: "Every cross-service call is a contract. Check both sides."},
	"docs-maintainer":           {Description: "Keeps project documentation current", Tools: []string{"Read", "Grep", "Glob", "Write"}, Model: "haiku", Guidance: "Stale docs are worse than no docs. Update or delete."},
}

// hookCatalog maps known hook names to their event binding and script check.
var hookCatalog = map[string]hookMeta{
	"layer-violation-blocker": {
		Description: "Blocks edits that introduce a dependency from an inner layer to an outer layer",
		Event:       "PreToolUse",
		Matcher:     "Write|Edit",
		Check: `if echo "$FILE_PATH" | grep -qE '(Domain|Core)/' && grep -qE 'using .*(Infrastructure|Web|Api)' "$FILE_PATH" 2>/dev/null; then
  echo "Layer violation: inner layer referencing an outer layer" >&2
  exit 2
fi`,
	},
	"secrets-scanner": {
		Description: "Blocks writes that appear to introduce a committed secret",
		Event:       "PreToolUse",
		Matcher:     "Write|Edit",
		Check: `if grep -qE '(api[_-]?key|secret|password)[[:space:]]*[:=][[:space:]]*["'"'"'][A-Za-z0-9+/]{16,}' "$FILE_PATH" 2>/dev/null; then
  echo "Possible secret detected in $FILE_PATH" >&2
  exit 2
fi`,
	},
	"coverage-gate": {
		Description: "Reminds about missing tests after source edits",
		Event:       "PostToolUse",
		Matcher:     "Write|Edit",
		Check: `case "$FILE_PATH" in
  *_test.go|*.test.*|*spec*) ;;
  *) echo "Reminder: update tests for $FILE_PATH" ;;
esac`,
	},
	"schema-change-guard": {
		Description: "Blocks destructive statements in migration files",
		Event:       "PreToolUse",
		Matcher:     "Write|Edit",
		Check: `if echo "$FILE_PATH" | grep -qi migration && grep -qiE 'drop (table|column)' "$FILE_PATH" 2>/dev/null; then
  echo "Destructive migration statement detected" >&2
  exit 2
fi`,
	},
	"breaking-change-detector": {
		Description: "Warns when an API contract file changes",
		Event:       "PostToolUse",
		Matcher:     "Write|Edit",
		Check: `case "$FILE_PATH" in
  *openapi*|*swagger*|*.proto) echo "API contract changed: review for breaking changes" ;;
esac`,
	},
	"contract-drift-checker": {
		Description: "Warns when a shared contract changes without a version bump",
		Event:       "PostToolUse",
		Matcher:     "Write|Edit",
		Check: `case "$FILE_PATH" in
  *contracts/*|*.proto) echo "Shared contract changed: bump the contract version" ;;
esac`,
	},
}

// lookupSkill returns metadata for a skill name, with a generic fallback.
func lookupSkill(name string) skillMeta {
	if meta, ok := skillCatalog[name]; ok {
		return meta
	}
	return skillMeta{
		Description: fmt.Sprintf("Project skill: %s", name),
		Guidance:    "Describe when this skill applies and how to use it.",
	}
}

// lookupAgent returns metadata for an agent name, with a generic fallback.
func lookupAgent(name string) agentMeta {
	if meta, ok := agentCatalog[name]; ok {
		return meta
	}
	return agentMeta{
		Description: fmt.Sprintf("Project agent: %s", name),
		Tools:       defaultAgentTools,
		Model:       "sonnet",
		Guidance:    "Describe this agent's responsibility.",
	}
}

// lookupHook returns metadata for a hook name, with a passive fallback.
func lookupHook(name string) hookMeta {
	if meta, ok := hookCatalog[name]; ok {
		return meta
	}
	return hookMeta{
		Description: fmt.Sprintf("Project hook: %s", name),
		Event:       "PreToolUse",
		Matcher:     "Write|Edit",
		Check:       `: # add checks here`,
	}
}
