package recommend

import (
	"fmt"

	"github.com/claudekit-labs/claudekit/internal/project"
)

// Rule pairs a condition over a project context with the components it
// contributes when the condition holds. Rules are immutable once declared
// and evaluated in declaration order.
type Rule struct {
	// Name identifies the rule in diagnostics.
	Name string

	// Condition decides whether the rule applies. A nil Condition never
	// matches unless Always is set.
	Condition func(project.Context) bool

	// Always marks the unconditional sentinel rule: it applies to every
	// context and its Reason is excluded from the collected reasons.
	Always bool

	Skills []string
	Agents []string
	Hooks  []string

	// Reason is the human-readable justification shown to the user.
	Reason string
}

// Result holds the deduplicated component sets and the ordered, deduplicated
// reasons produced by an evaluation run.
type Result struct {
	Skills  []string `json:"skills"`
	Agents  []string `json:"agents"`
	Hooks   []string `json:"hooks"`
	Reasons []string `json:"reasons"`
}

// RuleFailure records a rule whose condition panicked during evaluation.
// Failures are diagnostic only; they never abort the batch.
type RuleFailure struct {
	Rule string
	Err  error
}

// Evaluate runs every rule against ctx in declaration order and unions the
// contributions of matching rules. A condition that panics is recorded as a
// RuleFailure and skipped; evaluation of the remaining rules continues.
// Component names are deduplicated; reasons keep first-occurrence order and
// are deduplicated by exact string.
func Evaluate(rules []Rule, ctx project.Context) (*Result, []RuleFailure) {
	result := &Result{}
	var failures []RuleFailure

	seenSkills := make(map[string]bool)
	seenAgents := make(map[string]bool)
	seenHooks := make(map[string]bool)
	seenReasons := make(map[string]bool)

	for _, rule := range rules {
		matched, err := evalCondition(rule, ctx)
		if err != nil {
			failures = append(failures, RuleFailure{Rule: rule.Name, Err: err})
			continue
		}
		if !matched {
			continue
		}

		result.Skills = appendUnique(result.Skills, seenSkills, rule.Skills)
		result.Agents = appendUnique(result.Agents, seenAgents, rule.Agents)
		result.Hooks = appendUnique(result.Hooks, seenHooks, rule.Hooks)

		if !rule.Always && rule.Reason != "" && !seenReasons[rule.Reason] {
			seenReasons[rule.Reason] = true
			result.Reasons = append(result.Reasons, rule.Reason)
		}
	}

	return result, failures
}

// evalCondition evaluates a single rule's condition, converting a panic
// (e.g., from a condition indexing data the context does not carry) into an
// error instead of letting it propagate.
func evalCondition(rule Rule, ctx project.Context) (matched bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			matched = false
			err = fmt.Errorf("condition panicked: %v", p)
		}
	}()

	if rule.Always {
		return true, nil
	}
	if rule.Condition == nil {
		return false, nil
	}
	return rule.Condition(ctx), nil
}

// appendUnique appends the names not yet present in seen, preserving order.
func appendUnique(dst []string, seen map[string]bool, names []string) []string {
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			dst = append(dst, name)
		}
	}
	return dst
}
