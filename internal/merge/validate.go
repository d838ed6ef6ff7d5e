package merge

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// componentNamePattern constrains component names to lowercase kebab-case,
// matching the directory and file names the generator produces.
var componentNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateStrategy checks that s names a known merge strategy.
func ValidateStrategy(s string) error {
	return validation.Validate(s,
		validation.Required,
		validation.In(
			string(StrategyMerge),
			string(StrategyReplace),
			string(StrategyBackupReplace),
			string(StrategyCancel),
		),
	)
}

// ValidateComponentName checks that a user-supplied component name is safe
// to use as a file or directory name.
func ValidateComponentName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, 64),
		validation.Match(componentNamePattern),
	)
}

// ValidateRequested validates every component name in a requested set.
func ValidateRequested(r Requested) error {
	for _, list := range [][]string{r.Skills, r.Agents, r.Hooks} {
		for _, name := range list {
			if err := ValidateComponentName(name); err != nil {
				return fmt.Errorf("component name %q: %w", name, err)
			}
		}
	}
	return nil
}
