package generate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/claudekit-labs/claudekit/internal/configstore"
)

//go:embed schema/settings.schema.json
var settingsSchemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// MarshalSettings encodes settings as indented JSON with a trailing newline.
func MarshalSettings(settings *configstore.Settings) ([]byte, error) {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// getSchema compiles the embedded settings schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(settingsSchemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("settings.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("settings.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateSettings checks encoded settings against the embedded schema and
// returns human-readable issues. An empty slice means valid.
func validateSettings(data []byte) []string {
	schema, err := getSchema()
	if err != nil {
		return []string{fmt.Sprintf("settings schema unavailable: %v", err)}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf("settings.json is not valid JSON: %v", err)}
	}

	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return []string{fmt.Sprintf("settings validation: %v", err)}
		}
		var issues []string
		for _, cause := range flattenCauses(validationErr) {
			if cause.ErrorKind == nil {
				continue
			}
			issues = append(issues, fmt.Sprintf("settings.json: %s", cause.ErrorKind.LocalizedString(printer)))
		}
		if len(issues) == 0 {
			issues = append(issues, fmt.Sprintf("settings.json: %v", validationErr))
		}
		return issues
	}
	return nil
}

// flattenCauses walks the validation error tree and returns the leaves,
// which carry the specific property-level messages.
func flattenCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, flattenCauses(cause)...)
	}
	return leaves
}
