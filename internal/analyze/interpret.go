package analyze

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/analysis.schema.json
var analysisSchemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// fencedJSON matches the first ```json fenced block in analyzer output.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n\\s*```")

// Interpret extracts and validates the fenced JSON block from raw analyzer
// output. When the block is absent, malformed, or fails schema validation,
// the whole output is returned as opaque text with Structured false.
func Interpret(raw string) *Analysis {
	fallback := &Analysis{Raw: raw}

	match := fencedJSON.FindStringSubmatch(raw)
	if match == nil {
		return fallback
	}
	payload := strings.TrimSpace(match[1])

	if err := validateAnalysis([]byte(payload)); err != nil {
		return fallback
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return fallback
	}

	analysis.Raw = raw
	analysis.Structured = true
	return &analysis
}

// getSchema compiles the embedded analysis schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(analysisSchemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("analysis.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("analysis.schema.json")
	})
	return compiledSchema, compileErr
}

func validateAnalysis(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}
