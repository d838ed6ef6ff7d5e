package analyze

import "testing"

const validAnalyzerOutput = "Looking at the project...\n\n```json\n{\n  \"projectSummary\": \"A .NET clean architecture API\",\n  \"techStack\": [\"dotnet\"],\n  \"architecture\": [\"clean-architecture\"],\n  \"recommendations\": [\n    {\"kind\": \"skill\", \"name\": \"security-auditor\", \"reason\": \"auth endpoints present\"}\n  ],\n  \"customComponentSuggestions\": [\n    {\"kind\": \"hook\", \"name\": \"migration-guard\"}\n  ]\n}\n```\n\nDone.\n"

func TestInterpretFencedJSON(t *testing.T) {
	analysis := Interpret(validAnalyzerOutput)

	if !analysis.Structured {
		t.Fatal("Structured = false, want true")
	}
	if analysis.ProjectSummary != "A .NET clean architecture API" {
		t.Errorf("ProjectSummary = %q", analysis.ProjectSummary)
	}
	if len(analysis.Recommendations) != 1 || analysis.Recommendations[0].Name != "security-auditor" {
		t.Errorf("Recommendations = %+v", analysis.Recommendations)
	}
	if len(analysis.CustomComponentSuggestions) != 1 {
		t.Errorf("CustomComponentSuggestions = %+v", analysis.CustomComponentSuggestions)
	}
	if analysis.Raw != validAnalyzerOutput {
		t.Error("Raw should carry the full output even when structured")
	}
}

func TestInterpretNoFencedBlock(t *testing.T) {
	raw := "The project looks like a Go CLI. I recommend adding a code reviewer.\n"
	analysis := Interpret(raw)

	if analysis.Structured {
		t.Error("Structured = true, want false")
	}
	if analysis.Raw != raw {
		t.Errorf("Raw = %q", analysis.Raw)
	}
}

func TestInterpretMalformedJSON(t *testing.T) {
	raw := "```json\n{not json\n```\n"
	analysis := Interpret(raw)

	if analysis.Structured {
		t.Error("malformed JSON should degrade to opaque text")
	}
	if analysis.Raw != raw {
		t.Errorf("Raw = %q", analysis.Raw)
	}
}

func TestInterpretSchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing projectSummary",
			raw:  "```json\n{\"techStack\": [\"go\"]}\n```\n",
		},
		{
			name: "unknown suggestion kind",
			raw:  "```json\n{\"projectSummary\": \"x\", \"recommendations\": [{\"kind\": \"wizard\", \"name\": \"n\"}]}\n```\n",
		},
		{
			name: "suggestion missing name",
			raw:  "```json\n{\"projectSummary\": \"x\", \"recommendations\": [{\"kind\": \"skill\"}]}\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := Interpret(tt.raw)
			if analysis.Structured {
				t.Error("schema-invalid payload should degrade to opaque text")
			}
		})
	}
}

func TestInterpretUnknownTopLevelFieldsTolerated(t *testing.T) {
	raw := "```json\n{\"projectSummary\": \"x\", \"confidence\": 0.9}\n```\n"
	analysis := Interpret(raw)
	if !analysis.Structured {
		t.Error("unknown top-level fields should be tolerated")
	}
}

func TestInterpretUsesFirstFencedBlock(t *testing.T) {
	raw := "```json\n{\"projectSummary\": \"first\"}\n```\nand later\n```json\n{\"projectSummary\": \"second\"}\n```\n"
	analysis := Interpret(raw)
	if !analysis.Structured || analysis.ProjectSummary != "first" {
		t.Errorf("analysis = %+v, want the first block", analysis)
	}
}
