package project

import "testing"

func TestContextTagHelpers(t *testing.T) {
	ctx := Context{
		TechStack:    []string{"dotnet"},
		Architecture: []string{"clean-architecture", "cqrs"},
		Concerns:     []string{"security"},
	}

	if !ctx.HasArchitecture("cqrs") || ctx.HasArchitecture("vertical-slice") {
		t.Error("HasArchitecture mismatch")
	}
	if !ctx.HasConcern("security") || ctx.HasConcern("performance") {
		t.Error("HasConcern mismatch")
	}
	if !ctx.HasTech("dotnet") || ctx.HasTech("go") {
		t.Error("HasTech mismatch")
	}
	if (Context{}).HasConcern("security") {
		t.Error("empty context should carry no tags")
	}
}

func TestScanResultContext(t *testing.T) {
	result := ScanResult{
		ProjectType:  TypeAPIService,
		TechStack:    []string{"go"},
		Architecture: []string{"repository-pattern"},
		HasAPI:       true,
	}

	ctx := result.Context()

	if ctx.ProjectType != TypeAPIService {
		t.Errorf("ProjectType = %q", ctx.ProjectType)
	}
	if !ctx.HasTech("go") || !ctx.HasArchitecture("repository-pattern") || !ctx.HasAPI {
		t.Errorf("context = %+v", ctx)
	}
	if ctx.TargetUsers != AudienceDevelopers {
		t.Errorf("TargetUsers = %q, want the developers default", ctx.TargetUsers)
	}
	// Concerns are user-supplied, never inferred from a scan.
	if len(ctx.Concerns) != 0 {
		t.Errorf("Concerns = %v, want empty", ctx.Concerns)
	}
}
