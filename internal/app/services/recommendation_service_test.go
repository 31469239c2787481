package services

import (
	"reflect"
	"testing"

	"github.com/savi/placement-portal/internal/app/models"
)

func TestScoreCompany(t *testing.T) {
	company := &models.Company{
		JobTitle:       "Backend Developer Intern",
		JobDescription: "Work on distributed systems and APIs.",
		Requirements:   "Go, PostgreSQL, Docker, REST APIs",
	}

	tests := []struct {
		name      string
		skills    []string
		interests []string
		want      int
	}{
		{
			name: "empty profile scores zero",
			want: 0,
		},
		{
			name:   "all skills matched",
			skills: []string{"Go", "Docker"},
			want:   100,
		},
		{
			name:   "half the skills matched",
			skills: []string{"Go", "Kubernetes"},
			want:   50,
		},
		{
			name:      "interests weigh half of skills",
			skills:    []string{"Rust"},
			interests: []string{"backend", "frontend"},
			// 0*2 + 1*1 matched out of 2+2 total weight.
			want: 25,
		},
		{
			name:      "matching is case insensitive",
			skills:    []string{"pOsTgReSQL"},
			interests: []string{"DISTRIBUTED SYSTEMS"},
			want:      100,
		},
		{
			name:   "blank entries never match",
			skills: []string{"", "  "},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreCompany(tt.skills, tt.interests, company); got != tt.want {
				t.Errorf("ScoreCompany(%v, %v) = %d, want %d", tt.skills, tt.interests, got, tt.want)
			}
		})
	}
}

func TestRequirementTokens(t *testing.T) {
	got := requirementTokens("Go, PostgreSQL; REST/gRPC\nCI and Docker")
	want := []string{"postgresql", "rest", "grpc", "and", "docker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("requirementTokens = %v, want %v", got, want)
	}

	if tokens := requirementTokens(""); len(tokens) != 0 {
		t.Errorf("requirementTokens(\"\") = %v, want empty", tokens)
	}
}
