package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/skillscout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGaps(t *testing.T) {
	assert.Equal(t, []string{"rag", "vector-db"}, parseGaps("rag, vector-db"))
	assert.Equal(t, []string{"docker"}, parseGaps(" docker ,, "))
	assert.Empty(t, parseGaps(""))
	assert.Empty(t, parseGaps(" , ,"))
}

func TestParseSkills(t *testing.T) {
	skills := parseSkills("python:advanced, go, sql : beginner")

	require.Len(t, skills, 3)
	assert.Equal(t, types.KnownSkill{Name: "python", Proficiency: "advanced"}, skills[0])
	assert.Equal(t, types.KnownSkill{Name: "go"}, skills[1])
	assert.Equal(t, types.KnownSkill{Name: "sql", Proficiency: "beginner"}, skills[2])
}

func TestParseSkills_Empty(t *testing.T) {
	assert.Empty(t, parseSkills(""))
}

func TestMatchDecision(t *testing.T) {
	options := []types.DecisionOption{
		{Value: types.DecisionRefine, Label: "Refine"},
		{Value: types.DecisionRelaxThreshold, Label: "Relax"},
		{Value: types.DecisionUseFallback, Label: "Catalog"},
	}

	tests := []struct {
		input   string
		want    types.DecisionValue
		wantErr bool
	}{
		{input: "1", want: types.DecisionRefine},
		{input: " 3 ", want: types.DecisionUseFallback},
		{input: "relax_threshold", want: types.DecisionRelaxThreshold},
		{input: "0", wantErr: true},
		{input: "4", wantErr: true},
		{input: "lower_stars", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := matchDecision(tt.input, options)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestMatchDecision_ValueNotOnMenu(t *testing.T) {
	// A valid decision value that the current menu does not offer.
	options := []types.DecisionOption{
		{Value: types.DecisionUseFallback, Label: "Catalog"},
	}

	_, err := matchDecision("refine", options)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not on the menu")
}

func TestPromptDecision_ReadsMenuNumber(t *testing.T) {
	options := []types.DecisionOption{
		{Value: types.DecisionRefine, Label: "Refine", Description: "new angles"},
		{Value: types.DecisionUseFallback, Label: "Catalog"},
	}

	var out strings.Builder
	got, err := promptDecision(strings.NewReader("2\n"), &out, "too few results", options)

	require.NoError(t, err)
	assert.Equal(t, types.DecisionUseFallback, got)
	assert.Contains(t, out.String(), "YOUR CALL")
	assert.Contains(t, out.String(), "too few results")
	assert.Contains(t, out.String(), "1. Refine")
	assert.Contains(t, out.String(), "new angles")
}

func TestPromptDecision_EmptyInput(t *testing.T) {
	var out strings.Builder
	_, err := promptDecision(strings.NewReader(""), &out, "reason", nil)
	assert.Error(t, err)
}

func TestSaveSuspended_RoundTrips(t *testing.T) {
	state := types.NewRetryState(500)
	state.Attempt = 1
	state.IssuedQueries = []string{"rag tutorial"}

	result := types.NeedsDecision(
		[]types.DecisionOption{{Value: types.DecisionRefine, Label: "Refine"}},
		"empty: search returned no candidates",
		state,
	)

	statePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, saveSuspended(result, statePath))

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)

	restored, err := types.UnmarshalState(data)
	require.NoError(t, err)
	assert.Equal(t, state.ID, restored.ID)
	assert.Equal(t, 1, restored.Attempt)
	assert.Equal(t, []string{"rag tutorial"}, restored.IssuedQueries)
}

func TestSaveSuspended_RequiresPath(t *testing.T) {
	result := types.NeedsDecision(nil, "reason", types.NewRetryState(500))

	err := saveSuspended(result, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "state-file")
}

func TestLoadConfig_NoFileUsesEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SKILLSCOUT_PROXY", "")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.GitHubToken)
}
