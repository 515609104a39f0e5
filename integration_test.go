//go:build integration
// +build integration

package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/themobileprof/formpilot/internal/analytics"
	"github.com/themobileprof/formpilot/internal/fixtures"
	"github.com/themobileprof/formpilot/internal/mocks"
	"github.com/themobileprof/formpilot/internal/questionnaire"
	"github.com/themobileprof/formpilot/internal/sessionlog"
	"github.com/themobileprof/formpilot/internal/store"
	"github.com/themobileprof/formpilot/internal/ui"
	"github.com/themobileprof/formpilot/pkg/models"
)

// TestEndToEndSession imports the demo questionnaire, runs a scripted
// session, and checks the persisted response and its analytics.
func TestEndToEndSession(t *testing.T) {
	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "formpilot.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer st.Close()

	demo, err := fixtures.Demo()
	if err != nil {
		t.Fatalf("Failed to load demo: %v", err)
	}
	if lint := questionnaire.Lint(demo); !lint.IsValid {
		t.Fatalf("Demo failed lint: %+v", lint.Errors)
	}
	if err := st.ImportQuestionnaire(demo); err != nil {
		t.Fatalf("Failed to import demo: %v", err)
	}

	loaded, err := st.GetQuestionnaire(demo.ID)
	if err != nil {
		t.Fatalf("Failed to load questionnaire: %v", err)
	}

	// A satisfied customer: satisfaction 5 hides the complaint question
	prompter := mocks.NewMockPrompter(
		"Ada Lovelace",            // name
		"ada@example.com",         // email
		"yes",                     // used_product
		5.0,                       // satisfaction
		[]string{"search", "reports"}, // favorite_features
		"2026-08-01",              // purchase_date
		"yes",                     // recommend
		"grace@example.com",       // referral_email
	)

	logPath := filepath.Join(tmpDir, "sessions.jsonl")
	var out bytes.Buffer
	runner := ui.NewRunner(prompter, st, sessionlog.New(logPath), &out)

	response, err := runner.Run(loaded)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if response.Status != models.StatusCompleted {
		t.Fatalf("Expected completed session, got %q", response.Status)
	}
	if _, ok := response.Answers["complaint"]; ok {
		t.Error("Expected complaint question hidden for a high rating")
	}

	saved, err := st.GetResponse(response.ID)
	if err != nil {
		t.Fatalf("Failed to load saved response: %v", err)
	}
	if saved.Answers["name"] != "Ada Lovelace" {
		t.Errorf("Expected saved answers, got %+v", saved.Answers)
	}

	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("Expected session log written: %v", err)
	}

	responses, err := st.ListResponses(demo.ID)
	if err != nil {
		t.Fatalf("Failed to list responses: %v", err)
	}
	summary := analytics.Summarize(loaded, responses)
	if summary.TotalResponses != 1 || summary.Completed != 1 {
		t.Errorf("Unexpected summary totals: %+v", summary)
	}
	for _, qs := range summary.Questions {
		if qs.QuestionID == "satisfaction" && qs.Mean != 5 {
			t.Errorf("Expected satisfaction mean 5, got %f", qs.Mean)
		}
	}
}

// TestEndToEndAbandon runs a session the user quits midway and checks the
// partial response is persisted as abandoned.
func TestEndToEndAbandon(t *testing.T) {
	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "formpilot.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer st.Close()

	demo, err := fixtures.Demo()
	if err != nil {
		t.Fatalf("Failed to load demo: %v", err)
	}

	prompter := mocks.NewMockPrompter("Ada Lovelace", "quit")
	var out bytes.Buffer
	runner := ui.NewRunner(prompter, st, nil, &out)

	response, err := runner.Run(demo)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if response.Status != models.StatusAbandoned {
		t.Fatalf("Expected abandoned session, got %q", response.Status)
	}

	saved, err := st.GetResponse(response.ID)
	if err != nil {
		t.Fatalf("Failed to load saved response: %v", err)
	}
	if saved.Answers["name"] != "Ada Lovelace" {
		t.Errorf("Expected partial answers preserved, got %+v", saved.Answers)
	}
}
