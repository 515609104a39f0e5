package rules

import (
	"reflect"
	"testing"

	"github.com/themobileprof/formpilot/pkg/models"
)

func TestDependencyRule(t *testing.T) {
	rule := models.CrossRule{Type: models.RuleDependency, DependsOn: "q1", Requires: "q2"}

	result := Validate(map[string]any{"q1": "answer1", "q2": ""}, nil, []models.CrossRule{rule})
	if result.IsValid {
		t.Fatal("Expected dependency violation")
	}
	if len(result.Errors) != 1 || result.Errors[0].Code != models.CodeDependencyViolation {
		t.Errorf("Expected one DEPENDENCY_VIOLATION, got %+v", result.Errors)
	}

	// An unanswered dependent question never triggers the rule
	result = Validate(map[string]any{"q1": "", "q2": ""}, nil, []models.CrossRule{rule})
	if !result.IsValid {
		t.Errorf("Expected valid when dependent is unanswered, got %+v", result.Errors)
	}

	result = Validate(map[string]any{"q1": "a", "q2": "b"}, nil, []models.CrossRule{rule})
	if !result.IsValid {
		t.Errorf("Expected valid when both answered, got %+v", result.Errors)
	}
}

func TestDependencyRuleCustomMessage(t *testing.T) {
	rule := models.CrossRule{
		Type: models.RuleDependency, DependsOn: "q1", Requires: "q2",
		Message: "q2 is needed when q1 is given",
	}
	result := Validate(map[string]any{"q1": "x"}, nil, []models.CrossRule{rule})
	if len(result.Errors) != 1 || result.Errors[0].Message != "q2 is needed when q1 is given" {
		t.Errorf("Expected the rule's message, got %+v", result.Errors)
	}
}

func TestConsistencyMustMatch(t *testing.T) {
	rule := models.CrossRule{Type: models.RuleConsistency, Questions: []string{"q1", "q2"}, MustMatch: true}

	result := Validate(map[string]any{"q1": "value1", "q2": "value2"}, nil, []models.CrossRule{rule})
	if result.IsValid {
		t.Fatal("Expected consistency violation")
	}
	if result.Errors[0].Code != models.CodeConsistencyViolation {
		t.Errorf("Expected CONSISTENCY_VIOLATION, got %s", result.Errors[0].Code)
	}

	result = Validate(map[string]any{"q1": "same", "q2": "same"}, nil, []models.CrossRule{rule})
	if !result.IsValid {
		t.Errorf("Expected matching answers to pass, got %+v", result.Errors)
	}

	// Missing answers are excluded, not treated as mismatches
	result = Validate(map[string]any{"q1": "only"}, nil, []models.CrossRule{rule})
	if !result.IsValid {
		t.Errorf("Expected a single present answer to pass, got %+v", result.Errors)
	}
}

func TestConsistencyMustDiverge(t *testing.T) {
	rule := models.CrossRule{Type: models.RuleConsistency, Questions: []string{"q1", "q2"}, MustMatch: false}

	result := Validate(map[string]any{"q1": "same", "q2": "same"}, nil, []models.CrossRule{rule})
	if result.IsValid {
		t.Fatal("Expected identical answers to violate a divergence rule")
	}

	result = Validate(map[string]any{"q1": "a", "q2": "b"}, nil, []models.CrossRule{rule})
	if !result.IsValid {
		t.Errorf("Expected differing answers to pass, got %+v", result.Errors)
	}
}

func TestCompletenessRule(t *testing.T) {
	rule := models.CrossRule{Type: models.RuleCompleteness, RequiredQuestions: []string{"q1", "q2", "q3"}}

	result := Validate(map[string]any{"q1": "a", "q2": ""}, nil, []models.CrossRule{rule})
	if result.IsValid {
		t.Fatal("Expected incomplete answers to fail")
	}
	// One INCOMPLETE error per missing question, so callers know which
	if len(result.Errors) != 2 {
		t.Fatalf("Expected 2 errors (q2, q3), got %+v", result.Errors)
	}
	for _, e := range result.Errors {
		if e.Code != models.CodeIncomplete {
			t.Errorf("Expected INCOMPLETE, got %s", e.Code)
		}
	}
	if result.Errors[0].QuestionID != "q2" || result.Errors[1].QuestionID != "q3" {
		t.Errorf("Expected errors for q2 then q3, got %+v", result.Errors)
	}

	result = Validate(map[string]any{"q1": "a", "q2": "b", "q3": "c"}, nil, []models.CrossRule{rule})
	if !result.IsValid {
		t.Errorf("Expected all answered to pass, got %+v", result.Errors)
	}
}

func TestErrorsConcatenatedInRuleOrder(t *testing.T) {
	ruleSet := []models.CrossRule{
		{Type: models.RuleCompleteness, RequiredQuestions: []string{"q9"}},
		{Type: models.RuleDependency, DependsOn: "q1", Requires: "q2"},
	}
	result := Validate(map[string]any{"q1": "x"}, nil, ruleSet)
	if len(result.Errors) != 2 {
		t.Fatalf("Expected 2 errors, got %+v", result.Errors)
	}
	if result.Errors[0].Code != models.CodeIncomplete || result.Errors[1].Code != models.CodeDependencyViolation {
		t.Errorf("Expected rule-list order, got %+v", result.Errors)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	answers := map[string]any{"q1": "x", "q3": "y"}
	ruleSet := []models.CrossRule{
		{Type: models.RuleDependency, DependsOn: "q1", Requires: "q2"},
		{Type: models.RuleConsistency, Questions: []string{"q1", "q3"}, MustMatch: true},
	}

	first := Validate(answers, nil, ruleSet)
	second := Validate(answers, nil, ruleSet)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results for the same snapshot:\n%+v\n%+v", first, second)
	}
}
