// Package rules evaluates cross-question validation rules: dependency,
// consistency, and completeness constraints over the full answer map.
// Validate is a pure function over its snapshot; calling it twice with the
// same inputs yields identical results.
package rules

import (
	"fmt"

	"github.com/themobileprof/formpilot/pkg/models"
)

// Validate evaluates every rule against the answer snapshot and concatenates
// the findings in rule-list order. IsValid is the conjunction of all rules
// passing.
func Validate(answers map[string]any, questions []models.Question, ruleSet []models.CrossRule) models.ValidationResult {
	result := models.Valid()
	for _, rule := range ruleSet {
		switch rule.Type {
		case models.RuleDependency:
			checkDependency(answers, rule, &result)
		case models.RuleConsistency:
			checkConsistency(answers, rule, &result)
		case models.RuleCompleteness:
			checkCompleteness(answers, rule, &result)
		}
	}
	return result
}

// checkDependency: an answered dependent question requires its counterpart
// to be answered too. An unanswered dependent never triggers the rule.
func checkDependency(answers map[string]any, rule models.CrossRule, result *models.ValidationResult) {
	if !models.Answered(answers, rule.DependsOn) {
		return
	}
	if models.Answered(answers, rule.Requires) {
		return
	}
	msg := rule.Message
	if msg == "" {
		msg = fmt.Sprintf("answering %q requires %q to be answered", rule.DependsOn, rule.Requires)
	}
	result.AddError(models.CodeDependencyViolation, msg, rule.Requires)
}

// checkConsistency: with must_match, every present answer in the set must be
// identical; without it the rule asserts divergence. Missing answers are
// excluded, not treated as mismatches.
func checkConsistency(answers map[string]any, rule models.CrossRule, result *models.ValidationResult) {
	var present []string
	for _, id := range rule.Questions {
		if models.Answered(answers, id) {
			present = append(present, fmt.Sprintf("%v", answers[id]))
		}
	}
	if len(present) < 2 {
		return
	}

	allEqual := true
	for _, v := range present[1:] {
		if v != present[0] {
			allEqual = false
			break
		}
	}

	if rule.MustMatch && !allEqual {
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("answers to %v must match", rule.Questions)
		}
		result.AddError(models.CodeConsistencyViolation, msg, "")
	}
	if !rule.MustMatch && allEqual {
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("answers to %v must not all be identical", rule.Questions)
		}
		result.AddError(models.CodeConsistencyViolation, msg, "")
	}
}

// checkCompleteness emits one INCOMPLETE error per missing answer so
// callers know exactly which questions are outstanding
func checkCompleteness(answers map[string]any, rule models.CrossRule, result *models.ValidationResult) {
	for _, id := range rule.RequiredQuestions {
		if models.Answered(answers, id) {
			continue
		}
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("question %q must be answered", id)
		}
		result.AddError(models.CodeIncomplete, msg, id)
	}
}
