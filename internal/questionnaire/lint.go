package questionnaire

import (
	"fmt"
	"regexp"

	"github.com/themobileprof/formpilot/internal/conditions"
	"github.com/themobileprof/formpilot/internal/funcs"
	"github.com/themobileprof/formpilot/pkg/models"
)

// Lint checks a questionnaire definition for structural and configuration
// problems. Structural problems (missing ids, unknown types, choice
// questions without options) are errors. Condition problems are warnings:
// at runtime the evaluator fails safe and hides the question, but CI
// tooling wants them surfaced before a session ever runs.
func Lint(q *models.Questionnaire) models.ValidationResult {
	result := models.Valid()

	if q.ID == "" {
		result.AddError(models.CodeRequiredField, "questionnaire id is required", "")
	}
	if len(q.Questions) == 0 {
		result.AddError(models.CodeIncomplete, "questionnaire has no questions", "")
		return result
	}

	registry := funcs.NewRegistry()
	seen := make(map[string]int, len(q.Questions))

	for i := range q.Questions {
		question := &q.Questions[i]

		if question.ID == "" {
			result.AddError(models.CodeRequiredField,
				fmt.Sprintf("question at position %d has no id", i), "")
			continue
		}
		if prev, dup := seen[question.ID]; dup {
			result.AddError(models.CodeDuplicateID,
				fmt.Sprintf("question id %q already used at position %d", question.ID, prev),
				question.ID)
		}
		seen[question.ID] = i

		if !models.IsValidType(question.Type) {
			result.AddError(models.CodeInvalidType,
				fmt.Sprintf("unknown question type %q", question.Type), question.ID)
		}
		if question.Text == "" {
			result.AddError(models.CodeRequiredField,
				fmt.Sprintf("question %q has no text", question.ID), question.ID)
		}

		switch question.Type {
		case models.TypeSingleChoice, models.TypeMultipleChoice:
			if len(question.Options) == 0 {
				result.AddError(models.CodeIncomplete,
					fmt.Sprintf("choice question %q has no options", question.ID),
					question.ID)
			}
		case models.TypeNumber, models.TypeRating:
			if question.Min != nil && question.Max != nil && *question.Min > *question.Max {
				result.AddWarning(models.CodeOutOfRange,
					fmt.Sprintf("question %q has min greater than max", question.ID),
					question.ID)
			}
		case models.TypeText:
			if question.Pattern != "" {
				if _, err := regexp.Compile(question.Pattern); err != nil {
					result.AddWarning(models.CodeInvalidType,
						fmt.Sprintf("question %q has an invalid pattern: %v", question.ID, err),
						question.ID)
				}
			}
		}

		lintCondition(q, question, i, registry, &result)
	}

	lintRules(q, seen, &result)

	return result
}

// lintCondition flags configuration errors in a visibility condition. The
// referenced question must occur strictly earlier in the declared order.
func lintCondition(qn *models.Questionnaire, q *models.Question, index int, registry *funcs.Registry, result *models.ValidationResult) {
	cond := q.Condition
	if cond == nil {
		return
	}

	refIndex := qn.IndexOf(cond.QuestionID)
	switch {
	case cond.QuestionID == "":
		result.AddWarning(models.CodeUnknownReference,
			fmt.Sprintf("condition on %q references no question", q.ID), q.ID)
	case refIndex < 0:
		result.AddWarning(models.CodeUnknownReference,
			fmt.Sprintf("condition on %q references unknown question %q", q.ID, cond.QuestionID),
			q.ID)
	case refIndex >= index:
		result.AddWarning(models.CodeForwardReference,
			fmt.Sprintf("condition on %q must reference an earlier question, but %q occurs at or after it", q.ID, cond.QuestionID),
			q.ID)
	}

	if !models.IsValidOperator(cond.Operator) {
		result.AddWarning(models.CodeUnknownOperator,
			fmt.Sprintf("condition on %q uses unknown operator %q", q.ID, cond.Operator),
			q.ID)
	}

	if name, isCall := conditions.IsFunctionCall(cond.Value); isCall && !registry.Has(name) {
		result.AddWarning(models.CodeUnknownFunction,
			fmt.Sprintf("condition on %q calls unknown function %q", q.ID, name), q.ID)
	}
}

// lintRules checks that cross-question rules reference real questions
func lintRules(q *models.Questionnaire, seen map[string]int, result *models.ValidationResult) {
	check := func(id, context string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; !ok {
			result.AddWarning(models.CodeUnknownReference,
				fmt.Sprintf("%s references unknown question %q", context, id), id)
		}
	}

	for i, rule := range q.Rules {
		context := fmt.Sprintf("%s rule %d", rule.Type, i)
		switch rule.Type {
		case models.RuleDependency:
			check(rule.DependsOn, context)
			check(rule.Requires, context)
		case models.RuleConsistency:
			if len(rule.Questions) < 2 {
				result.AddWarning(models.CodeIncomplete,
					fmt.Sprintf("%s needs at least two questions", context), "")
			}
			for _, id := range rule.Questions {
				check(id, context)
			}
		case models.RuleCompleteness:
			for _, id := range rule.RequiredQuestions {
				check(id, context)
			}
		default:
			result.AddWarning(models.CodeInvalidType,
				fmt.Sprintf("rule %d has unknown type %q", i, rule.Type), "")
		}
	}
}
