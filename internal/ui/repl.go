package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/themobileprof/formpilot/internal/analytics"
	"github.com/themobileprof/formpilot/internal/questionnaire"
	"github.com/themobileprof/formpilot/internal/sessionlog"
	"github.com/themobileprof/formpilot/internal/store"
	"github.com/themobileprof/formpilot/pkg/models"
)

// REPL is the interactive command-line interface
type REPL struct {
	store    *store.Store
	runner   *Runner
	prompter *Prompter
	history  []string
	out      io.Writer
}

// NewREPL creates a REPL over the given store. Sessions started from the
// REPL persist their responses through the store and the session log.
func NewREPL(st *store.Store, log *sessionlog.Logger, useColor bool) *REPL {
	prompter := NewPrompter(os.Stdin, os.Stdout, useColor)
	return &REPL{
		store:    st,
		runner:   NewRunner(prompter, st, log, os.Stdout),
		prompter: prompter,
		history:  []string{},
		out:      os.Stdout,
	}
}

// Start begins the interactive REPL loop
func (repl *REPL) Start() error {
	fmt.Fprintln(repl.out, "FormPilot - Interactive Questionnaires")
	fmt.Fprintln(repl.out, "Type 'help' for available commands, 'exit' to quit")
	fmt.Fprintln(repl.out)

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Fprint(repl.out, "> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		repl.history = append(repl.history, input)

		if err := repl.handleCommand(input); err != nil {
			if err.Error() == "exit" {
				fmt.Fprintln(repl.out, "Goodbye!")
				return nil
			}
			fmt.Fprintf(repl.out, "Error: %v\n\n", err)
		}
	}
}

// handleCommand processes a single command
func (repl *REPL) handleCommand(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	command := parts[0]
	args := parts[1:]

	switch command {
	case "help":
		return repl.showHelp()
	case "exit", "quit":
		return fmt.Errorf("exit")
	case "list":
		return repl.listQuestionnaires()
	case "run":
		if len(args) == 0 {
			return fmt.Errorf("usage: run <questionnaire_id>")
		}
		return repl.runQuestionnaire(args[0])
	case "lint":
		if len(args) == 0 {
			return fmt.Errorf("usage: lint <file.yaml>")
		}
		return repl.lintFile(args[0])
	case "import":
		if len(args) == 0 {
			return fmt.Errorf("usage: import <file.yaml|dir>")
		}
		return repl.importPath(args[0])
	case "responses":
		if len(args) == 0 {
			return fmt.Errorf("usage: responses <questionnaire_id>")
		}
		return repl.showResponses(args[0])
	case "stats":
		if len(args) == 0 {
			return fmt.Errorf("usage: stats <questionnaire_id>")
		}
		return repl.showStats(args[0])
	case "history":
		return repl.showHistory()
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", command)
	}
}

// showHelp displays help information
func (repl *REPL) showHelp() error {
	fmt.Fprintln(repl.out, `
Available Commands:
  help                        - Show this help message
  list                        - List imported questionnaires
  run <questionnaire_id>      - Start an interactive session
  lint <file.yaml>            - Check a questionnaire definition
  import <file.yaml|dir>      - Import questionnaire definition(s)
  responses <questionnaire_id>- List recorded responses
  stats <questionnaire_id>    - Show aggregate statistics
  history                     - Show command history
  exit, quit                  - Exit FormPilot

During a session:
  back                        - Return to the previous question
  quit                        - Abandon the session`)
	return nil
}

// listQuestionnaires prints every imported questionnaire
func (repl *REPL) listQuestionnaires() error {
	infos, err := repl.store.ListQuestionnaires()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(repl.out, "No questionnaires imported. Use: import <file.yaml>")
		return nil
	}

	fmt.Fprintf(repl.out, "\n%d questionnaire(s):\n\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(repl.out, "  %s (v%s) - %s [%d questions]\n",
			info.ID, info.Version, info.Title, info.QuestionCount)
		if info.Description != "" {
			fmt.Fprintf(repl.out, "    %s\n", info.Description)
		}
	}
	fmt.Fprintln(repl.out)
	return nil
}

// runQuestionnaire starts an interactive session
func (repl *REPL) runQuestionnaire(id string) error {
	q, err := repl.store.GetQuestionnaire(id)
	if err != nil {
		return err
	}

	response, err := repl.runner.Run(q)
	if err != nil {
		return err
	}

	fmt.Fprintf(repl.out, "Response %s recorded (%s).\n\n", response.ID, response.Status)
	return nil
}

// lintFile checks a questionnaire definition and prints the findings
func (repl *REPL) lintFile(path string) error {
	q, err := questionnaire.LoadFromFile(path)
	if err != nil {
		return err
	}

	result := questionnaire.Lint(q)
	if result.IsValid && len(result.Warnings) == 0 {
		fmt.Fprintf(repl.out, "✓ %s is valid\n", path)
		return nil
	}

	for _, e := range result.Errors {
		fmt.Fprintf(repl.out, "  error: [%s] %s\n", e.Code, e.Message)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(repl.out, "  warning: [%s] %s\n", w.Code, w.Message)
	}
	return nil
}

// importPath imports one YAML file or every questionnaire in a directory
func (repl *REPL) importPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot import %s: %w", path, err)
	}

	var loaded []*models.Questionnaire
	if info.IsDir() {
		loaded, err = questionnaire.LoadDir(path)
		if err != nil {
			return err
		}
	} else {
		q, err := questionnaire.LoadFromFile(path)
		if err != nil {
			return err
		}
		loaded = append(loaded, q)
	}

	for _, q := range loaded {
		result := questionnaire.Lint(q)
		if !result.IsValid {
			fmt.Fprintf(repl.out, "Skipping %s:\n", q.ID)
			for _, e := range result.Errors {
				fmt.Fprintf(repl.out, "  error: [%s] %s\n", e.Code, e.Message)
			}
			continue
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(repl.out, "  warning: [%s] %s\n", w.Code, w.Message)
		}
		if err := repl.store.ImportQuestionnaire(q); err != nil {
			return err
		}
		fmt.Fprintf(repl.out, "Imported %s (v%s)\n", q.ID, q.Version)
	}
	return nil
}

// showResponses lists recorded responses for a questionnaire
func (repl *REPL) showResponses(id string) error {
	responses, err := repl.store.ListResponses(id)
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		fmt.Fprintln(repl.out, "No responses recorded.")
		return nil
	}

	fmt.Fprintf(repl.out, "\n%d response(s):\n\n", len(responses))
	for _, r := range responses {
		fmt.Fprintf(repl.out, "  %s  %-10s  %d answer(s)  %s\n",
			r.ID, r.Status, len(r.Answers), r.FinishedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(repl.out)
	return nil
}

// showStats prints aggregate statistics for a questionnaire
func (repl *REPL) showStats(id string) error {
	q, err := repl.store.GetQuestionnaire(id)
	if err != nil {
		return err
	}
	responses, err := repl.store.ListResponses(id)
	if err != nil {
		return err
	}

	summary := analytics.Summarize(q, responses)
	fmt.Fprintf(repl.out, "\n%s: %d response(s), %d completed, %d abandoned (%.0f%% completion)\n\n",
		summary.QuestionnaireID, summary.TotalResponses, summary.Completed,
		summary.Abandoned, summary.CompletionRate*100)

	for _, qs := range summary.Questions {
		fmt.Fprintf(repl.out, "  %s: answered %d (%.0f%%)\n", qs.QuestionID, qs.Answered, qs.AnswerRate*100)
		if qs.Answered > 0 && (qs.Mean != 0 || qs.Min != 0 || qs.Max != 0) {
			fmt.Fprintf(repl.out, "    mean %.2f, min %v, max %v\n", qs.Mean, qs.Min, qs.Max)
		}
		if len(qs.Distribution) > 0 {
			values := make([]string, 0, len(qs.Distribution))
			for v := range qs.Distribution {
				values = append(values, v)
			}
			sort.Strings(values)
			for _, v := range values {
				fmt.Fprintf(repl.out, "    %s: %d\n", v, qs.Distribution[v])
			}
		}
	}
	fmt.Fprintln(repl.out)
	return nil
}

// showHistory prints the commands entered this REPL session
func (repl *REPL) showHistory() error {
	if len(repl.history) == 0 {
		fmt.Fprintln(repl.out, "No history yet.")
		return nil
	}
	for i, cmd := range repl.history {
		fmt.Fprintf(repl.out, "  %d  %s\n", i+1, cmd)
	}
	return nil
}
