// Command simulate replays a scripted conversation through the dialogue
// engine without any server, runner or storage.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/intake/schema"
	"greenwatch-be/pkg/intake/sequence"
	"greenwatch-be/pkg/intake/slot"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var engineScript = []string{
	"MV Horizon",
	"08:00-12:00",
	"Chief Engineer Smith",
	"RPM was 1200",
	"Load 65%",
	"Fuel 22",
	"none",
	"Replaced fuel filter",
}

var guidedScript = []string{
	"MV Horizon",
	"08:00-12:00",
	"1200",
	"65",
	"none",
	"Replaced fuel filter",
	"Sleep, hydration and stretching. I want to get at least seven hours between watches and drink more water on long shifts.",
	"Mostly. My chief engineer lets me swap watches when I need to call home, as long as the handover is clean and documented.",
	"Yes. We have an open debrief after each port call and nobody has been punished for raising concerns about fatigue.",
}

var (
	schemaPath    string
	questionsPath string
	scriptPath    string
	noColor       bool
)

var (
	userColor     = color.New(color.FgCyan, color.Bold)
	botColor      = color.New(color.FgGreen)
	warnColor     = color.New(color.FgYellow)
	progressColor = color.New(color.FgMagenta)
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay scripted conversations through the intake engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

var engineCmd = &cobra.Command{
	Use:   "engine",
	Short: "Feed free text to the slot engine and print the log after each turn",
	RunE:  runEngine,
}

var guidedCmd = &cobra.Command{
	Use:   "guided",
	Short: "Answer the guided question flow and print the summary",
	RunE:  runGuided,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Schema document (defaults to the engineering watch log)")
	rootCmd.PersistentFlags().StringVarP(&scriptPath, "script", "f", "", "File with one user utterance per line")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	guidedCmd.Flags().StringVarP(&questionsPath, "questions", "q", "", "Question document (defaults to the built-in flow)")

	rootCmd.AddCommand(engineCmd)
	rootCmd.AddCommand(guidedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScript(fallback []string) ([]string, error) {
	if scriptPath == "" {
		return fallback, nil
	}
	f, err := os.Open(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func runEngine(cmd *cobra.Command, args []string) error {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}
	script, err := loadScript(engineScript)
	if err != nil {
		return err
	}

	engine := slot.NewEngine(s)
	for _, text := range script {
		res := engine.ApplyText(text)
		userColor.Printf("User: %s\n", text)
		if res.NeedsClarification() {
			warnColor.Printf("Clarification: %s\n", res.Clarification)
		} else if res.Filled != "" {
			botColor.Printf("Filled: %s\n", res.Filled)
		}
		progressColor.Printf("Progress: %.0f%%\n", engine.Progress()*100)
		fmt.Printf("Current Log: %s\n", formatLog(engine.Log()))
		fmt.Printf("Complete: %t\n", engine.IsComplete())
		fmt.Println("----")
	}

	if missing := engine.MissingFields(); len(missing) > 0 {
		warnColor.Printf("Missing: %s\n", strings.Join(missing, ", "))
	}
	return nil
}

func runGuided(cmd *cobra.Command, args []string) error {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}
	questions, err := sequence.LoadQuestions(questionsPath)
	if err != nil {
		return err
	}
	if err := sequence.CheckBindings(questions, s); err != nil {
		return err
	}
	script, err := loadScript(guidedScript)
	if err != nil {
		return err
	}

	engine := slot.NewEngine(s)
	var completion *sequence.Completion
	seq := sequence.New(questions,
		sequence.WithEngine(engine),
		sequence.WithCompletion(func(c sequence.Completion) { completion = &c }),
	)

	printAssistant(seq.Start("simulation"))
	for _, text := range script {
		outcome := seq.SubmitAnswer(text)
		for _, m := range outcome.Messages {
			if m.Role == intake.RoleUser {
				userColor.Printf("User: %s\n", m.Text)
				continue
			}
			printAssistant([]intake.Message{m})
		}
		progressColor.Printf("Progress: %.0f%%\n", seq.Progress()*100)
		if outcome.Done {
			break
		}
	}

	if completion == nil {
		warnColor.Println("Flow did not complete, script ran out of answers")
		return nil
	}
	fmt.Printf("Completed with %d answers\n", len(completion.Answers))
	return nil
}

func printAssistant(msgs []intake.Message) {
	for _, m := range msgs {
		botColor.Printf("Assistant: %s\n", m.Text)
	}
}

func formatLog(log map[string]any) string {
	keys := make([]string, 0, len(log))
	for k := range log {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, schema.FormatValue(log[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
