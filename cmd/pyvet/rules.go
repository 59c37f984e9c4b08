package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/analyzer"
)

var flagRulesPlain bool

func init() {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rules and what they check",
		RunE:  runRules,
	}
	rulesCmd.Flags().BoolVar(&flagRulesPlain, "plain", false, "Print raw markdown without terminal rendering")

	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	var b strings.Builder
	b.WriteString("# Rules\n\n")
	b.WriteString("| ID | Category | Severity | Description |\n")
	b.WriteString("|----|----------|----------|-------------|\n")
	for _, rule := range analyzer.DefaultRegistry().Rules() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			rule.ID(), rule.Category(), rule.Severity(), rule.Doc())
	}
	md := b.String()

	if flagRulesPlain || !stdoutIsTTY() {
		fmt.Print(md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("rendering rules: %w", err)
	}
	fmt.Print(rendered)
	return nil
}
