package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kreyollingua/pale/internal"
	"github.com/kreyollingua/pale/internal/phonetic"
	"github.com/kreyollingua/pale/internal/token"
)

var (
	// Flags
	rulesFile string
	showRules bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fonetik [phrase...]",
	Short: "Haitian Creole phonetic spelling preview",
	Long: `fonetik rewrites Haitian Creole text into the approximate phonetic
spelling that pale hands to its speech synthesizers.

Without arguments it reads phrases from standard input, one per line.

Example:
  fonetik "Mwen ap manje"       # Print the phonetic rewrite
  fonetik --rules my.yaml wi    # Use a custom rule table`,
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	rootCmd.Flags().StringVar(&rulesFile, "rules", "", "Phonetic rule table (YAML, default is the built-in table)")
	rootCmd.Flags().BoolVar(&showRules, "show-rules", false, "Print the active rule table and exit")
}

func runCommand(cmd *cobra.Command, args []string) error {
	rules, err := loadRules()
	if err != nil {
		return err
	}

	if showRules {
		printRules(rules)
		return nil
	}

	if len(args) > 0 {
		for _, phrase := range args {
			fmt.Println(rewrite(phrase, rules))
		}
		return nil
	}

	// No arguments; read phrases from stdin
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Println(rewrite(line, rules))
	}
	return scanner.Err()
}

func loadRules() (*phonetic.RuleSet, error) {
	if rulesFile == "" {
		return phonetic.DefaultRules(), nil
	}

	rules, err := phonetic.LoadFile(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load phonetic rules: %w", err)
	}
	return rules, nil
}

func rewrite(phrase string, rules *phonetic.RuleSet) string {
	return phonetic.Rewrite(token.PrepareInput(phrase), rules)
}

func printRules(rules *phonetic.RuleSet) {
	fmt.Printf("Rule table %s (%d rules)\n", rules.Version, len(rules.Rules))
	for i, rule := range rules.Rules {
		kind := "literal"
		if rule.WholeWord {
			kind = "word"
		}
		fmt.Printf("%3d. [%s] %q -> %q\n", i+1, kind, rule.Pattern, rule.Replacement)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
