package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"phpfix/internal/fixer"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [name...]",
	Short: "List the available rules",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().BoolP("verbose", "v", false, "show samples and options")
}

type ruleJSON struct {
	Name    string         `json:"name"`
	Summary string         `json:"summary"`
	Before  string         `json:"before"`
	After   string         `json:"after"`
	Options map[string]any `json:"options,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	defs := fixer.All()
	if len(args) > 0 {
		defs = defs[:0:0]
		for _, name := range args {
			def, ok := fixer.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown rule %q", name)
			}
			defs = append(defs, def)
		}
	}

	switch format {
	case "json":
		payload := make([]ruleJSON, 0, len(defs))
		for _, d := range defs {
			payload = append(payload, ruleJSON{Name: d.Name, Summary: d.Summary, Before: d.Sample[0], After: d.Sample[1], Options: d.Options})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		renderRules(cmd.OutOrStdout(), defs, verbose || len(args) > 0, out.color)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderRules(w io.Writer, defs []fixer.Definition, verbose, useColor bool) {
	name := color.New(color.FgCyan, color.Bold)
	minus := color.New(color.FgRed)
	plus := color.New(color.FgGreen)
	for _, c := range []*color.Color{name, minus, plus} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	width := 0
	for _, d := range defs {
		width = max(width, len(d.Name))
	}
	for _, d := range defs {
		fmt.Fprintf(w, "%s  %s\n", name.Sprintf("%-*s", width, d.Name), d.Summary)
		if !verbose {
			continue
		}
		for _, line := range strings.Split(d.Sample[0], "\n") {
			fmt.Fprintf(w, "    %s\n", minus.Sprint("- "+line))
		}
		for _, line := range strings.Split(d.Sample[1], "\n") {
			fmt.Fprintf(w, "    %s\n", plus.Sprint("+ "+line))
		}
		keys := make([]string, 0, len(d.Options))
		for k := range d.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "    option %s (default %v)\n", k, d.Options[k])
		}
		fmt.Fprintln(w)
	}
}
