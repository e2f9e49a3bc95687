package actions

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/1pedrohfreitas/changelog/internal/configuration"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// OutputSummary writes the run summary in the given format
func OutputSummary(w io.Writer, summary *Summary, format string) error {
	switch format {
	case OutputFormatTable, "":
		return outputSummaryTable(w, summary)
	case OutputFormatJSON:
		return outputJSON(w, summary)
	case OutputFormatYAML:
		return outputYAML(w, summary)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func outputSummaryTable(w io.Writer, summary *Summary) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s/%s", summary.Owner, summary.Repo))
	t.AppendHeader(table.Row{"Item", "Value"})

	t.AppendRows([]table.Row{
		{"Commits", summary.Commits},
		{"Features", summary.Features},
		{"Configurations", summary.Configurations},
		{"Issues", summary.Issues},
		{"Other", summary.Other},
		{"Chores (dropped)", summary.Dropped},
	})
	t.AppendSeparator()

	file := summary.File
	if !summary.Written {
		file += " (not written)"
	}
	t.AppendRow(table.Row{"File", file})

	if summary.Branch != "" {
		t.AppendRow(table.Row{"Branch", fmt.Sprintf("%s → %s", summary.Branch, summary.BaseBranch)})
	}
	if summary.PullRequestURL != "" {
		t.AppendRow(table.Row{"Pull request", summary.PullRequestURL})
	}
	t.AppendRow(table.Row{"Dry run", strconv.FormatBool(summary.DryRun)})

	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// OutputValidationResult writes the validation outcome in the given format
func OutputValidationResult(w io.Writer, result *configuration.ValidationResult, format string) error {
	switch format {
	case OutputFormatTable, "":
		return outputValidationTable(w, result)
	case OutputFormatJSON:
		return outputJSON(w, validationOutput(result))
	case OutputFormatYAML:
		return outputYAML(w, validationOutput(result))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func validationOutput(result *configuration.ValidationResult) map[string]interface{} {
	errors := make([]map[string]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		errors = append(errors, map[string]string{"field": e.Field, "message": e.Message})
	}
	return map[string]interface{}{
		"valid":      result.Valid,
		"errorCount": len(result.Errors),
		"errors":     errors,
	}
}

func outputValidationTable(w io.Writer, result *configuration.ValidationResult) error {
	if result.Valid {
		fmt.Fprintln(w, "✓ Configuration is valid")
		return nil
	}

	fmt.Fprintln(w, "✗ Configuration validation failed:")
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Error"})
	for _, e := range result.Errors {
		t.AppendRow(table.Row{e.Field, e.Message})
	}
	t.AppendFooter(table.Row{"Total", len(result.Errors)})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
