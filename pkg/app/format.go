package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OutputFormat controls how reports are printed.
type OutputFormat string

const (
	OutputFormatDefault OutputFormat = "default"
	OutputFormatJSON    OutputFormat = "json"
)

func (e *OutputFormat) String() string {
	return string(*e)
}

func (e *OutputFormat) Set(v string) error {
	switch v {
	case "default", "json":
		*e = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: default, json")
	}
}

func (e *OutputFormat) Type() string {
	return "OutputFormat"
}

// CompleteOutputFormat provides shell completion for --output.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"default", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// InputMode controls how input is split before it reaches the codec.
type InputMode string

const (
	// InputModeStream processes input in group-aligned blocks.
	InputModeStream InputMode = "stream"
	// InputModeLine treats every line as a separate value.
	InputModeLine InputMode = "line"
	// InputModeFull reads the whole input into memory first.
	InputModeFull InputMode = "full"
)

func (e *InputMode) String() string {
	return string(*e)
}

func (e *InputMode) Set(v string) error {
	switch v {
	case "stream", "line", "full":
		*e = InputMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of: stream, line, full")
	}
}

func (e *InputMode) Type() string {
	return "InputMode"
}

// CompleteInputMode provides shell completion for --input-mode.
func CompleteInputMode(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"stream", "line", "full"}, cobra.ShellCompDirectiveNoFileComp
}
