package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacmap/vacmap/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <settings-file>",
		Short: "Validate a render-settings file",
		Long: `Validate a render-settings YAML file without rendering anything.

Checks the file against the settings schema and verifies every color,
size and drawable identifier. All violations are collected and
reported in one run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, settingsFile string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	_, errs := config.LoadSettings(settingsFile)
	if len(errs) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "✓ Settings valid")
		return nil
	}

	return outputValidationErrors(formatter, errs)
}

// outputValidationErrors outputs collected validation errors and maps
// them onto exit codes: unreadable files are command errors, schema
// and identifier violations are validation failures.
func outputValidationErrors(formatter *OutputFormatter, errs []error) error {
	var typed []config.ValidationError
	for _, err := range errs {
		if verr, ok := err.(config.ValidationError); ok {
			typed = append(typed, verr)
			continue
		}
		typed = append(typed, config.ValidationError{
			Code:    ErrCodeGeneric,
			Message: err.Error(),
		})
	}

	exitCode := ExitFailure
	if len(typed) == 1 && typed[0].Code == config.ErrSettingsRead {
		exitCode = ExitCommandError
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: typed},
			Error: &CLIError{
				Code:    typed[0].Code,
				Message: typed[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(exitCode, fmt.Sprintf("validation failed with %d error(s)", len(typed)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range typed {
		if err.Field != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", err.Code, err.Message)
	}
	fmt.Fprintln(formatter.Writer)

	return NewExitError(exitCode, fmt.Sprintf("validation failed with %d error(s)", len(typed)))
}
