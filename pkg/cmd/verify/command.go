package verify

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/birdayz/n85/pkg/app"
	"github.com/birdayz/n85/pkg/n85"
	"github.com/birdayz/n85/pkg/stream"
)

// ErrInvalid is returned after the report when the input does not decode.
var ErrInvalid = errors.New("input is not valid N85")

// Report describes whether a piece of text decodes and to how many bytes.
type Report struct {
	Valid         bool   `json:"valid"`
	EncodedLength int    `json:"encoded_length"`
	DecodedLength int    `json:"decoded_length"`
	InvalidOffset *int   `json:"invalid_offset,omitempty"`
	InvalidByte   string `json:"invalid_byte,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Check builds the report for src.
func Check(src []byte) Report {
	r := Report{EncodedLength: len(src)}
	err := n85.Validate(src)
	if err == nil {
		r.Valid = true
		r.DecodedLength = n85.DecodedLen(len(src))
		return r
	}
	r.Error = err.Error()
	if i := n85.IndexInvalid(src); i >= 0 && errors.Is(err, n85.ErrInvalidChar) {
		r.InvalidOffset = &i
		r.InvalidByte = fmt.Sprintf("%#04x", src[i])
	}
	return r
}

// NewCommand returns the "n85 verify" command.
func NewCommand(a *app.App) *cobra.Command {
	var outputFlag app.OutputFormat

	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check that FILE or stdin is valid N85 without writing the decoded bytes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				outputFlag = app.OutputFormat(a.Cfg.Output)
			}

			in, closeInput, err := a.OpenInput(args)
			if err != nil {
				return err
			}
			defer closeInput()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("unable to read data: %w", err)
			}
			if a.Cfg.TrimSpace {
				data = stream.TrimSpace(data)
			}

			report := Check(data)
			if outputFlag == app.OutputFormatJSON {
				if err := a.PrintJSON(report); err != nil {
					return err
				}
			} else {
				printReport(a.OutWriter, report)
			}

			if !report.Valid {
				return ErrInvalid
			}
			return nil
		},
	}

	cmd.Flags().VarP(&outputFlag, "output", "o", "Set output format: default, json")
	if err := cmd.RegisterFlagCompletionFunc("output", app.CompleteOutputFormat); err != nil {
		panic(fmt.Sprintf("Failed to register flag completion: %v", err))
	}

	return cmd
}

func printReport(out io.Writer, r Report) {
	w := app.NewTabWriter(out)
	fmt.Fprintf(w, "VALID\tSYMBOLS\tBYTES\tERROR\t\n")
	var detail string
	if r.Error != "" {
		detail = r.Error
		if r.InvalidOffset != nil {
			detail = fmt.Sprintf("%s: %s at offset %d", r.Error, r.InvalidByte, *r.InvalidOffset)
		}
	}
	fmt.Fprintf(w, "%v\t%v\t%v\t%v\t\n", r.Valid, r.EncodedLength, r.DecodedLength, detail)
	w.Flush()
}
