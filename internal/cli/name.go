package cli

import (
	"fmt"

	"resumescreen/internal/extract"
	"resumescreen/internal/names"
	"resumescreen/internal/types"

	"github.com/spf13/cobra"
)

var nameShowConfidence bool

var nameCmd = &cobra.Command{
	Use:   "name [resume-file]",
	Short: "Extract the candidate name from a resume file",
	Long: `Name runs only the candidate name extraction step: it pulls text from
the resume, tries each extraction strategy in order, and falls back to the
filename when the text yields nothing. Useful for checking how a resume will
be labeled before running a full screening.`,
	Args: cobra.ExactArgs(1),
	RunE: runName,
}

func init() {
	nameCmd.Flags().BoolVar(&nameShowConfidence, "confidence", false, "Also print the confidence score")
}

func runName(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(ctx)
	if err != nil {
		return err
	}

	filename := args[0]
	text, err := extract.New(logger, cfg.App.MaxFileSize).Text(filename)
	if err != nil {
		// The filename strategies can still produce a usable name.
		logger.Warn("Text extraction failed, falling back to the filename",
			"filename", filename, "error", err)
		text = ""
	}

	name := names.Extract(text)
	if name == types.UnknownCandidate {
		name = names.ExtractFromFilename(filename)
	}

	if nameShowConfidence {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (confidence %.2f)\n",
			name, names.Confidence(name, text))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	return nil
}
