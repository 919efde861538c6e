package cli

import (
	"fmt"

	"resumescreen/internal/ai"
	"resumescreen/internal/common"
	"resumescreen/internal/errors"
	"resumescreen/internal/extract"
	"resumescreen/internal/screening"
	"resumescreen/internal/types"
	"resumescreen/internal/utils"

	"github.com/spf13/cobra"
)

var screenConfig common.CommandConfig
var screenJobFile string

var screenCmd = &cobra.Command{
	Use:   "screen [resume-file...]",
	Short: "Score resumes against a job description",
	Long: `Screen extracts text from each resume file, scores every candidate
against the job description using the configured AI provider, and prints one
validated evaluation record per candidate. Candidates are processed
sequentially with a fixed delay between scoring calls.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		screenConfig.OutputFormat = common.NormalizeFormat(screenConfig.OutputFormat)
		if screenConfig.OutputFormat == "" {
			screenConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(screenConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVarP(&screenJobFile, "job", "j", "", "Job description file (required)")
	screenCmd.Flags().StringVarP(&screenConfig.OutputFile, "output", "o", "", "Output file (default: stdout)")
	screenCmd.Flags().StringVarP(&screenConfig.OutputFormat, "format", "f", "", "Output format: json, text, markdown or csv")
	_ = screenCmd.MarkFlagRequired("job")
	_ = screenCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if cfg, err := getConfigFromContext(cmd.Context()); err == nil {
			return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	})
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(ctx)
	if err != nil {
		return err
	}

	if len(args) > cfg.Screening.MaxBatchSize {
		return errors.NewValidationError(errors.ErrCodeBatchLimitExceeded,
			fmt.Sprintf("Cannot screen %d resumes at once, the limit is %d",
				len(args), cfg.Screening.MaxBatchSize), nil)
	}

	fileProcessor := common.NewFileProcessor(logger)
	jobDescription, err := fileProcessor.ReadJobDescription(screenJobFile)
	if err != nil {
		return err
	}

	// A resume that fails extraction stays in the batch with empty text so
	// the engine records it as a hard-default rather than dropping it.
	extractor := extract.New(logger, cfg.App.MaxFileSize)
	candidates := make([]types.Candidate, 0, len(args))
	for _, filename := range args {
		if !utils.IsResumeFile(filename) {
			logger.Warn("Unsupported resume extension, candidate will get a default record",
				"filename", filename)
		}
		text, err := extractor.Text(filename)
		if err != nil {
			logger.LogError(err, "Resume text extraction failed", "filename", filename)
			text = ""
		}
		candidates = append(candidates, types.Candidate{
			Filename:   filename,
			ResumeText: text,
		})
	}

	aiService, err := ai.NewService(&cfg.AI, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err)
		}
	}()

	engine := screening.NewEngine(aiService.Provider, cfg, logger)
	records := engine.EvaluateBatch(ctx, candidates, jobDescription, func(update types.ProgressUpdate) {
		logger.Info("Candidate evaluated",
			"completed", update.Completed,
			"total", update.Total,
			"candidate", update.Candidate)
	})

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(records, screenConfig)
}
