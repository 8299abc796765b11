package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/rag-prep/internal/element"
	"github.com/thywilljoshua/rag-prep/internal/prep"
)

// geminiKeyEnv holds the remote-service credential. Only the CLI reads the
// environment; the prep package takes the key as explicit configuration.
const geminiKeyEnv = "GEMINI_API_KEY"

type describeOutput struct {
	Images []prep.ImageRecord `json:"images"`
	Errors []prep.ErrorRecord `json:"errors"`
}

func describeCmd() *cobra.Command {
	var remote bool
	var model string
	var subject string
	var timeout time.Duration
	var out string
	var configPath string

	cmd := &cobra.Command{
		Use:   "describe <elements.json>",
		Short: "Pair images with captions and generate image descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := element.Load(args[0])
			if err != nil {
				return err
			}

			var cfg prep.Config
			if configPath != "" {
				fc, err := loadFileConfig(configPath)
				if err != nil {
					return err
				}
				if err := fc.apply(&cfg); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("model") || cfg.Model == "" {
				cfg.Model = model
			}
			if cmd.Flags().Changed("subject") || cfg.SubjectDomain == "" {
				cfg.SubjectDomain = subject
			}
			if cmd.Flags().Changed("timeout") || cfg.Timeout == 0 {
				cfg.Timeout = timeout
			}
			if remote {
				cfg.APIKey = os.Getenv(geminiKeyEnv)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				With().Timestamp().Logger()
			cfg.Logger = &logger

			gen := prep.New(cfg)
			records, failures, err := gen.DescribeImages(cmd.Context(), elements, remote)
			if err != nil {
				return err
			}

			res := describeOutput{Images: records, Errors: failures}
			b, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, append(b, '\n'), 0o644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "generate descriptions with the remote model (requires "+geminiKeyEnv+")")
	cmd.Flags().StringVar(&model, "model", "", "remote model name (default gemini-2.5-flash)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject domain of the document, used in the description prompt")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "per-image timeout for remote calls")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write results to a file instead of stdout")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	return cmd
}
