package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FrenchMajesty/ticket-triage/internal/logging"
	"github.com/FrenchMajesty/ticket-triage/internal/render"
	"github.com/FrenchMajesty/ticket-triage/internal/retry"
	"github.com/FrenchMajesty/ticket-triage/internal/settings"
	"github.com/FrenchMajesty/ticket-triage/pkg/adapters"
	"github.com/FrenchMajesty/ticket-triage/pkg/triage"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticket text]",
	Short: "Triage a single ticket",
	Long: `Triage a ticket given as arguments, read from --file, or piped on stdin.

Examples:
  ticket-triage analyze "Checkout is down for all users"
  ticket-triage analyze --ai --output json --file ticket.txt
  cat ticket.txt | ticket-triage analyze --ai --retries 2`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("file", "f", "", "read the ticket from a file (- for stdin)")
	analyzeCmd.Flags().Bool("ai", false, "use the OpenAI model instead of the local heuristic")
	analyzeCmd.Flags().String("model", "", "model name for AI mode (default "+adapters.DefaultModel+")")
	analyzeCmd.Flags().String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY)")
	analyzeCmd.Flags().StringP("output", "o", "text", "output format: text, json or yaml")
	analyzeCmd.Flags().Int("retries", 0, "retry transient AI failures this many times")
	analyzeCmd.Flags().Duration("timeout", 60*time.Second, "overall time limit for the analysis")

	viper.BindPFlag(settings.KeyUseAI, analyzeCmd.Flags().Lookup("ai"))
	viper.BindPFlag(settings.KeyModel, analyzeCmd.Flags().Lookup("model"))
	viper.BindPFlag(settings.KeyAPIKey, analyzeCmd.Flags().Lookup("api-key"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, err := render.ParseFormat(output)
	if err != nil {
		return err
	}

	text, err := readTicket(cmd, args)
	if err != nil {
		return err
	}

	s := settings.Load(viper.GetViper())
	strategy := s.Strategy()
	opts := triage.Options{
		Strategy: strategy,
		APIKey:   s.APIKey,
		Model:    s.Model,
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	retries, _ := cmd.Flags().GetInt("retries")
	analyzer := newAnalyzer(s)

	result, err := retry.Do(ctx, retry.Options{
		Config:       retry.DefaultConfig(retries),
		ErrorChecker: triage.Retryable,
		Logger:       logging.For(logging.ComponentRetry),
		Name:         "analyze",
	}, func(attempt int) (*types.Result, error) {
		return analyzer.Analyze(ctx, text, opts)
	})
	if err != nil {
		return err
	}

	if err := render.Render(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), render.StatusLine(result.Source, nil))
	return nil
}

// readTicket picks the ticket text from --file, the arguments, or piped stdin
func readTicket(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file")

	switch {
	case file == "-":
		return readAll(cmd.InOrStdin())
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read ticket file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		info, err := f.Stat()
		if err != nil || info.Mode()&os.ModeCharDevice != 0 {
			// Interactive terminal with nothing piped
			return "", nil
		}
	}
	return readAll(in)
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read ticket from stdin: %w", err)
	}
	return string(data), nil
}
