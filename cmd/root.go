package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FrenchMajesty/ticket-triage/internal/logging"
	"github.com/FrenchMajesty/ticket-triage/internal/settings"
	"github.com/FrenchMajesty/ticket-triage/pkg/triage"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ticket-triage",
	Short: "Triage support tickets by severity and urgency",
	Long: `ticket-triage reads a support ticket and reports its severity, a response-time
target, a panic score and a drafted first reply. It runs a local keyword heuristic
by default, or asks an OpenAI model when AI mode is on.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Setup(viper.GetString("log_level"), viper.GetString("log_format"), cmd.ErrOrStderr()); err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logging.For(logging.ComponentCLI).Debug("using config file", "path", used)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+settings.FileName+")")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("base-url", "", "OpenAI API root, e.g. a compatible proxy (or set TICKET_TRIAGE_BASE_URL)")
	rootCmd.PersistentFlags().Bool("dump-requests", false, "write every remote exchange under debug_llm_requests/")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("dump_requests", rootCmd.PersistentFlags().Lookup("dump-requests"))

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(settingsCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := settings.Bind(viper.GetViper()); err != nil {
		slog.Warn("failed to bind environment", "error", err)
	}

	path, err := configPath()
	if err != nil {
		slog.Warn("no settings file available", "error", err)
		return
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	// A missing file just means nothing was saved yet
	_ = viper.ReadInConfig()
}

// configPath is the settings file in use: --config, or the default in $HOME
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return settings.DefaultPath()
}

// newAnalyzer builds the triage facade from the process configuration
func newAnalyzer(s settings.Settings) *triage.Analyzer {
	return triage.NewAnalyzer(triage.Config{
		Model:        s.Model,
		BaseURL:      viper.GetString("base_url"),
		DumpRequests: viper.GetBool("dump_requests"),
		Logger:       logging.For(logging.ComponentTriage),
	})
}
