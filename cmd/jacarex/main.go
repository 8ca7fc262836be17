package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Hanaasagi/jacarex/cmd"
	"github.com/Hanaasagi/jacarex/internal"
	"github.com/Hanaasagi/jacarex/internal/logger"
	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = "jacarex"

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var appDir = filepath.Join(xdg.StateHome, appName)

func init() {
	logLevel := os.Getenv("JACAREX_LOG")
	if logLevel == "" {
		logLevel = "info"
	}

	logFilePath := filepath.Join(appDir, appName+".log")
	if _, err := logger.InitLogger(logFilePath, logLevel); err != nil {
		panic(fmt.Sprintf("Error initializing logger: %v", err))
	}
}

// AppConfig holds the command line flags
type AppConfig struct {
	configPath  string
	historyFile string
	engine      string
	sizeLimit   int
	noColor     bool
	showVersion bool
}

// resolve loads the config file and applies explicitly set flags on top
func (a *AppConfig) resolve(c *cobra.Command) (*Config, error) {
	config, err := LoadConfigFromFile(a.configPath)
	if err != nil {
		return nil, err
	}

	flags := c.Flags()
	if flags.Changed("history-file") {
		config.Core.HistoryFile = a.historyFile
	}
	if flags.Changed("engine") {
		config.Core.Engine = a.engine
	}
	if flags.Changed("size-limit") {
		config.Core.SizeLimit = a.sizeLimit
	}
	if a.noColor {
		color.NoColor = true
	}

	return config, nil
}

// runPlayground runs the interactive session until Ctrl-C or EOF
func runPlayground(c *cobra.Command, app *AppConfig) error {
	if app.showVersion {
		fmt.Fprintf(c.OutOrStdout(), "%s version: %s\n", appName, FullVersion)
		return nil
	}

	config, err := app.resolve(c)
	if err != nil {
		return err
	}
	styles, err := config.Styles()
	if err != nil {
		return err
	}
	engine, err := config.NewEngine()
	if err != nil {
		return err
	}

	input := internal.OpenInput(config.Core.HistoryFile)
	defer input.Close() // nolint: errcheck

	session := internal.NewSession(engine,
		internal.WithOutput(c.OutOrStdout(), c.ErrOrStderr()),
		internal.WithStyles(styles),
		internal.WithPrompt(config.Core.Prompt),
		internal.WithStripANSI(config.Core.StripANSI),
	)
	session.Intro()
	return session.Run(input)
}

// runCheck evaluates one or more patterns against a scenario file
func runCheck(c *cobra.Command, app *AppConfig, args []string) error {
	config, err := app.resolve(c)
	if err != nil {
		return err
	}
	styles, err := config.Styles()
	if err != nil {
		return err
	}
	engine, err := config.NewEngine()
	if err != nil {
		return err
	}

	scenario, err := internal.LoadScenario(args[0])
	if err != nil {
		return err
	}

	patterns := args[1:]
	if len(patterns) == 0 && scenario.Pattern != "" {
		patterns = []string{scenario.Pattern}
	}
	if len(patterns) == 0 {
		return errors.New("no pattern given and the scenario does not define one")
	}

	out := c.OutOrStdout()
	failed := 0
	for _, pattern := range patterns {
		fmt.Fprintf(out, "%s %s\n", styles.Command.FgString("pattern"), pattern)

		passed, err := scenario.Check(engine, pattern, out, styles)
		switch {
		case err != nil:
			fmt.Fprintln(c.ErrOrStderr(), err)
			failed++
		case passed:
			fmt.Fprintln(out, styles.Match.FgString("PASS"))
		default:
			fmt.Fprintln(out, styles.Miss.FgString("FAIL"))
			failed++
		}
		slog.Info("Scenario checked", "scenario", args[0], "pattern", pattern, "passed", err == nil && passed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d patterns failed", failed, len(patterns))
	}
	return nil
}

func newRootCommand() *cobra.Command {
	app := &AppConfig{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Interactive playground for testing regular expressions",
		Long: color.New(color.FgHiGreen).Sprintf(
			"Interactive playground for testing regular expressions against sample strings. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, args []string) error {
			return runPlayground(c, app)
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <scenario.toml> [pattern...]",
		Short: "Check patterns against a scenario of expected matches",
		Example: `  jacarex check animals.toml 'c.t'
  jacarex check animals.toml '^c' '^(cat|dog)$'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c, app, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", defaultConfigPath(), "Path to the TOML config file (NONE to skip)")
	flags.StringVar(&app.historyFile, "history-file", "", "Stores the input history in the specified path")
	flags.StringVarP(&app.engine, "engine", "e", internal.EngineRE2, "Pattern engine (re2 or regexp2)")
	flags.IntVar(&app.sizeLimit, "size-limit", internal.DefaultSizeLimit, "Maximum compiled program size for the re2 engine")
	flags.BoolVar(&app.noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVarP(&app.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.AddCommand(checkCmd)

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("Error executing command", "error", err)
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: ")+err.Error())
		os.Exit(1)
	}
}
