package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/gradewise/internal/config"
	"github.com/abhisek/gradewise/internal/logging"
	"github.com/abhisek/gradewise/internal/store"
)

// cfg and logger are populated by the root PersistentPreRunE.
var (
	cfg    = config.Default()
	logger = logging.Nop()
)

// now is replaced in tests.
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "gradewise",
	Short: "Grade analytics and flashcard scheduling",
	Long: "Gradewise summarises grade data, correlates grades with sentiment, ranks\n" +
		"assignments by how much they can move a course grade, and schedules\n" +
		"flashcard reviews with SM-2.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GRADEWISE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file with GRADEWISE_* overrides, loaded if present")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command) error {
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
	}

	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		loaded.Log.Level = lvl
	}

	l, err := logging.New(logging.Options{
		Level:   loaded.Log.Level,
		File:    loaded.Log.File,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	cfg, logger = loaded, l
	logger.Debug("config loaded", zap.String("file", path), zap.String("command", cmd.CommandPath()))
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then GRADEWISE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the resolved database. Callers must Close it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	logger.Debug("opening database", zap.String("path", path))
	return store.Open(path)
}
