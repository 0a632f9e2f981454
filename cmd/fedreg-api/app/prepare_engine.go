package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/cartesiandb/federation-registry-server/database"
	"github.com/cartesiandb/federation-registry-server/internal/config"
	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

var prepareEngineCmd = &cobra.Command{
	Use:   "prepare-engine",
	Short: "Engine preparation tool",
	Long: `Engine preparation tool for installing the foreign data wrapper extension
and the registry bookkeeping schema. Use with 'up' or 'down' subcommands.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

var prepareEngineUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending engine preparation steps",
	Long: `Apply all pending preparation steps to bring the engine up to date.
This installs the postgres_fdw extension and the fedreg bookkeeping schema.
The connecting user must be allowed to create extensions.`,
	RunE: runPrepareEngineUp,
}

var prepareEngineDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert engine preparation steps",
	Long: `Revert engine preparation steps.
WARNING: reverting removes the bookkeeping schema and with it the record of
every registered table mapping. Use with caution.

Examples:
  # Revert 1 step
  fedreg-api prepare-engine down --config config.yaml --num-steps 1 --yes

  # Revert everything (WARNING: destroys all registry bookkeeping)
  fedreg-api prepare-engine down --config config.yaml --yes`,
	RunE: runPrepareEngineDown,
}

func init() {
	prepareEngineCmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to all questions")
	prepareEngineCmd.PersistentFlags().UintP("num-steps", "n", 0, "Number of steps (0 = all)")
	prepareEngineCmd.PersistentFlags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := prepareEngineCmd.MarkPersistentFlagRequired("config"); err != nil {
		panic(err)
	}

	prepareEngineCmd.AddCommand(prepareEngineUpCmd)
	prepareEngineCmd.AddCommand(prepareEngineDownCmd)
}

// newMigrator loads the configuration named on the command line and opens a
// migrator against the engine.
func newMigrator(cmd *cobra.Command) (database.Migrator, *config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	connURL, err := cfg.Engine.GetMigrationURL()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build engine connection URL: %w", err)
	}

	m, err := database.NewFromConnectionString(connURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, cfg, nil
}

// confirm asks the operator for a yes/no answer unless --yes was given.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return false, fmt.Errorf("failed to get yes flag: %w", err)
	}
	if yes {
		return true, nil
	}

	fmt.Printf("%s (yes/no): ", prompt)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	return response == "yes" || response == "y", nil
}

func runPrepareEngineUp(cmd *cobra.Command, _ []string) error {
	m, cfg, err := newMigrator(cmd)
	if err != nil {
		return err
	}

	ok, err := confirm(cmd, fmt.Sprintf("About to prepare engine %s@%s:%d/%s. Continue?",
		cfg.Engine.User, cfg.Engine.Host, cfg.Engine.Port, cfg.Engine.Database))
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Preparation cancelled by user")
		return nil
	}

	logger.Info("Applying engine preparation steps...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Engine is already prepared")
			return nil
		}
		return fmt.Errorf("engine preparation failed: %w", err)
	}

	reportVersion(m)
	return nil
}

func runPrepareEngineDown(cmd *cobra.Command, _ []string) error {
	m, _, err := newMigrator(cmd)
	if err != nil {
		return err
	}

	numSteps, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}

	var prompt string
	if numSteps == 0 {
		prompt = "WARNING: This reverts ALL preparation steps and destroys the registry bookkeeping. Continue?"
	} else {
		prompt = fmt.Sprintf("WARNING: This reverts %d step(s) and may destroy registry bookkeeping. Continue?", numSteps)
	}
	ok, err := confirm(cmd, prompt)
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Revert cancelled by user")
		return nil
	}

	if numSteps == 0 {
		logger.Warn("Reverting all engine preparation steps")
		err = m.Down()
	} else {
		if numSteps > math.MaxInt {
			return fmt.Errorf("number of steps exceeds maximum allowed value")
		}
		logger.Infof("Reverting %d step(s)...", numSteps)
		err = m.Steps(-1 * int(numSteps)) // #nosec G115 -- overflow checked above
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Nothing to revert")
			return nil
		}
		return fmt.Errorf("revert failed: %w", err)
	}

	reportVersion(m)
	return nil
}

func reportVersion(m database.Migrator) {
	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("Engine preparation has been completely removed")
			return
		}
		logger.Warnf("Failed to get preparation version: %v", err)
		return
	}

	if dirty {
		logger.Warnf("Preparation version %d is dirty, manual intervention may be required", version)
	} else {
		logger.Infof("Engine prepared at version %d", version)
	}
}
