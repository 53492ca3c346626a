package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/adzuna"
	"github.com/spigell/job-radar/internal/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the job provider",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return health(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func health(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newAdzunaClient(config.Adzuna, logger)
	if err != nil {
		return err
	}

	report := client.HealthCheck(ctx)
	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(pretty))

	if report.Status != adzuna.StatusHealthy {
		return fmt.Errorf("job provider is %s", report.Status)
	}
	return nil
}
