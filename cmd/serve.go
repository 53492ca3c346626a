package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-radar/internal/logger"
	"github.com/spigell/job-radar/internal/server"
	"github.com/spigell/job-radar/internal/warmup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the job feed over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :3001)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-radar server", zap.String("version", version))

	f, err := buildFeed(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the job feed", zap.Error(err))
	}
	defer f.Close()

	if config.Warmup != nil && config.Warmup.Schedule != "" {
		scheduler := warmup.New(f.Service, config.Warmup.Schedule, config.Warmup.Queries, logger)
		if err := scheduler.Start(ctx); err != nil {
			logger.Fatal("starting cache warm-up", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := server.Serve(ctx, config.Server.Addr, server.NewRouter(f.Service, logger), logger); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
