package cmd

import (
	"context"
	"log"
	"time"

	"telegram-calls/internal/repository"
	"telegram-calls/internal/service"
	"telegram-calls/pkg/utils"

	"github.com/spf13/cobra"
)

var replayDate string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-run the classifier over stored raw messages for one day",
	Run:   Replay,
}

func init() {
	replayCmd.Flags().StringVar(&replayDate, "date", "", "day to replay in YYYY-MM-DD format (default: today)")
}

func Replay(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services, err := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.notifier,
		appDep.cache,
	)
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	loc := utils.MustLoadLocation(appDep.cfg.Session.Timezone)
	day := time.Now().In(loc)
	if replayDate != "" {
		day, err = time.ParseInLocation("2006-01-02", replayDate, loc)
		if err != nil {
			log.Fatalf("Invalid --date value %q: %v", replayDate, err)
		}
	}

	result, err := services.ReplayService.ReplayDay(ctx, day)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	log.Printf("Replay done: scanned=%d detected=%d stored=%d", result.Scanned, result.Detected, result.Stored)
}
