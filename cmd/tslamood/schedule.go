package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	Logger "github.com/moodfeed/tslamood/utils/log"
)

var flagCronSpec string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the full pipeline on a cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(flagCronSpec, func() {
			if err := runOnce(context.Background()); err != nil {
				Logger.Log.Errorf("scheduled run failed: %v", err)
			}
		})
		if err != nil {
			return err
		}

		Logger.Log.WithField("cron", flagCronSpec).Info("scheduler started")
		scheduler.Start()
		defer scheduler.Stop()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		Logger.Log.Info("scheduler stopping")
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&flagCronSpec, "cron", "0 7 * * *", "cron schedule for pipeline runs")
	rootCmd.AddCommand(scheduleCmd)
}
