package main

import (
	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/report"
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send the sentiment digest to the configured recipients",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := buildReport()
		if err != nil {
			return err
		}
		return report.NewEmailSender(appConfig.Email).SendDigest(r)
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)
}
