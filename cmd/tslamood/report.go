package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/report"
)

var (
	flagReportFormat string
	flagReportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a sentiment digest from stored records",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := buildReport()
		if err != nil {
			return err
		}

		var rendered []byte
		switch flagReportFormat {
		case "markdown":
			rendered = []byte(r.Markdown())
		case "html":
			html, err := r.HTML()
			if err != nil {
				return err
			}
			rendered = []byte(html)
		case "json":
			rendered, err = r.JSON()
			if err != nil {
				return err
			}
		default:
			return errors.Errorf("unknown report format %q", flagReportFormat)
		}

		if flagReportOut != "" {
			return os.WriteFile(flagReportOut, rendered, 0o644)
		}
		fmt.Println(string(rendered))
		return nil
	},
}

func buildReport() (*report.Report, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}

	news, err := store.RecentNewsItems(flagDays)
	if err != nil {
		return nil, err
	}
	tweets, err := store.RecentTweets(flagDays)
	if err != nil {
		return nil, err
	}
	posts, err := store.RecentRedditPosts(flagDays)
	if err != nil {
		return nil, err
	}

	items := report.ItemsFromRows(news, tweets, posts)
	return report.Build(items, flagDays), nil
}

func init() {
	reportCmd.Flags().StringVar(&flagReportFormat, "format", "markdown", "output format: markdown, html or json")
	reportCmd.Flags().StringVar(&flagReportOut, "out", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
