package main

import (
	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/clients"
	"github.com/moodfeed/tslamood/collector/enrich"
	"github.com/moodfeed/tslamood/collector/instances"
	"github.com/moodfeed/tslamood/config"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

var (
	flagNewsLimit   int
	flagSourcesFile string
	flagEnrich      bool
)

var fetchNewsCmd = &cobra.Command{
	Use:   "fetch-news",
	Short: "Collect and score Tesla news coverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		if flagEnrich {
			p.Enricher = enrich.NewArticleFetcher()
		}

		collectors := []collector.NewsCollector{
			instances.NewDuckDuckGoNewsCollector(clients.NewDefaultHttpClient()),
		}
		sources, err := config.LoadSources(flagSourcesFile)
		if err != nil {
			return err
		}
		if len(sources.Feeds) > 0 {
			collectors = append(collectors, instances.NewRSSNewsCollector(sources.Feeds))
		}

		query := flagQuery
		if query == "" {
			query = "Tesla TSLA"
		}
		results, stored, err := p.CollectNews(cmd.Context(), collectors, query, collectWindow(), flagNewsLimit)
		logRunResults(results...)
		Logger.Log.WithField("stored", stored).Info("news rows stored")
		return err
	},
}

func init() {
	fetchNewsCmd.Flags().IntVar(&flagNewsLimit, "limit", 30, "maximum articles per source")
	fetchNewsCmd.Flags().StringVar(&flagSourcesFile, "sources", "sources.yaml", "path to the RSS sources file")
	fetchNewsCmd.Flags().BoolVar(&flagEnrich, "enrich", false, "fetch full article bodies before scoring")
	rootCmd.AddCommand(fetchNewsCmd)
}
