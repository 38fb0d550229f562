package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/sink"
	"github.com/moodfeed/tslamood/config"
	"github.com/moodfeed/tslamood/pipeline"
	"github.com/moodfeed/tslamood/sentiment"
	"github.com/moodfeed/tslamood/storage"
	Logger "github.com/moodfeed/tslamood/utils/log"
	"github.com/moodfeed/tslamood/utils/statusstore"
)

var (
	appConfig *config.Config

	flagDays   int
	flagQuery  string
	flagDryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "tslamood",
	Short: "Tesla news and social sentiment pipeline",
	Long: `tslamood collects Tesla coverage from news search, RSS feeds, Twitter and
Reddit, scores it with an LLM, persists it to Postgres, and renders digests.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = config.Load()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagDays, "days", 1, "collection window in days, ending now")
	rootCmd.PersistentFlags().StringVar(&flagQuery, "query", "", "override the search query")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "collect and score without writing to the database")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Logger.Log.Fatal(err)
	}
}

func collectWindow() collector.CollectWindow {
	now := time.Now().UTC()
	return collector.CollectWindow{
		Since: now.AddDate(0, 0, -flagDays),
		Until: now,
	}
}

// newPipeline assembles the shared pipeline from the config. The store is
// skipped on --dry-run or a missing DSN, scoring is skipped without an API
// key; the pipeline degrades instead of refusing to run.
func newPipeline() (*pipeline.Pipeline, error) {
	p := &pipeline.Pipeline{}

	if !flagDryRun && appConfig.Postgres.DSN != "" {
		store, err := storage.NewStore(appConfig.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(); err != nil {
			return nil, err
		}
		p.Store = store
	} else {
		Logger.Log.Info("running without database, records will not be persisted")
		p.Sink = sink.NewStdErrSink()
	}

	if appConfig.Redis.Enabled() {
		status, err := statusstore.NewRedisStatusStore(appConfig.Redis)
		if err != nil {
			Logger.Log.Warnf("redis unreachable, cross-run dedup disabled: %v", err)
		} else {
			p.Status = status
		}
	}

	if appConfig.OpenAI.APIKey != "" {
		analyzer, err := sentiment.NewOpenAIAnalyzer(appConfig.OpenAI.APIKey, appConfig.OpenAI.Model, appConfig.OpenAI.Timeout)
		if err != nil {
			return nil, err
		}
		p.Classifier = sentiment.NewClassifier(analyzer)
		p.Scorer = analyzer
	} else {
		Logger.Log.Info("running without OpenAI key, records will be stored unscored")
		p.Classifier = sentiment.NewClassifier(nil)
	}

	return p, nil
}

func newStore() (*storage.Store, error) {
	return storage.NewStore(appConfig.Postgres.DSN)
}

func logRunResults(results ...pipeline.RunResult) {
	for _, r := range results {
		Logger.Log.WithFields(map[string]interface{}{
			"source":   r.Source,
			"accepted": r.Accepted,
			"rejected": r.Rejected,
			"stored":   r.Stored,
		}).Info("run finished")
	}
}
