package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/clients"
	"github.com/moodfeed/tslamood/collector/instances"
	"github.com/moodfeed/tslamood/config"
	"github.com/moodfeed/tslamood/report"
	Logger "github.com/moodfeed/tslamood/utils/log"
)

var flagSendEmail bool

var runOnceCmd = &cobra.Command{
	Use:   "run-once",
	Short: "Run the full pipeline: news, twitter, reddit, then the digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd.Context())
	},
}

// runOnce executes every collector in sequence. A failed source is logged
// and skipped; the digest is rendered from whatever landed.
func runOnce(ctx context.Context) error {
	runId := uuid.New().String()
	Logger.Log.WithField("run_id", runId).Info("pipeline run starting")

	p, err := newPipeline()
	if err != nil {
		return err
	}
	window := collectWindow()

	query := flagQuery
	if query == "" {
		query = "Tesla TSLA"
	}

	newsCollectors := []collector.NewsCollector{
		instances.NewDuckDuckGoNewsCollector(clients.NewDefaultHttpClient()),
	}
	if sources, err := config.LoadSources(flagSourcesFile); err == nil && len(sources.Feeds) > 0 {
		newsCollectors = append(newsCollectors, instances.NewRSSNewsCollector(sources.Feeds))
	}
	newsResults, newsStored, err := p.CollectNews(ctx, newsCollectors, query, window, flagNewsLimit)
	if err != nil {
		Logger.Log.Errorf("news stage failed: %v", err)
	}
	logRunResults(newsResults...)
	Logger.Log.WithField("stored", newsStored).Info("news rows stored")

	if appConfig.Webhook.BaseURL != "" {
		client := clients.NewWebhookClient(appConfig.Webhook.BaseURL, appConfig.Webhook.Timeout)
		twitterResult, err := p.CollectTweets(ctx, instances.NewTwitterWebhookCollector(client, appConfig.Twitter), flagQuery, window)
		if err != nil {
			Logger.Log.Errorf("twitter stage failed: %v", err)
		}
		logRunResults(twitterResult)
	} else {
		Logger.Log.Info("no webhook base URL configured, skipping twitter stage")
	}

	if appConfig.OpenAI.APIKey != "" {
		runner, err := newAgentRunner()
		if err != nil {
			return err
		}
		redditResult, err := p.CollectRedditPosts(ctx, instances.NewRedditAgentCollector(runner, appConfig.Reddit), "", flagQuery, window)
		if err != nil {
			Logger.Log.Errorf("reddit stage failed: %v", err)
		}
		logRunResults(redditResult)
	} else {
		Logger.Log.Info("no OpenAI key configured, skipping reddit stage")
	}

	if p.Store == nil {
		Logger.Log.Info("no database configured, skipping digest")
		return nil
	}

	r, err := buildReport()
	if err != nil {
		return err
	}
	Logger.Log.WithField("mood", r.Stats.Mood).Info("digest built")

	if flagSendEmail {
		return report.NewEmailSender(appConfig.Email).SendDigest(r)
	}
	return nil
}

func init() {
	runOnceCmd.Flags().BoolVar(&flagSendEmail, "email", false, "email the digest after the run")
	rootCmd.AddCommand(runOnceCmd)
}
