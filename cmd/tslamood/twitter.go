package main

import (
	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/collector"
	"github.com/moodfeed/tslamood/collector/agent"
	"github.com/moodfeed/tslamood/collector/clients"
	"github.com/moodfeed/tslamood/collector/instances"
)

var flagBrowser bool

var twitterCmd = &cobra.Command{
	Use:   "twitter",
	Short: "Collect and score tweets about Tesla",
	Long: `Collects tweets through the n8n scraper workflow by default, or through a
local browser session with --browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		var c collector.TweetCollector
		if flagBrowser {
			runner, err := newAgentRunner()
			if err != nil {
				return err
			}
			c = instances.NewTwitterAgentCollector(runner, appConfig.Twitter)
		} else {
			client := clients.NewWebhookClient(appConfig.Webhook.BaseURL, appConfig.Webhook.Timeout)
			c = instances.NewTwitterWebhookCollector(client, appConfig.Twitter)
		}

		result, err := p.CollectTweets(cmd.Context(), c, flagQuery, collectWindow())
		logRunResults(result)
		return err
	},
}

func newAgentRunner() (collector.AgentRunner, error) {
	extractor, err := agent.NewOpenAIExtractor(appConfig.OpenAI.APIKey, appConfig.OpenAI.Model, appConfig.OpenAI.Timeout)
	if err != nil {
		return nil, err
	}
	cache := agent.NewSessionCache(appConfig.App.CacheDir, appConfig.Browser.SessionMaxAge)
	return agent.NewChromeRunner(appConfig.Browser, cache, extractor), nil
}

func init() {
	twitterCmd.Flags().BoolVar(&flagBrowser, "browser", false, "use a local browser session instead of the n8n workflow")
	rootCmd.AddCommand(twitterCmd)
}
