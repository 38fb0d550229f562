package main

import (
	"github.com/spf13/cobra"

	"github.com/moodfeed/tslamood/collector/instances"
)

var flagSubreddit string

var redditCmd = &cobra.Command{
	Use:   "reddit",
	Short: "Collect and score Reddit posts about Tesla",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		runner, err := newAgentRunner()
		if err != nil {
			return err
		}
		c := instances.NewRedditAgentCollector(runner, appConfig.Reddit)

		result, err := p.CollectRedditPosts(cmd.Context(), c, flagSubreddit, flagQuery, collectWindow())
		logRunResults(result)
		return err
	},
}

func init() {
	redditCmd.Flags().StringVar(&flagSubreddit, "subreddit", "", "override the configured subreddit")
	rootCmd.AddCommand(redditCmd)
}
