package config

import "github.com/urfave/cli/v3"

// Slack holds notification channel configuration
type Slack struct {
	Token   string
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-api-token",
			Usage:       "Slack API token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("DROVER_SLACK_API_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to relay artifacts to",
			Required:    true,
			Destination: &c.Channel,
			Sources:     cli.EnvVars("DROVER_SLACK_CHANNEL"),
		},
	}
}
