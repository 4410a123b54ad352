package slack

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/drover/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

type client struct {
	api     *slack.Client
	channel string
}

// New creates a Notifier that delivers artifacts and summaries to a fixed
// Slack channel.
func New(token, channel string) interfaces.Notifier {
	return &client{
		api:     slack.New(token),
		channel: channel,
	}
}

// SendFile uploads one file to the channel. An empty caption defaults to the
// file basename.
func (c *client) SendFile(ctx context.Context, path, caption string) error {
	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat upload file", goerr.V("path", path))
	}

	if caption == "" {
		caption = filepath.Base(path)
	}

	_, err = c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        c.channel,
		File:           path,
		FileSize:       int(info.Size()),
		Filename:       filepath.Base(path),
		InitialComment: caption,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to upload file to Slack", goerr.V("path", path), goerr.V("channel", c.channel))
	}

	return nil
}

// SendMessage posts a plain text message to the channel.
func (c *client) SendMessage(ctx context.Context, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Slack", goerr.V("channel", c.channel))
	}

	return nil
}
