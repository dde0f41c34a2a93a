package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostctl/hostctl/hosting"
)

var channelTTL time.Duration

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "manage preview channels of a hosting site",
}

var channelListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all channels of a site",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProjectAndSite(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		channels, err := newHostingClient().ListChannels(ctx, projectID, siteID)
		if err != nil {
			return err
		}

		for _, channel := range channels {
			cmd.Printf("%s\t%s\texpires %s\n", channel.Name, channel.URL, channel.ExpireTime)
		}
		return nil
	},
}

var channelGetCmd = &cobra.Command{
	Use:   "get <channel-id>",
	Short: "show a single channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProjectAndSite(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		channel, err := newHostingClient().GetChannel(ctx, projectID, siteID, hosting.NormalizeName(args[0]))
		if err != nil {
			return err
		}
		if channel == nil {
			return fmt.Errorf("channel %s not found on site %s", args[0], siteID)
		}

		cmd.Printf("%s\t%s\texpires %s\n", channel.Name, channel.URL, channel.ExpireTime)
		return nil
	},
}

var channelCreateCmd = &cobra.Command{
	Use:   "create <channel-id>",
	Short: "create a channel, the id is normalized before use",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProjectAndSite(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		channel, err := newHostingClient().CreateChannel(ctx, projectID, siteID, hosting.NormalizeName(args[0]), channelTTL)
		if err != nil {
			return err
		}

		cmd.Printf("created channel %s at %s\n", channel.Name, channel.URL)
		return nil
	},
}

var channelTTLCmd = &cobra.Command{
	Use:   "ttl <channel-id>",
	Short: "reset the time to live of a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProjectAndSite(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		channel, err := newHostingClient().UpdateChannelTTL(ctx, projectID, siteID, hosting.NormalizeName(args[0]), channelTTL)
		if err != nil {
			return err
		}

		cmd.Printf("channel %s now expires %s\n", channel.Name, channel.ExpireTime)
		return nil
	},
}

var channelDeleteCmd = &cobra.Command{
	Use:   "delete <channel-id>...",
	Short: "delete one or more channels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProjectAndSite(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		channelIDs := make([]string, 0, len(args))
		for _, arg := range args {
			channelIDs = append(channelIDs, hosting.NormalizeName(arg))
		}

		return newHostingClient().DeleteChannels(ctx, projectID, siteID, channelIDs)
	},
}

func requireProjectAndSite() error {
	if projectID == "" {
		return fmt.Errorf("--project is required")
	}
	if siteID == "" {
		return fmt.Errorf("--site is required")
	}
	return nil
}

func init() {
	channelCreateCmd.Flags().DurationVar(&channelTTL, "ttl", 0, "channel time to live, e.g. 48h (default 7 days)")
	channelTTLCmd.Flags().DurationVar(&channelTTL, "ttl", 0, "channel time to live, e.g. 48h (default 7 days)")

	channelCmd.AddCommand(channelListCmd)
	channelCmd.AddCommand(channelGetCmd)
	channelCmd.AddCommand(channelCreateCmd)
	channelCmd.AddCommand(channelTTLCmd)
	channelCmd.AddCommand(channelDeleteCmd)
}
