package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostctl/hostctl/hosting"
)

var siteAppID string

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "manage hosting sites of a project",
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "list all sites of a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		sites, err := newHostingClient().ListSites(ctx, projectID)
		if err != nil {
			return err
		}

		for _, site := range sites {
			cmd.Printf("%s\t%s\n", site.Name, site.DefaultURL)
		}
		return nil
	},
}

var siteGetCmd = &cobra.Command{
	Use:   "get <site-id>",
	Short: "show a single site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		site, err := newHostingClient().GetSite(ctx, projectID, args[0])
		if err != nil {
			return err
		}
		if site == nil {
			return fmt.Errorf("site %s not found in project %s", args[0], projectID)
		}

		cmd.Printf("%s\t%s\tapp %s\n", site.Name, site.DefaultURL, site.AppID)
		return nil
	},
}

var siteCreateCmd = &cobra.Command{
	Use:   "create <site-id>",
	Short: "create a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		site, err := newHostingClient().CreateSite(ctx, projectID, args[0], siteAppID)
		if err != nil {
			return err
		}

		cmd.Printf("created site %s at %s\n", site.Name, site.DefaultURL)
		return nil
	},
}

var siteUpdateCmd = &cobra.Command{
	Use:   "update <site-id>",
	Short: "update the app id of a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}
		if siteAppID == "" {
			return fmt.Errorf("--app-id is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		site, err := newHostingClient().UpdateSite(ctx, projectID, args[0], &hosting.Site{AppID: siteAppID}, []string{"appId"})
		if err != nil {
			return err
		}

		cmd.Printf("site %s now linked to app %s\n", site.Name, site.AppID)
		return nil
	},
}

var siteDeleteCmd = &cobra.Command{
	Use:   "delete <site-id>",
	Short: "delete a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectID == "" {
			return fmt.Errorf("--project is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		return newHostingClient().DeleteSite(ctx, projectID, args[0])
	},
}

func init() {
	siteCreateCmd.Flags().StringVar(&siteAppID, "app-id", "", "application id to link the site to")
	siteUpdateCmd.Flags().StringVar(&siteAppID, "app-id", "", "application id to link the site to")

	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteGetCmd)
	siteCmd.AddCommand(siteCreateCmd)
	siteCmd.AddCommand(siteUpdateCmd)
	siteCmd.AddCommand(siteDeleteCmd)
}
