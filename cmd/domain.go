package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var domainCommit bool

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "manage identity authorized domains",
}

var domainCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "drop authorized domains of expired preview channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProjectAndSite(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		identityClient := newIdentityClient()
		hostingClient := newHostingClient()

		var (
			domains []string
			err     error
		)
		if domainCommit {
			domains, err = identityClient.SyncDomains(ctx, projectID, siteID, hostingClient)
		} else {
			domains, err = identityClient.CleanDomains(ctx, projectID, siteID, hostingClient)
		}
		if err != nil {
			return err
		}

		for _, domain := range domains {
			cmd.Println(domain)
		}
		return nil
	},
}

func init() {
	domainCleanCmd.Flags().BoolVar(&domainCommit, "commit", false, "write the pruned list back to the identity service")

	domainCmd.AddCommand(domainCleanCmd)
}
