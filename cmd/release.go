package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostctl/hostctl/hosting"
)

var (
	releaseVersion string
	cloneSource    string
	cloneFinalize  bool
)

var releaseCmd = &cobra.Command{
	Use:   "release <channel-id>",
	Short: "put a version live on a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteID == "" {
			return fmt.Errorf("--site is required")
		}
		if releaseVersion == "" {
			return fmt.Errorf("--version is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		release, err := newHostingClient().CreateRelease(ctx, siteID, hosting.NormalizeName(args[0]), releaseVersion)
		if err != nil {
			return err
		}

		cmd.Printf("created release %s\n", release.Name)
		return nil
	},
}

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "clone an existing version and wait for the copy to finish",
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteID == "" {
			return fmt.Errorf("--site is required")
		}
		if cloneSource == "" {
			return fmt.Errorf("--from is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		version, err := newHostingClient().CloneVersion(ctx, siteID, cloneSource, cloneFinalize)
		if err != nil {
			return err
		}

		cmd.Printf("created version %s (%s)\n", version.Name, version.Status)
		return nil
	},
}

func init() {
	releaseCmd.Flags().StringVar(&releaseVersion, "version", "", "full resource name of the version to release")
	cloneCmd.Flags().StringVar(&cloneSource, "from", "", "full resource name of the version to clone")
	cloneCmd.Flags().BoolVar(&cloneFinalize, "finalize", false, "mark the cloned version deployable right away")
}
