package cmd

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hostctl/hostctl/hosting"
	"github.com/hostctl/hostctl/identity"
	"github.com/hostctl/hostctl/util"
	"github.com/hostctl/hostctl/version"
)

const envVarPrefix = "HOSTCTL_"

var (
	projectID   string
	siteID      string
	authToken   string
	hostingURL  string
	identityURL string
	logLevel    string
	logFile     string

	rootCmd = &cobra.Command{
		Use:          "hostctl",
		Short:        "manage hosting sites, preview channels and authorized domains",
		SilenceUsage: true,
		Version:      version.Version(),
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		SetFlagsFromEnvVars(rootCmd)

		if err := util.InitLog(logLevel, logFile); err != nil {
			return err
		}

		setupUpdateCheck(version.NewUpdate())
		return nil
	}

	rootCmd.PersistentFlags().StringVarP(&projectID, "project", "p", "", "Project id the command operates on")
	rootCmd.PersistentFlags().StringVarP(&siteID, "site", "s", "", "Hosting site id the command operates on")
	rootCmd.PersistentFlags().StringVarP(&authToken, "token", "t", "", "Bearer token for API calls (can be set via "+envVarPrefix+"TOKEN)")
	rootCmd.PersistentFlags().StringVar(&hostingURL, "hosting-url", hosting.DefaultEndpoint, "Hosting API origin")
	rootCmd.PersistentFlags().StringVar(&identityURL, "identity-url", identity.DefaultEndpoint, "Identity API origin")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "sets hostctl log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "console", "sets hostctl log path. If console is specified the log will be output to stdout")

	rootCmd.AddCommand(channelCmd)
	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(domainCmd)
}

// SetFlagsFromEnvVars reads and updates flag values from environment variables with prefix HOSTCTL_
func SetFlagsFromEnvVars(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.VisitAll(func(f *pflag.Flag) {
		envVar := FlagNameToEnvVar(f.Name, envVarPrefix)

		if value, present := os.LookupEnv(envVar); present {
			err := flags.Set(f.Name, value)
			if err != nil {
				log.Infof("unable to configure flag %s using variable %s, err: %v", f.Name, envVar, err)
			}
		}
	})
}

// FlagNameToEnvVar converts flag name to environment var name adding a prefix,
// replacing dashes and making all uppercase (e.g. log-level is converted to HOSTCTL_LOG_LEVEL according to the input prefix)
func FlagNameToEnvVar(cmdFlag string, prefix string) string {
	parsed := strings.ReplaceAll(cmdFlag, "-", "_")
	upper := strings.ToUpper(parsed)
	return prefix + upper
}

// updateNotifier invokes a listener when a newer hostctl release exists.
type updateNotifier interface {
	SetOnUpdateListener(func(version string))
}

// setupUpdateCheck logs a hint as soon as a newer release is known.
func setupUpdateCheck(notifier updateNotifier) {
	notifier.SetOnUpdateListener(func(latest string) {
		log.Infof("update available: hostctl %s, current version %s", latest, version.Version())
	})
}

func newHostingClient() *hosting.Client {
	return hosting.NewClient(
		hosting.WithEndpoint(hostingURL),
		hosting.WithAuthToken(authToken),
	)
}

func newIdentityClient() *identity.Client {
	return identity.NewClient(
		identity.WithEndpoint(identityURL),
		identity.WithAuthToken(authToken),
	)
}
