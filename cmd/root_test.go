package cmd

import (
	"bytes"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootSubcommands(t *testing.T) {
	expected := []string{"channel", "site", "release", "clone", "domain"}

	registered := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "missing subcommand %s", name)
	}
}

func TestRequireProjectAndSite(t *testing.T) {
	origProject, origSite := projectID, siteID
	t.Cleanup(func() {
		projectID, siteID = origProject, origSite
	})

	projectID, siteID = "", ""
	require.Error(t, requireProjectAndSite())

	projectID, siteID = "my-project", ""
	require.Error(t, requireProjectAndSite())

	projectID, siteID = "my-project", "my-site"
	require.NoError(t, requireProjectAndSite())
}

func TestFlagNameToEnvVar(t *testing.T) {
	assert.Equal(t, "HOSTCTL_LOG_LEVEL", FlagNameToEnvVar("log-level", envVarPrefix))
	assert.Equal(t, "HOSTCTL_TOKEN", FlagNameToEnvVar("token", envVarPrefix))
}

func TestSetFlagsFromEnvVars(t *testing.T) {
	origProject, origToken := projectID, authToken
	t.Cleanup(func() {
		projectID, authToken = origProject, origToken
	})

	t.Setenv("HOSTCTL_PROJECT", "env-project")
	t.Setenv("HOSTCTL_TOKEN", "env-secret")

	SetFlagsFromEnvVars(rootCmd)

	assert.Equal(t, "env-project", projectID)
	assert.Equal(t, "env-secret", authToken)
}

// fakeUpdateNotifier records the registered listener.
type fakeUpdateNotifier struct {
	listener func(version string)
}

func (f *fakeUpdateNotifier) SetOnUpdateListener(updateFn func(version string)) {
	f.listener = updateFn
}

func TestSetupUpdateCheckLogsHint(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
	})

	notifier := &fakeUpdateNotifier{}
	setupUpdateCheck(notifier)

	require.NotNil(t, notifier.listener, "a listener should be registered")
	notifier.listener("9.9.9")

	assert.Contains(t, buf.String(), "update available")
	assert.Contains(t, buf.String(), "9.9.9")
}
