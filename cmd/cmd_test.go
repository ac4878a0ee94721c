package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/domact/pkg/domact"
)

func TestLocatorFromFlags(t *testing.T) {
	locator, err := locatorFromFlags("#login", "")
	require.NoError(t, err)
	assert.Equal(t, domact.Locator{Strategy: domact.ByCSS, Value: "#login"}, locator)

	locator, err = locatorFromFlags("", "//button[@id='login']")
	require.NoError(t, err)
	assert.Equal(t, domact.ByXPath, locator.Strategy)

	_, err = locatorFromFlags("#a", "//b")
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = locatorFromFlags("", "")
	assert.ErrorContains(t, err, "required")
}

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["inspect"], "inspect command should be registered")
	assert.True(t, names["click"], "click command should be registered")

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))

	for _, sub := range []string{"inspect", "click"} {
		cmd, _, err := rootCmd.Find([]string{sub})
		require.NoError(t, err)
		assert.NotNil(t, cmd.Flags().Lookup("css"))
		assert.NotNil(t, cmd.Flags().Lookup("xpath"))
	}
}
