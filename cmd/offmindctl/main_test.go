package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
}

func TestSeedDestinations_RequiresUser(t *testing.T) {
	_, err := run(t, "seed-destinations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"user"`)
}

func TestSeedDestinations_RejectsBadUUID(t *testing.T) {
	_, err := run(t, "seed-destinations", "--user", "nope")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid --user"))
}

func TestMigrate_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", cmd.Name())

	cmd, _, err = root.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", cmd.Name())
}
