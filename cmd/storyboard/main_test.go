package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStories = `{
  "people": [
    {"id": 101, "name": "Darth Vader", "initials": "DV"},
    {"id": 102, "name": "Wilhuff Tarkin", "initials": "WT"}
  ],
  "stories": [
    {"id": 1, "name": "Build the planetoid", "storyType": "feature", "current_state": "started", "ownerIds": [101]},
    {"id": 2, "name": "Exhaust port", "storyType": "bug", "current_state": "unstarted", "ownerIds": [102, 101],
     "blockers": [{"resolved": false}]},
    {"id": 3, "name": "Polish the helmet", "storyType": "chore", "current_state": "accepted", "ownerIds": [102]}
  ]
}`

// setup isolates config and state in a temp dir and returns the flags
// pointing at them.
func setup(t *testing.T) (dir string, baseArgs []string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("STORYBOARD_CONFIG", filepath.Join(dir, "missing.toml"))

	stories := filepath.Join(dir, "stories.json")
	require.NoError(t, os.WriteFile(stories, []byte(testStories), 0o600))

	return dir, []string{
		"--stories", stories,
		"--state-file", filepath.Join(dir, "state", "address"),
		"--base-url", "https://board.example.com/projects/99",
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFilterCommand(t *testing.T) {
	_, base := setup(t)

	out, err := execute(t, append([]string{"filter", "--query", "owners=102&types=bug,chore"}, base...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "filter: owners=102&types=bug,chore")
	assert.Contains(t, out, "Pending (1)")
	assert.Contains(t, out, "#2 bug     Exhaust port [blocked] (WT, DV)")
	assert.Contains(t, out, "Started (0)")
	assert.Contains(t, out, "Delivered | Accepted (1)")
	assert.Contains(t, out, "Polish the helmet")
	assert.NotContains(t, out, "Build the planetoid")
}

func TestFilterCommand_SavedAddress(t *testing.T) {
	dir, base := setup(t)

	statePath := filepath.Join(dir, "state", "address")
	require.NoError(t, os.MkdirAll(filepath.Dir(statePath), 0o755))
	require.NoError(t, os.WriteFile(statePath, []byte("owners=101\n"), 0o600))

	out, err := execute(t, append([]string{"filter", "--split"}, base...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "filter: owners=101")
	assert.Contains(t, out, "Started (1)")
	assert.Contains(t, out, "Accepted (0)")
	assert.NotContains(t, out, "Polish the helmet")
}

func TestFilterCommand_DoesNotCreateStateDir(t *testing.T) {
	dir, base := setup(t)

	_, err := execute(t, append([]string{"filter"}, base...)...)
	require.NoError(t, err)

	_, err = execute(t, append([]string{"link"}, base...)...)
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dir, "state"))
}

func TestFilterCommand_MissingStories(t *testing.T) {
	dir, base := setup(t)

	args := append([]string{"filter"}, base...)
	args = append(args, "--stories", filepath.Join(dir, "nope.json"))
	_, err := execute(t, args...)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLinkCommand(t *testing.T) {
	_, base := setup(t)

	out, err := execute(t, append([]string{"link", "--query", "?types=feature,bug&owners=2,1,abc"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "https://board.example.com/projects/99?owners=1,2&types=bug,feature\n", out)
}

func TestLinkCommand_Open(t *testing.T) {
	_, base := setup(t)

	var opened []string
	orig := openURL
	openURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}
	t.Cleanup(func() { openURL = orig })

	_, err := execute(t, append([]string{"link", "--open", "--query", "owners=101"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://board.example.com/projects/99?owners=101"}, opened)
}
