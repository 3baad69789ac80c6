package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/mini-dungeon/internal/engine"
)

func setConsoleEnv(t *testing.T) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("MINIDUNGEON_STORY", "")
	t.Setenv("MINIDUNGEON_UI", "console")
	t.Setenv("MINIDUNGEON_CLEAR_SCREEN", "false")
	t.Setenv("MINIDUNGEON_LOG_LEVEL", "info")
	t.Setenv("MINIDUNGEON_LOG_ENCODING", "json")
	t.Setenv("MINIDUNGEON_LOG_OUTPUT", logPath)
	return logPath
}

func TestRunPlaysAndDeclinesReplay(t *testing.T) {
	logPath := setConsoleEnv(t)
	var out bytes.Buffer

	code := run(strings.NewReader("straight\nwalk around the edge\nleave\nno\n"), &out)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasSuffix(out.String(), engine.Goodbye+"\n"))

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Session ended")
}

func TestRunFlushesLogOnBadStory(t *testing.T) {
	logPath := setConsoleEnv(t)
	storyPath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(storyPath, []byte("title: Broken\nroot: nowhere\nnodes: []\n"), 0o644))
	t.Setenv("MINIDUNGEON_STORY", storyPath)
	var out bytes.Buffer

	code := run(strings.NewReader(""), &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Error loading story")

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Story failed to build")
}

func TestRunClosedInputSaysGoodbye(t *testing.T) {
	setConsoleEnv(t)
	var out bytes.Buffer

	code := run(strings.NewReader(""), &out)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasSuffix(out.String(), engine.Goodbye+"\n"))
}
