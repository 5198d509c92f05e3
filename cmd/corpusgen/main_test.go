package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/toeic-corpus/internal/app"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "corpusgen "+app.BuildVersion(), strings.TrimSpace(out.String()))
}

func TestGenerateCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "phase", "dry-run", "target", "out"} {
		assert.NotNil(t, generateCmd.Flags().Lookup(name), "flag %q", name)
	}
}

func TestGenerateCommand_RejectsArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"generate", "extra"})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetErr(nil) })

	assert.Error(t, rootCmd.Execute())
}
