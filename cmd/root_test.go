package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"convert", "version"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "registers-rdf", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestConvertCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"source", "dest", "workers", "skip-bad-records"} {
		flag := convertCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "convert should have --%s flag", flagName)
	}

	workers := convertCmd.Flags().Lookup("workers")
	require.NotNil(t, workers)
	assert.Equal(t, "2", workers.DefValue)
}
