package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesConfigParser(t *testing.T) {
	t.Parallel()

	var got [][2]string
	set := func(name, value string) error {
		got = append(got, [2]string{name, value})
		return nil
	}

	err := PropertiesConfigParser(strings.NewReader("debug = true\n! comment\nformat: yaml\ndebug=false\n"), set)
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"debug", "true"}, {"format", "yaml"}, {"debug", "false"}}, got)
}

func TestPropertiesConfigParser_Errors(t *testing.T) {
	t.Parallel()

	noop := func(name, value string) error { return nil }
	require.Error(t, PropertiesConfigParser(strings.NewReader("debug\n"), noop))

	calls := 0
	failing := func(name, value string) error {
		calls++
		return errors.New("unknown flag")
	}
	err := PropertiesConfigParser(strings.NewReader("a=1\nb=2\n"), failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setting a")
	assert.Equal(t, 1, calls, "stops at the first failure")
}
