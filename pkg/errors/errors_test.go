package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCodeThroughWrapping(t *testing.T) {
	base := Wrap(CodeLocationNotFound, "no geocoding result", nil)
	wrapped := fmt.Errorf("fetch forecast: %w", base)

	require.True(t, IsCode(wrapped, CodeLocationNotFound))
	require.False(t, IsCode(wrapped, CodeTransportFailure))
	require.Equal(t, CodeLocationNotFound, CodeOf(wrapped))
	require.Empty(t, CodeOf(fmt.Errorf("plain")))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeTransportFailure, "geocoding request failed", fmt.Errorf("dial tcp: timeout"))
	require.Equal(t, "geocoding request failed: dial tcp: timeout", err.Error())
}
