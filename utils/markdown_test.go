package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdown(t *testing.T) {
	require.Equal(t, `Latte \(large\)`, EscapeMarkdown("Latte (large)"))
	require.Equal(t, `a\_b\*c\!`, EscapeMarkdown("a_b*c!"))
	require.Equal(t, `12\.50`, EscapeMarkdown("12.50"))
	require.Equal(t, "plain text", EscapeMarkdown("plain text"))
	require.Equal(t, "", EscapeMarkdown(""))
}
