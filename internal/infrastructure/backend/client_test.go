package backend

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate([]byte("short"), 10))
	require.Equal(t, "abcde...", truncate([]byte("abcdefgh"), 5))
}

func TestTruncate_MultiByte(t *testing.T) {
	// Тела ответов бывают не ASCII: обрезка не должна ломать руны.
	body := []byte(strings.Repeat("फसल", 100))

	got := truncate(body, 7)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "फसलफसलफ...", got)
}
