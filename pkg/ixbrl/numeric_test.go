package ixbrl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNumericValue(t *testing.T) {
	accepted := []string{
		"0",
		"100",
		"-100",
		"+42",
		"1,000",
		"1,000,000.50",
		"0.000001",
		"100.",
		"€100",
		"-€100",
		"$1,234.56",
		"£99",
		"¥1,000",
		"99.5%",
		"100%",
	}
	for _, v := range accepted {
		require.True(t, IsNumericValue(v), "expected numeric: %q", v)
	}

	rejected := []string{
		"",
		"Not applicable",
		"No minimum goal.",
		"ten",
		"1,00",
		"1,0000",
		"12 000",
		"--5",
		"%",
		"€",
		"5%%",
		"1.2.3",
		" 100",
		"100 ",
	}
	for _, v := range rejected {
		require.False(t, IsNumericValue(v), "expected non-numeric: %q", v)
	}
}
