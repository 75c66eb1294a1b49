package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "january_2023", input: "2023-01-01", expected: "1 Jan. 23"},
		{name: "january_2022", input: "2022-01-01", expected: "1 Jan. 22"},
		{name: "april_2004", input: "2004-04-04", expected: "4 Avr. 04"},
		{name: "accented_month", input: "2023-08-15", expected: "15 Aoû. 23"},
		{name: "december", input: "2021-12-31", expected: "31 Déc. 21"},
		{name: "no_leading_zero_day", input: "2023-05-09", expected: "9 Mai. 23"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatDate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatDateInvalid(t *testing.T) {
	for _, input := range []string{"invalid-date", "", "2023-13-40", "04/04/2004"} {
		_, err := FormatDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "En attente", FormatStatus("pending"))
	assert.Equal(t, "Accepté", FormatStatus("accepted"))
	assert.Equal(t, "Refusé", FormatStatus("refused"))

	// Total on any input: unknown statuses pass through unchanged.
	assert.Equal(t, "archived", FormatStatus("archived"))
	assert.Equal(t, "", FormatStatus(""))
}
