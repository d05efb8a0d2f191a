package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBoard = `
<html><body>
<div class="gboardfull">
  DESAWAR
  <span>[ 45 ]</span>
</div>
<div class="gboardhalf">
  GALI [7]
</div>
<div class="gboardfull">
  FARIDABAD
  <span>waiting</span>
</div>
<div class="gboardhalf">
  GHAZIABAD [ 102 ]
</div>
<div class="other-block">
  SHOULD BE IGNORED [ 33 ]
</div>
</body></html>`

func TestParseBoard(t *testing.T) {
	results, err := ParseBoard(strings.NewReader(sampleBoard))
	require.NoError(t, err)

	// FARIDABAD has no bracketed result and GHAZIABAD's 102 is out of range;
	// the unrelated block does not use a board class at all.
	require.Len(t, results, 2)
	assert.Equal(t, "DESAWAR", results[0].GameName)
	assert.Equal(t, 45, results[0].Result)
	assert.Equal(t, "GALI", results[1].GameName)
	assert.Equal(t, 7, results[1].Result)
}

func TestParseBoardEmptyDocument(t *testing.T) {
	results, err := ParseBoard(strings.NewReader("<html><body><p>maintenance</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseBoardZeroResult(t *testing.T) {
	results, err := ParseBoard(strings.NewReader(`<div class="gboardfull">DESAWAR [ 0 ]</div>`))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Result)
}

func TestExtractGameName(t *testing.T) {
	cases := map[string]string{
		"DESAWAR [ 45 ]":        "DESAWAR",
		"\n  GALI\n  [7]":       "GALI",
		"FARIDABAD":             "FARIDABAD",
		"[ 45 ]":                "",
		"  \n NOIDA KING [99] ": "NOIDA KING",
	}
	for input, want := range cases {
		assert.Equal(t, want, extractGameName(input), "input %q", input)
	}
}
