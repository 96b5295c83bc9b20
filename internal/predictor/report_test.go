package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReport_KeyBet(t *testing.T) {
	schema := optionalExcept(t, KeyBetSchema(), FieldFTR, FieldHST)
	result, err := schema.Decode([]byte(`{"FTHG": 2, "FTAG": 1, "Winner_numeric": 1, "HST": 4.567}`))
	require.NoError(t, err)

	assert.Equal(t,
		"Prediction for Arsenal vs Chelsea:\n\n"+
			"Full Time Home Goals: 2.00\n"+
			"Full Time Away Goals: 1.00\n"+
			"Full Time Result: 1.00\n"+
			"Home Shots on Target: 4.57\n",
		FormatReport(schema, result, "Arsenal", "Chelsea"))
}

func TestFormatReport_LegacyDump(t *testing.T) {
	schema := optionalExcept(t, LegacySchema(), FieldFTR, FieldHY)
	result, err := schema.Decode([]byte(`{"Result": "H", "FTHG": 1.5, "FTAG": 1, "HY": 2.25}`))
	require.NoError(t, err)

	assert.Equal(t,
		"Prediction for Leeds United vs Hull City:\n\n"+
			"Full Time Result: H\n"+
			"Full Time Home Goals: 1.50\n"+
			"Full Time Away Goals: 1.00\n"+
			"Home Yellow Cards: 2.25\n"+
			"\nFull Prediction Data:\n"+
			"FTAG: 1\n"+
			"FTHG: 1.5000\n"+
			"HY: 2.2500\n"+
			"Result: H\n",
		FormatReport(schema, result, "Leeds United", "Hull City"))
}

func TestFormatReport_AllFields(t *testing.T) {
	schema := ClassicSchema()
	result, err := schema.Decode(completeBody(t, schema, map[string]any{"FTR": "A", "HTR": "D"}))
	require.NoError(t, err)

	report := FormatReport(schema, result, "Arsenal", "Chelsea")
	for _, f := range schema.Fields {
		assert.Contains(t, report, f.Label+": ")
	}
	assert.Contains(t, report, "Full Time Result: A\n")
	assert.NotContains(t, report, "Full Prediction Data")
}
