package hsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCodes(t *testing.T) {
	v := NewValidator(ColumnMapping{Code: 0, Description: 1}, sampleRows)

	results := v.ValidateCodes([]string{" 1006 ", "", "XYZ99", "9999"})
	require.Len(t, results, 4)

	assert.Equal(t, "1006", results[0].Code)
	assert.True(t, results[0].Valid())
	assert.Equal(t, "Rice", results[0].Description)
	assert.Equal(t, "HSN code is valid. Description: Rice", results[0].Message)

	assert.Equal(t, StatusInvalid, results[1].Status)
	assert.Equal(t, msgEmpty, results[1].Message)

	assert.Equal(t, StatusInvalid, results[2].Status)
	assert.Equal(t, msgNotNumeric, results[2].Message)

	assert.Equal(t, StatusInvalid, results[3].Status)
	assert.Equal(t, msgNotFound, results[3].Message)
}

func TestValidateCodes_UnresolvedMapping(t *testing.T) {
	v := NewValidator(ColumnMapping{Code: 0, Description: Unresolved}, sampleRows)

	results := v.ValidateCodes([]string{"1006", "1001", "", " XYZ99 "})
	require.Len(t, results, 4)
	for _, res := range results {
		assert.Equal(t, StatusError, res.Status, "code %q", res.Code)
		assert.Contains(t, res.Message, "HSN master data not available")
		assert.Contains(t, res.Message, "columns not resolved")
	}
	assert.Equal(t, "", results[2].Code)
	assert.Equal(t, "XYZ99", results[3].Code)
}

func TestValidateCodes_NoDataRows(t *testing.T) {
	v := NewValidator(ColumnMapping{Code: 0, Description: 1}, nil)

	results := v.ValidateCodes([]string{"1006", "", "XYZ99"})
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, StatusError, res.Status, "code %q", res.Code)
		assert.Contains(t, res.Message, "HSN master data not available")
		assert.Contains(t, res.Message, ErrNoData.Error())
	}

	res, err := v.Lookup("1006")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("0101"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("01.01"))
	assert.False(t, IsNumeric("٣٤"))
}
