package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupationRate(t *testing.T) {
	assert.Equal(t, 11, occupationRate(4, 35))
	assert.Equal(t, 0, occupationRate(10, 0))
	assert.Equal(t, 0, occupationRate(0, 35))
	assert.Equal(t, 114, occupationRate(40, 35))
	assert.Equal(t, 50, occupationRate(20, 40))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))

	d, err = parseDate("2024-01-01T18:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", d.Format("2006-01-02"))
	assert.Zero(t, d.Hour())

	_, err = parseDate("01/01/2024")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate(nil, "endDate")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseOptionalDate(strPtr("  "), "endDate")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseOptionalDate(strPtr("soon"), "endDate")
	assert.Error(t, err)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"Python", "Java"}, normalizeTags([]string{" Python ", "", "python", "Java"}))
	assert.Empty(t, normalizeTags(nil))
}

func TestNormalizeRef(t *testing.T) {
	assert.Nil(t, normalizeRef(nil))
	assert.Nil(t, normalizeRef(strPtr("  ")))
	assert.Equal(t, "r1", *normalizeRef(strPtr(" r1 ")))
}

func TestFloorDivAndMonday(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-3, 7))
	assert.Equal(t, 0, floorDiv(6, 7))
	assert.Equal(t, 1, floorDiv(7, 7))

	// 2024-01-03 is a Wednesday
	assert.Equal(t, "2024-01-01", mondayOf(mustDate(t, "2024-01-03")).Format("2006-01-02"))
	assert.Equal(t, "2024-01-01", mondayOf(mustDate(t, "2024-01-07")).Format("2006-01-02"))
	assert.Equal(t, "2024-01-08", mondayOf(mustDate(t, "2024-01-08")).Format("2006-01-02"))
}
