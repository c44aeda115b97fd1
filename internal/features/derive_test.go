package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseprice/internal/dataset"
	dErrors "houseprice/pkg/domain-errors"
)

func TestDeriveRecord(t *testing.T) {
	vec, err := DeriveRecord(Record{
		SquareFeet: 1800,
		Bedrooms:   3,
		Bathrooms:  2,
		YearBuilt:  2000,
	}, 2024)
	require.NoError(t, err)

	require.Len(t, vec, len(InputColumns))
	assert.Equal(t, 1800.0, vec[0])
	assert.Equal(t, 24.0, vec[4])  // house_age
	assert.Equal(t, 1.5, vec[5])   // bed_bath_ratio
	assert.Equal(t, 0.0, vec[6])   // price_per_sqft placeholder
}

func TestDeriveRecordZeroBathrooms(t *testing.T) {
	_, err := DeriveRecord(Record{Bedrooms: 3, Bathrooms: 0, YearBuilt: 2000}, 2024)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadData))
	assert.Contains(t, err.Error(), "bathrooms")
}

func TestDeriveTable(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"price", "sqft", "bedrooms", "bathrooms", "year_built"},
		Rows: [][]string{
			{"300000", "1800", "3", "2", "2000"},
			{"210000", "1200", "2", "1", "1990"},
		},
	}

	out, err := Derive(tbl, 2024)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"price", "sqft", "bedrooms", "bathrooms", "year_built",
		"house_age", "bed_bath_ratio", "price_per_sqft",
	}, out.Columns)
	assert.Equal(t, []string{"300000", "1800", "3", "2", "2000", "24", "1.5", "0"}, out.Rows[0])
	assert.Equal(t, []string{"210000", "1200", "2", "1", "1990", "34", "2", "0"}, out.Rows[1])

	// Input untouched.
	assert.Len(t, tbl.Columns, 5)
}

func TestDeriveTableZeroBathrooms(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"sqft", "bedrooms", "bathrooms", "year_built"},
		Rows:    [][]string{{"1200", "2", "0", "1990"}},
	}

	_, err := Derive(tbl, 2024)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadData))
}

func TestDeriveTableMissingColumn(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"sqft", "bedrooms", "bathrooms"},
		Rows:    [][]string{{"1200", "2", "1"}},
	}

	_, err := Derive(tbl, 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year_built")
}

func TestDeriveIsPureOfWallClock(t *testing.T) {
	rec := Record{SquareFeet: 1000, Bedrooms: 2, Bathrooms: 1, YearBuilt: 2010}

	a, err := DeriveRecord(rec, 2020)
	require.NoError(t, err)
	b, err := DeriveRecord(rec, 2030)
	require.NoError(t, err)

	assert.Equal(t, 10.0, a[4])
	assert.Equal(t, 20.0, b[4])
}
