package validation_test

import (
	stderrors "errors"
	"math"
	"testing"

	dserrors "github.com/paveg/salarydash/internal/errors"
	"github.com/paveg/salarydash/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockColumnProvider implements ColumnProvider for testing.
type MockColumnProvider struct {
	columns []string
}

func (m *MockColumnProvider) HasColumn(name string) bool {
	for _, col := range m.columns {
		if col == name {
			return true
		}
	}
	return false
}

func (m *MockColumnProvider) Columns() []string {
	return m.columns
}

func TestColumnValidator(t *testing.T) {
	provider := &MockColumnProvider{columns: []string{"year", "role", "salary_usd"}}

	t.Run("all columns present", func(t *testing.T) {
		err := validation.ValidateColumns(provider, "ReadCSV", "year", "role")
		assert.NoError(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		err := validation.ValidateColumns(provider, "ReadCSV", "year", "remote")
		require.Error(t, err)

		var de *dserrors.DashboardError
		require.True(t, stderrors.As(err, &de))
		assert.Equal(t, "remote", de.Column)
		assert.Equal(t, "column does not exist", de.Message)
	})
}

func TestKeyValidator(t *testing.T) {
	allowed := []string{"year", "seniority", "contract", "company_size"}

	tests := []struct {
		name    string
		keys    []string
		wantErr string
	}{
		{name: "no keys", keys: nil},
		{name: "known keys", keys: []string{"year", "contract"}},
		{name: "unknown key", keys: []string{"year", "salary"}, wantErr: `unknown column "salary"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateKeys("ParseSelection", allowed, tt.keys...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIntegerValidator(t *testing.T) {
	assert.NoError(t, validation.ValidateIntegers("ParseSelection", "year", "2023", " 2024"))

	err := validation.ValidateIntegers("ParseSelection", "year", "2023", "twenty")
	require.Error(t, err)
	assert.Equal(t, `ParseSelection failed on column 'year': "twenty" is not an integer`, err.Error())
}

func TestPositiveAndNonNegativeValidators(t *testing.T) {
	assert.NoError(t, validation.NewPositiveValidator("Config", "top_n", 10).Validate())
	assert.EqualError(t,
		validation.NewPositiveValidator("Config", "histogram_bins", 0).Validate(),
		"Config failed: histogram_bins must be positive, got 0")

	assert.NoError(t, validation.NewNonNegativeValidator("ReadCSV", "usd", 2, 0).Validate())
	err := validation.NewNonNegativeValidator("ReadCSV", "usd", 7, -5).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative value -5 at line 7")

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := validation.NewNonNegativeValidator("ReadCSV", "usd", 3, v).Validate()
		require.Error(t, err, "value %g", v)
		assert.Contains(t, err.Error(), "at line 3")
		assert.Contains(t, err.Error(), "not finite")
	}
}

func TestWholeNumberValidator(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		contains string
	}{
		{name: "integral float", value: 2023},
		{name: "negative integral", value: -1},
		{name: "fraction", value: 2023.7, contains: `malformed value "2023.7" at line 4`},
		{name: "nan", value: math.NaN(), contains: "not a whole number"},
		{name: "infinity", value: math.Inf(1), contains: "not a whole number"},
		{name: "too large", value: 1e12, contains: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.NewWholeNumberValidator("ReadArrow", "year", 4, tt.value).Validate()
			if tt.contains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCompoundValidator(t *testing.T) {
	provider := &MockColumnProvider{columns: []string{"year"}}

	v := validation.NewCompoundValidator(
		validation.NewColumnValidator(provider, "ReadCSV", "year"),
		validation.NewPositiveValidator("Config", "top_n", -1),
		validation.NewColumnValidator(provider, "ReadCSV", "missing"),
	)

	err := v.Validate()
	require.Error(t, err)
	// First failure wins.
	assert.Contains(t, err.Error(), "top_n must be positive")
}
