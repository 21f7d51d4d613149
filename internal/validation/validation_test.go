package validation

import (
	"testing"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{"plain", "1080", 1080, nil},
		{"surrounding space", "  720 ", 720, nil},
		{"integral float", "1440.0", 1440, nil},
		{"empty", "", 0, domain.ErrMissingInput},
		{"blank", "   ", 0, domain.ErrMissingInput},
		{"letters", "abc", 0, domain.ErrNonNumericInput},
		{"fraction", "10.5", 0, domain.ErrNonNumericInput},
		{"nan", "NaN", 0, domain.ErrNonNumericInput},
		{"inf", "Inf", 0, domain.ErrNonNumericInput},
		{"hex float", "0x1p10", 0, domain.ErrNonNumericInput},
		{"upper hex", "0X10", 0, domain.ErrNonNumericInput},
		{"signed hex", "+0x400", 0, domain.ErrNonNumericInput},
		{"negative", "-5", 0, domain.ErrOutOfRangeInput},
		{"zero", "0", 0, domain.ErrOutOfRangeInput},
		{"huge", "99999999999", 0, domain.ErrOutOfRangeInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDimension(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDensity_SameRules(t *testing.T) {
	v, err := ParseDensity("440")
	require.NoError(t, err)
	assert.Equal(t, 440, v)

	_, err = ParseDensity("-5")
	assert.ErrorIs(t, err, domain.ErrOutOfRangeInput)

	_, err = ParseDensity("abc")
	assert.ErrorIs(t, err, domain.ErrNonNumericInput)
}

func TestParseMeasure_AllowsFractions(t *testing.T) {
	v, err := ParseMeasure("1080.5")
	require.NoError(t, err)
	assert.Equal(t, 1080.5, v)

	_, err = ParseMeasure("0")
	assert.ErrorIs(t, err, domain.ErrOutOfRangeInput)

	_, err = ParseMeasure("0x1p10")
	assert.ErrorIs(t, err, domain.ErrNonNumericInput)
}

func TestParseResolution(t *testing.T) {
	r, err := ParseResolution("1080x2400")
	require.NoError(t, err)
	assert.Equal(t, domain.Resolution{Width: 1080, Height: 2400}, r)

	r, err = ParseResolution(" 720×1600 ")
	require.NoError(t, err)
	assert.Equal(t, "720x1600", r.String())

	_, err = ParseResolution("1080")
	assert.ErrorIs(t, err, domain.ErrNonNumericInput)

	_, err = ParseResolution("1080x-1")
	assert.ErrorIs(t, err, domain.ErrOutOfRangeInput)

	_, err = ParseResolution("")
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestInputError_NamesField(t *testing.T) {
	_, err := ParseDimension("abc")
	var ie *domain.InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "dimension", ie.Field)
	assert.Equal(t, "abc", ie.Value)
}

func TestFields_ReportsHighestPriorityKind(t *testing.T) {
	var f Fields
	f.Dimension("width", "-1")
	f.Dimension("height", "abc")
	f.Measure("dpi", "")

	err := f.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	var ie *domain.InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "dpi", ie.Field)
}

func TestFields_AllValid(t *testing.T) {
	var f Fields
	w := f.Dimension("width", "1080")
	h := f.Dimension("height", "2400")
	d := f.Density("dpi", "440")

	assert.NoError(t, f.Err())
	assert.Equal(t, 1080, w)
	assert.Equal(t, 2400, h)
	assert.Equal(t, 440, d)
}

func TestFields_FirstOfSameRankWins(t *testing.T) {
	var f Fields
	f.Dimension("width", "-1")
	f.Dimension("height", "0")

	var ie *domain.InputError
	require.ErrorAs(t, f.Err(), &ie)
	assert.Equal(t, "width", ie.Field)
	assert.ErrorIs(t, f.Err(), domain.ErrOutOfRangeInput)
}
