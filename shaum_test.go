package shaum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRedDragonICY/shaum/rules"
)

func TestAnalyzeDate(t *testing.T) {
	a, err := AnalyzeDate(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, rules.Wajib, a.Status)
	assert.True(t, a.HasReason(rules.TypeRamadhan))
}

func TestStatusOf(t *testing.T) {
	status, err := StatusOf(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, rules.Haram, status)
}

func TestMustAnalyzeDate(t *testing.T) {
	assert.NotPanics(t, func() {
		a := MustAnalyzeDate(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, rules.SunnahMuakkadah, a.Status)
	})
}

func TestDaudScheduleFrom(t *testing.T) {
	dates := DaudScheduleFrom(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)).Dates()
	require.NotEmpty(t, dates)
	assert.Equal(t, time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), dates[0])
}
