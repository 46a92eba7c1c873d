package cli

import (
	"testing"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranularityFlag(t *testing.T) {
	cases := map[string]domain.Granularity{
		"daily":   domain.GranularityDaily,
		"Day":     domain.GranularityDaily,
		"week":    domain.GranularityWeekly,
		"monthly": domain.GranularityMonthly,
		" month ": domain.GranularityMonthly,
		"segment": domain.GranularityFiveDaySegment,
	}
	for in, want := range cases {
		var f granularityFlag
		require.NoError(t, f.Set(in), in)
		assert.Equal(t, want, f.value, in)
	}

	var f granularityFlag
	assert.Error(t, f.Set("yearly"))
	assert.Equal(t, "range", f.Type())
}

func TestStatusFilterFlag(t *testing.T) {
	cases := map[string]domain.StatusFilter{
		"total":    domain.FilterTotal,
		"berhasil": domain.FilterCompleted,
		"SELESAI":  domain.FilterCompleted,
		"gagal":    domain.FilterStopped,
		"stopped":  domain.FilterStopped,
	}
	for in, want := range cases {
		var f statusFilterFlag
		require.NoError(t, f.Set(in), in)
		assert.Equal(t, want, f.value, in)
	}

	var f statusFilterFlag
	assert.Error(t, f.Set("processing"))
}

func TestOutputFlag(t *testing.T) {
	var f outputFlag
	require.NoError(t, f.Set("yml"))
	assert.Equal(t, outputYAML, f.value)
	require.NoError(t, f.Set("JSON"))
	assert.Equal(t, outputJSON, f.value)
	assert.Error(t, f.Set("csv"))
}

func TestParseMinutes(t *testing.T) {
	v, err := parseMinutes("12")
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	v, err = parseMinutes(" 0,5 ")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseMinutes(bad)
		assert.Error(t, err, bad)
	}
	assert.NoError(t, validatePositiveMinutes("7"))
}

func TestFoodOptionsEndWithOther(t *testing.T) {
	opts := foodOptions()
	require.Len(t, opts, len(domain.Foods)+1)
	assert.Equal(t, otherFoodKey, opts[len(opts)-1].Value)
	assert.Equal(t, "nasi", opts[0].Value)
}
