package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*granularityFlag)(nil)
	_ pflag.Value = (*statusFilterFlag)(nil)
	_ pflag.Value = (*outputFlag)(nil)
)

var granularityAliases = map[string]domain.Granularity{
	"daily":   domain.GranularityDaily,
	"day":     domain.GranularityDaily,
	"harian":  domain.GranularityDaily,
	"weekly":  domain.GranularityWeekly,
	"week":    domain.GranularityWeekly,
	"monthly": domain.GranularityMonthly,
	"month":   domain.GranularityMonthly,
	"segment": domain.GranularityFiveDaySegment,
	"5day":    domain.GranularityFiveDaySegment,
}

// granularityFlag is the --range value.
type granularityFlag struct{ value domain.Granularity }

func (f *granularityFlag) String() string { return string(f.value) }
func (f *granularityFlag) Type() string   { return "range" }

func (f *granularityFlag) Set(s string) error {
	g, ok := granularityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("must be one of daily, weekly, monthly, segment")
	}
	f.value = g
	return nil
}

var statusFilterAliases = map[string]domain.StatusFilter{
	"total":      domain.FilterTotal,
	"all":        domain.FilterTotal,
	"completed":  domain.FilterCompleted,
	"berhasil":   domain.FilterCompleted,
	"selesai":    domain.FilterCompleted,
	"stopped":    domain.FilterStopped,
	"gagal":      domain.FilterStopped,
	"dihentikan": domain.FilterStopped,
}

// statusFilterFlag is the --status value.
type statusFilterFlag struct{ value domain.StatusFilter }

func (f *statusFilterFlag) String() string { return string(f.value) }
func (f *statusFilterFlag) Type() string   { return "status" }

func (f *statusFilterFlag) Set(s string) error {
	v, ok := statusFilterAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("must be one of total, completed (berhasil), stopped (gagal)")
	}
	f.value = v
	return nil
}

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputYAML  outputFormat = "yaml"
	outputJSON  outputFormat = "json"
)

// outputFlag is the --output value.
type outputFlag struct{ value outputFormat }

func (f *outputFlag) String() string { return string(f.value) }
func (f *outputFlag) Type() string   { return "format" }

func (f *outputFlag) Set(s string) error {
	switch v := outputFormat(strings.ToLower(strings.TrimSpace(s))); v {
	case outputTable, outputYAML, outputJSON:
		f.value = v
		return nil
	case "yml":
		f.value = outputYAML
		return nil
	}
	return fmt.Errorf("must be one of table, yaml, json")
}
