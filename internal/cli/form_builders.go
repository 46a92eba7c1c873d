package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// otherFoodKey is the menu entry for food outside the presets.
const otherFoodKey = "lainnya"

// sterilHuhTheme returns a huh theme matching the formatter palette.
func sterilHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// foodOptions lists the presets followed by "Lainnya".
func foodOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Foods)+1)
	for _, f := range domain.Foods {
		opts = append(opts, huh.NewOption(f.Emoji+" "+f.Label, f.Key))
	}
	return append(opts, huh.NewOption("🍽️ "+domain.FoodLabel(otherFoodKey), otherFoodKey))
}

// startForm asks for the food and the run length in minutes.
func startForm(food, minutes *string) *huh.Form {
	if *minutes == "" {
		*minutes = "15"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Makanan").
				Options(foodOptions()...).
				Value(food),
			huh.NewInput().
				Title("Durasi (menit)").
				Placeholder("15").
				Value(minutes).
				Validate(validatePositiveMinutes),
		),
	).WithTheme(sterilHuhTheme()).WithShowHelp(false)
}

// parseMinutes accepts a positive decimal number of minutes; a comma is
// accepted as the decimal separator.
func parseMinutes(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("enter a positive number of minutes")
	}
	return v, nil
}

func validatePositiveMinutes(s string) error {
	_, err := parseMinutes(s)
	return err
}
