package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/cli/formatter"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// capallocHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func capallocHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateNumber(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validateScore(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 1 || v > 10 {
		return fmt.Errorf("must be a number between 1 and 10")
	}
	return nil
}

// projectAddValues carries the raw form answers for "project add". Numeric
// fields stay strings until the command parses them.
type projectAddValues struct {
	ProjectID string
	Name      string
	DomainID  string
	Capex     string
	Risk      string
}

// projectAddForm builds the interactive form used when "project add" is run
// on a terminal without the required flags.
func projectAddForm(ctx context.Context, app *App, v *projectAddValues) (*huh.Form, error) {
	domains, err := app.Domains.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("no active domains; create one first with 'capalloc domain add'")
	}

	options := make([]huh.Option[string], 0, len(domains))
	for _, d := range domains {
		options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", d.Code, d.Name), d.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Placeholder("CAP-001").
				Value(&v.ProjectID).
				Validate(func(s string) error {
					return (&domain.Project{ProjectID: s}).ValidateProjectID()
				}),
			huh.NewInput().
				Title("Name").
				Value(&v.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Domain").
				Options(options...).
				Value(&v.DomainID),
			huh.NewInput().
				Title("CAPEX").
				Placeholder("500000").
				Value(&v.Capex).
				Validate(validateNumber),
			huh.NewInput().
				Title("Risk Score (1-10, blank for none)").
				Value(&v.Risk).
				Validate(validateScore),
		),
	).WithTheme(capallocHuhTheme()).WithShowHelp(false), nil
}
