// Package render turns outcomes and records into terminal views.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/reporter"
)

// NoResults is shown for an empty lookup or search result.
const NoResults = "No results found in database"

// ErrPageOutOfRange is returned when a requested page does not exist.
var ErrPageOutOfRange = errors.New("page out of range")

// Success renders the success view.
func Success(s *reporter.Success) string {
	desc := s.Description
	if desc == "" {
		desc = "OK"
	}
	return stylePanel.Render(styleOK.Render("✓ ") + desc)
}

// Headline is "<status> <label>", with "undefined" standing in for a missing
// status and the label omitted when the status has none.
func Headline(f *reporter.Failure) string {
	status := "undefined"
	if f.HasStatus() {
		status = strconv.Itoa(f.StatusCode)
	}
	if label := f.Label(); label != "" {
		return status + " " + label
	}
	return status
}

// Failure renders the error view: headline, then the extracted message.
func Failure(f *reporter.Failure) string {
	body := styleErr.Render(Headline(f))
	if msg := strings.TrimSpace(f.Message()); msg != "" {
		body += "\n" + msg
	}
	return styleErrPanel.Render(body)
}

// Invalid renders a client-side validation error. Nothing was sent.
func Invalid(err error) string {
	return styleErrPanel.Render(styleErr.Render("Invalid input") + "\n" + err.Error())
}

// Error renders any other failure: configuration, local files, paging.
func Error(err error) string {
	return styleErrPanel.Render(styleErr.Render("Error") + "\n" + err.Error())
}

// Records renders records. page is 1-based; zero shows every record. A
// non-zero page shows one record with a "Page N/M" footer.
func Records(records []models.Record, page int) (string, error) {
	if len(records) == 0 {
		return styleDim.Render(NoResults), nil
	}
	if page == 0 {
		blocks := make([]string, 0, len(records))
		for _, r := range records {
			blocks = append(blocks, Record(r))
		}
		return lipgloss.JoinVertical(lipgloss.Left, blocks...), nil
	}
	if page < 0 || page > len(records) {
		return "", fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, len(records))
	}
	footer := styleHint.Render(fmt.Sprintf("Page %d/%d", page, len(records)))
	return lipgloss.JoinVertical(lipgloss.Left, Record(records[page-1]), footer), nil
}

// Record renders one record: the title and URL as header, then a field table
// with list-valued fields last.
func Record(r models.Record) string {
	title := r.Title()
	if title == "" {
		title = r.Kind.DisplayName() + " " + r.ID()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleLabel.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, f := range r.OrderedFields() {
		t.Row(f.Name, FieldValue(f.Value))
	}
	header := styleTitle.Render(title)
	if u := r.URL(); u != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, styleHint.Render(u))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, t.Render())
}

// FieldValue formats a decoded JSON value for display. Lists are one item per
// line, null is blank.
func FieldValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, FieldValue(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(t)
	}
}

// Summary renders a titled two-column panel of settings.
func Summary(title string, rows [][2]string) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleLabel.Padding(0, 1, 0, 0)
			}
			return lipgloss.NewStyle()
		})
	for _, r := range rows {
		t.Row(r[0], r[1])
	}
	return stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, styleTitle.Render(title), t.Render()))
}
