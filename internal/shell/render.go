package shell

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
)

var (
	accent = lipgloss.Color("#00AFAF")
	muted  = lipgloss.Color("#888888")

	headingStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3131"))
)

// Render prints the views reachable in v.
func Render(w io.Writer, v domain.View) {
	for _, name := range v.Reachable() {
		switch name {
		case domain.ViewLoginForm:
			section(w, "Log in")
			fmt.Fprintln(w, mutedStyle.Render("  login <username|email> <password>"))
		case domain.ViewRegistrationForm:
			section(w, "Register")
			fmt.Fprintln(w, mutedStyle.Render("  register <username> <email> <password>"))
		case domain.ViewLogoutControl:
			renderAccount(w, v.User)
		case domain.ViewAddDestinationForm:
			section(w, "Add destination")
			fmt.Fprintln(w, mutedStyle.Render("  add <name> [poster_url] [activities] [accommodations] [transportation]"))
		case domain.ViewDestinationList:
			renderList(w, v)
		case domain.ViewDestinationDetails:
			renderDetails(w, *v.Selected)
		}
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

func renderAccount(w io.Writer, u *domain.User) {
	who := u.Username
	if u.Email != "" {
		who += " <" + u.Email + ">"
	}
	fmt.Fprintf(w, "Logged in as %s %s\n", who, mutedStyle.Render("(logout)"))
}

func renderList(w io.Writer, v domain.View) {
	section(w, fmt.Sprintf("Destinations (%d)", len(v.Destinations)))
	if len(v.Destinations) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none yet"))
		return
	}
	for _, d := range v.Destinations {
		line := fmt.Sprintf("%4d  %s", d.ID, d.Name)
		if v.Selected != nil && v.Selected.ID == d.ID {
			fmt.Fprintln(w, "* "+selectedStyle.Render(line))
			continue
		}
		fmt.Fprintln(w, "  "+line)
	}
}

func renderDetails(w io.Writer, d domain.Destination) {
	section(w, d.Name)
	for _, f := range []struct{ label, value string }{
		{"Poster", d.PosterURL},
		{"Activities", d.Activities},
		{"Accommodations", d.Accommodations},
		{"Transportation", d.Transportation},
	} {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(w, "  %-15s %s\n", f.label+":", f.value)
	}
}
