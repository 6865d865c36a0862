package wizard

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/tui/theme"
)

const (
	successBannerText = "Submission Successful! We'll get back to you within 24 hours."
	attachmentWarning = "Your details were saved, but the attached files could not be uploaded."
)

// bannerTimer is a cancellable handle for the success banner's auto-clear.
// Each Start issues a new generation; an expiry only counts when it carries
// the live generation, so Cancel and restarts make earlier ticks inert.
type bannerTimer struct {
	generation int
	active     bool
}

// Start arms the timer and returns the command that fires after d.
func (b *bannerTimer) Start(d time.Duration) tea.Cmd {
	b.generation++
	b.active = true
	gen := b.generation
	return tea.Tick(d, func(time.Time) tea.Msg {
		return bannerExpiredMsg{generation: gen}
	})
}

// Cancel disarms the timer.
func (b *bannerTimer) Cancel() {
	if b.active {
		b.generation++
		b.active = false
	}
}

// Active reports whether the timer is armed.
func (b *bannerTimer) Active() bool {
	return b.active
}

// Expire consumes an expiry message and reports whether it belongs to the
// armed timer.
func (b *bannerTimer) Expire(msg bannerExpiredMsg) bool {
	if !b.active || msg.generation != b.generation {
		return false
	}
	b.active = false
	return true
}

// renderSuccessBanner renders the banner shown after a successful submit.
func renderSuccessBanner(width int, warning string) string {
	s := theme.Current().S()
	text := s.BannerSuccess.Width(width).Render("✓ " + successBannerText)
	if warning != "" {
		text += "\n" + s.ErrorText.Render("! "+attachmentWarning)
	}
	return text
}

// renderFailureBanner renders the inline banner kept while a submission has
// failed and not been retried.
func renderFailureBanner(width int, reason string) string {
	s := theme.Current().S()
	return s.BannerError.Width(width).Render(truncate("✗ Submission failed: "+reason, width-2)) +
		"\n" + s.Muted.Render("Your details are kept. Press ctrl+s to try again.")
}
