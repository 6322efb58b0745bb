package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/novapath/trident/internal/ui/theme"
)

const bannerArt = `
 ████████╗██████╗ ██╗██████╗ ███████╗███╗   ██╗████████╗
 ╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝████╗  ██║╚══██╔══╝
    ██║   ██████╔╝██║██║  ██║█████╗  ██╔██╗ ██║   ██║
    ██║   ██╔══██╗██║██║  ██║██╔══╝  ██║╚██╗██║   ██║
    ██║   ██║  ██║██║██████╔╝███████╗██║ ╚████║   ██║
    ╚═╝   ╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝╚═╝  ╚═══╝   ╚═╝`

const bannerCompact = "T R I D E N T"

// RenderBanner returns the TRIDENT banner, or a spaced-out name when the
// terminal is narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
