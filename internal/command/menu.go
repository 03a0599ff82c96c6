// SPDX-License-Identifier: MPL-2.0

package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BannerWidth is the width of the "=" separator that frames titles.
const BannerWidth = 46

// Banner centres title in a BannerWidth-wide line of '='. Titles that do not
// fit are returned unchanged.
func Banner(title string) string {
	return lipgloss.PlaceHorizontal(BannerWidth, lipgloss.Center, title, lipgloss.WithWhitespaceChars("="))
}

// RenderMenu writes the banner for title followed by one
// "• <token> - <description>" line per command, in registration order.
func RenderMenu(w io.Writer, title string, reg *Registry) error {
	var sb strings.Builder
	sb.WriteString(Banner(title))
	sb.WriteString("\n")
	for token, cmd := range reg.All() {
		fmt.Fprintf(&sb, "• %s - %s\n", token, cmd.Description())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
