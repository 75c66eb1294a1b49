package service

import (
	"fmt"
	"html"
)

// PreviewHTML builds the markup for the attachment preview modal:
// given the stored file URL, produce the centered image container the
// client injects into its viewer.
func PreviewHTML(billURL string, width int) string {
	return fmt.Sprintf(
		`<div style='text-align: center;' class="bill-proof-container"><img width=%d src=%s alt="Bill" /></div>`,
		width, html.EscapeString(billURL),
	)
}
