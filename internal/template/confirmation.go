package template

import (
	"strings"

	"github.com/overdrivepermits/permit-service/internal/domain"
)

// RenderConfirmation builds the HTML document acknowledging receipt to the
// submitter. It carries only a short summary of the request; the same
// escaping and omission rules as the notification apply.
func RenderConfirmation(req *domain.PermitRequest) string {
	var rows []field
	addRow := func(label, value string) {
		if value != "" {
			rows = append(rows, field{label: label, value: value})
		}
	}

	if req.HasRoute() {
		addRow("Route", EscapeHTML(req.Origin)+" &rarr; "+EscapeHTML(req.Destination))
	} else {
		addRow("State", EscapeHTML(req.State))
	}
	addRow("Permit Type", permitTypeLabel(req.PermitType))
	addRow("Equipment", EscapeHTML(equipmentName(req)))
	addRow("Route Description", EscapeHTML(req.Route))

	var b strings.Builder
	docOpen(&b)
	b.WriteString(`<div class="header"><h1>Thank You, `)
	b.WriteString(EscapeHTML(req.CustomerName))
	b.WriteString(`!</h1><p>Your permit request has been received</p></div>`)
	b.WriteString(`<div class="content">`)
	b.WriteString(`<div class="message"><h2>Request Submitted Successfully</h2>` +
		`<p>We&#39;ve received your permit request and our team will review it shortly. ` +
		`You can expect to hear from us within 1-3 business days.</p></div>`)

	if len(rows) > 0 {
		b.WriteString(`<div class="details-box"><h3>Request Summary</h3>`)
		for _, r := range rows {
			b.WriteString(`<div class="detail-row"><span class="detail-label">`)
			b.WriteString(r.label)
			b.WriteString(`:</span><span class="detail-value">`)
			b.WriteString(r.value)
			b.WriteString("</span></div>")
		}
		b.WriteString("</div>")
	}

	b.WriteString(`<div class="cta-box"><h3>What&#39;s Next?</h3>` +
		`<p>Our permit specialists will review your request and contact you with a quote and next steps. ` +
		`If you have any questions, feel free to reach out to us.</p></div>`)
	b.WriteString("</div>")
	b.WriteString(`<div class="footer"><p><strong>OVERDRIVE PERMITS</strong></p>` +
		`<p>Your trusted partner for trucking permits across all 50 US states</p>` +
		`<p><a href="mailto:admin@overdrivepermits.com">Contact Us</a></p></div>`)
	docClose(&b)
	return b.String()
}
