// Package template renders the two outbound HTML email documents: the
// operator notification and the submitter confirmation. Rendering is pure
// string construction; values are escaped here rather than by a templating
// engine so the escaping rules stay testable in isolation.
package template

import "strings"

type field struct {
	label string
	value string
}

// section groups labeled fields under a heading. Sections with no populated
// fields are omitted from the document entirely.
type section struct {
	title  string
	fields []field
}

// add appends a pre-escaped label/value pair, dropping absent values so the
// document never contains empty rows.
func (s *section) add(label, value string) {
	if value == "" {
		return
	}
	s.fields = append(s.fields, field{label: label, value: value})
}

func (s *section) empty() bool {
	return len(s.fields) == 0
}

func (s *section) writeTo(b *strings.Builder) {
	b.WriteString(`<div class="section"><div class="section-title">`)
	b.WriteString(s.title)
	b.WriteString("</div>")
	for _, f := range s.fields {
		b.WriteString(`<div class="field"><div class="label">`)
		b.WriteString(f.label)
		b.WriteString(`</div><div class="value">`)
		b.WriteString(f.value)
		b.WriteString("</div></div>")
	}
	b.WriteString("</div>")
}

const docStyle = `<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #1F2937; background-color: #F9FAFB; }
.email-container { max-width: 600px; margin: 0 auto; background: #FFFFFF; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
.header { background: linear-gradient(135deg, #DC143C 0%, #B71C1C 100%); color: white; padding: 32px 24px; text-align: center; }
.header h1 { font-size: 24px; font-weight: 700; margin-bottom: 8px; letter-spacing: -0.02em; }
.header p { font-size: 14px; opacity: 0.9; }
.content { padding: 32px 24px; background: #FFFFFF; }
.section { margin-bottom: 32px; }
.section:last-child { margin-bottom: 0; }
.section-title { font-size: 18px; font-weight: 600; color: #1E3A8A; margin-bottom: 16px; padding-bottom: 8px; border-bottom: 2px solid #E5E7EB; }
.field { margin-bottom: 16px; padding: 12px; background: #F9FAFB; border-radius: 8px; border-left: 3px solid #1E3A8A; }
.field:last-child { margin-bottom: 0; }
.label { font-weight: 600; color: #374151; font-size: 13px; text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 4px; }
.value { color: #1F2937; font-size: 15px; }
.details-box { background: #F9FAFB; border-radius: 12px; padding: 24px; margin-bottom: 32px; border: 1px solid #E5E7EB; }
.details-box h3 { font-size: 16px; font-weight: 600; color: #1E3A8A; margin-bottom: 16px; }
.detail-row { display: flex; justify-content: space-between; padding: 12px 0; border-bottom: 1px solid #E5E7EB; }
.detail-row:last-child { border-bottom: none; }
.detail-label { font-weight: 500; color: #6B7280; font-size: 14px; }
.detail-value { font-weight: 600; color: #1F2937; font-size: 14px; text-align: right; }
.message { text-align: center; margin-bottom: 32px; }
.message h2 { font-size: 22px; font-weight: 600; color: #1F2937; margin-bottom: 12px; }
.message p { font-size: 16px; color: #6B7280; line-height: 1.7; }
.cta-box { background: linear-gradient(135deg, #1E3A8A 0%, #1E40AF 100%); color: white; padding: 24px; border-radius: 12px; text-align: center; margin-bottom: 32px; }
.cta-box h3 { font-size: 18px; font-weight: 600; margin-bottom: 8px; }
.cta-box p { font-size: 14px; opacity: 0.9; }
.footer { background: #F9FAFB; padding: 24px; text-align: center; border-top: 1px solid #E5E7EB; color: #6B7280; font-size: 13px; }
.footer a { color: #1E3A8A; text-decoration: none; font-weight: 500; }
</style>`

func docOpen(b *strings.Builder) {
	b.WriteString("<!DOCTYPE html><html><head>")
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	b.WriteString(docStyle)
	b.WriteString("</head><body>")
	b.WriteString(`<div class="email-container">`)
}

func docClose(b *strings.Builder) {
	b.WriteString("</div></body></html>")
}
