package template

import (
	"strings"

	"github.com/overdrivepermits/permit-service/internal/domain"
)

// RenderNotification builds the operator-facing HTML document summarizing a
// submission. Every populated field appears as a labeled value; absent
// fields produce no row, and sections with nothing to show are dropped
// altogether. All payload text is escaped.
func RenderNotification(req *domain.PermitRequest) string {
	contact := section{title: "Customer Information"}
	contact.add("Full Name", EscapeHTML(req.CustomerName))
	contact.add("Email Address", EscapeHTML(req.Email))
	contact.add("Phone Number", EscapeHTML(req.Phone))
	contact.add("Company Name", EscapeHTML(req.CompanyName))

	route := section{title: "Route & Permit Details"}
	route.add("Permit Type", permitTypeLabel(req.PermitType))
	route.add("State", EscapeHTML(req.State))
	route.add("Origin", EscapeHTML(req.Origin))
	route.add("Destination", EscapeHTML(req.Destination))
	route.add("Route Type", routeTypeLabel(req.AvoidHighways))
	if len(req.SelectedStates) > 0 {
		route.add("States on Route", EscapeHTML(strings.Join(req.SelectedStates, ", ")))
	}
	route.add("Route", EscapeHTML(req.Route))
	route.add("Start Date", EscapeHTML(FormatDate(req.StartDate)))
	route.add("End Date", EscapeHTML(FormatDate(req.EndDate)))

	load := section{title: "Load Dimensions"}
	load.add("Commodity Length", EscapeHTML(req.CommodityLength))
	load.add("Commodity Width", EscapeHTML(req.CommodityWidth))
	load.add("Commodity Height", EscapeHTML(req.CommodityHeight))
	load.add("Commodity Weight", EscapeHTML(req.CommodityWeight))

	equipment := section{title: "Equipment"}
	equipment.add("Trailer", EscapeHTML(equipmentName(req)))
	equipment.add("Number of Axles", EscapeHTML(req.NumberOfAxles))
	equipment.add("Move Type", EscapeHTML(req.MoveType))

	overall := section{title: "Overall Dimensions"}
	overall.add("Length", EscapeHTML(req.Length))
	overall.add("Width", EscapeHTML(req.Width))
	overall.add("Height", EscapeHTML(req.Height))
	overall.add("Gross Weight", EscapeHTML(req.WeightGross))

	extra := section{title: "Additional Measurements"}
	extra.add("Front Overhang", EscapeHTML(req.OverhangFront))
	extra.add("Rear Overhang", EscapeHTML(req.OverhangRear))
	extra.add("Kingpin", EscapeHTML(req.Kingpin))

	promo := section{title: "Promo Code"}
	promo.add("Promo Code", EscapeHTML(req.PromoCode))

	cargo := section{title: "Cargo Information"}
	cargo.add("Weight", EscapeHTML(req.CargoWeight))
	cargo.add("Dimensions", EscapeHTML(req.CargoDimensions))
	cargo.add("Cargo Type", EscapeHTML(req.CargoType))

	notes := section{title: "Additional Notes"}
	notes.add("Notes", EscapeHTML(req.Notes))

	var b strings.Builder
	docOpen(&b)
	b.WriteString(`<div class="header"><h1>&#128667; New Permit Request</h1><p>OVERDRIVE PERMITS</p></div>`)
	b.WriteString(`<div class="content">`)
	for _, s := range []section{contact, route, load, equipment, overall, extra, promo, cargo, notes} {
		if s.empty() {
			continue
		}
		s.writeTo(&b)
	}
	b.WriteString("</div>")
	b.WriteString(`<div class="footer"><p>This is an automated notification from OVERDRIVE PERMITS</p><p>Please respond to this request as soon as possible.</p></div>`)
	docClose(&b)
	return b.String()
}

// equipmentName prefers the human-readable trailer name over the raw id
func equipmentName(req *domain.PermitRequest) string {
	if req.TractorTrailerDisplayName != "" {
		return req.TractorTrailerDisplayName
	}
	return req.TractorTrailerID
}
