package domain

import "strings"

// PermitRequest represents one incoming permit/quote form submission. The
// payload is untrusted: every field is free text sent by the browser, and
// everything except the three contact fields is optional. An empty string
// means the field was not provided.
type PermitRequest struct {
	// Contact information
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CompanyName  string `json:"companyName,omitempty"`

	// Origin and destination
	Origin            string   `json:"origin,omitempty"`
	Destination       string   `json:"destination,omitempty"`
	OriginLatLng      string   `json:"originLatLng,omitempty"`
	DestinationLatLng string   `json:"destinationLatLng,omitempty"`
	AvoidHighways     string   `json:"avoidHighways,omitempty"` // "0" = Interstate, "1" = Non-Interstate
	SelectedStates    []string `json:"selectedStates,omitempty"`

	// Load dimensions
	CommodityLength string `json:"commodityLength,omitempty"`
	CommodityWidth  string `json:"commodityWidth,omitempty"`
	CommodityHeight string `json:"commodityHeight,omitempty"`
	CommodityWeight string `json:"commodityWeight,omitempty"`

	// Equipment
	TractorTrailerID          string `json:"tractorTrailerId,omitempty"`
	TractorTrailerDisplayName string `json:"tractorTrailerDisplayName,omitempty"`
	NumberOfAxles             string `json:"numberOfAxles,omitempty"`
	MoveType                  string `json:"moveType,omitempty"`

	// Overall dimensions
	Length      string `json:"length,omitempty"`
	Width       string `json:"width,omitempty"`
	Height      string `json:"height,omitempty"`
	WeightGross string `json:"weightGross,omitempty"`

	// Extra measurements
	OverhangFront string `json:"overhangFront,omitempty"`
	OverhangRear  string `json:"overhangRear,omitempty"`
	Kingpin       string `json:"kingpin,omitempty"`

	PromoCode string `json:"promoCode,omitempty"`

	// Legacy single-state form fields
	PermitType      string `json:"permitType,omitempty"` // oversized | overweight | superload | other
	State           string `json:"state,omitempty"`
	Route           string `json:"route,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	CargoWeight     string `json:"cargoWeight,omitempty"`
	CargoDimensions string `json:"cargoDimensions,omitempty"`
	CargoType       string `json:"cargoType,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// HasRoute reports whether the submission identifies its route by an
// origin/destination pair rather than the legacy single-state field.
func (r *PermitRequest) HasRoute() bool {
	return strings.TrimSpace(r.Origin) != "" && strings.TrimSpace(r.Destination) != ""
}

// PermitResponse is the wire response for a submission. Error carries the
// underlying cause and is only populated outside production.
type PermitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
