// Package types provides type definitions for the data exchanged between the relocation views and the backend API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultUserID is the fixed user identifier attached to every backend request.
const DefaultUserID = "user_001"

// Default budget bounds for a fresh search form.
const (
	DefaultBudgetMin = 2000
	DefaultBudgetMax = 5000
)

// BudgetRange is the monthly budget window for a relocation search.
type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SearchCriteria holds the relocation search form state.
type SearchCriteria struct {
	CurrentLocation string      `json:"current_location" validate:"required"`
	TargetCities    []string    `json:"target_cities"`
	BudgetRange     BudgetRange `json:"budget_range"`
}

// Preferences is the lifestyle preference block sent with a search.
type Preferences struct {
	Climate      string `json:"climate"`
	CostOfLiving string `json:"cost_of_living"`
}

// DefaultPreferences returns the preference block attached to every search.
func DefaultPreferences() Preferences {
	return Preferences{Climate: "moderate", CostOfLiving: "medium"}
}

// SearchRequest is the POST body for /search-locations.
type SearchRequest struct {
	UserID          string      `json:"user_id"`
	CurrentLocation string      `json:"current_location"`
	TargetCities    []string    `json:"target_cities"`
	BudgetRange     BudgetRange `json:"budget_range"`
	Preferences     Preferences `json:"preferences"`
}

// LocationSearch is the backend's record of a created search.
type LocationSearch struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	CurrentLocation string         `json:"current_location"`
	TargetCities    []string       `json:"target_cities"`
	BudgetRange     map[string]int `json:"budget_range"`
	Preferences     map[string]any `json:"preferences"`
	// Timestamp is kept as sent. The backend emits ISO-8601 without a zone offset.
	Timestamp       string         `json:"timestamp"`
}

// NewSearchCriteria returns the initial form state.
func NewSearchCriteria() SearchCriteria {
	return SearchCriteria{
		TargetCities: []string{},
		BudgetRange:  BudgetRange{Min: DefaultBudgetMin, Max: DefaultBudgetMax},
	}
}

// Validate reports whether the criteria can be submitted.
func (c SearchCriteria) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// WithCurrentLocation returns a copy with the current location replaced.
func (c SearchCriteria) WithCurrentLocation(location string) SearchCriteria {
	out := c.clone()
	out.CurrentLocation = location
	return out
}

// WithTargetCities returns a copy with the target cities parsed from a comma separated input.
func (c SearchCriteria) WithTargetCities(raw string) SearchCriteria {
	out := c.clone()
	out.TargetCities = ParseTargetCities(raw)
	return out
}

// WithBudgetMin returns a copy with the lower budget bound parsed from raw.
// Input that is not an integer leaves the bound unchanged.
func (c SearchCriteria) WithBudgetMin(raw string) SearchCriteria {
	out := c.clone()
	if v, ok := parseBudget(raw); ok {
		out.BudgetRange.Min = v
	}
	return out
}

// WithBudgetMax returns a copy with the upper budget bound parsed from raw.
// Input that is not an integer leaves the bound unchanged.
func (c SearchCriteria) WithBudgetMax(raw string) SearchCriteria {
	out := c.clone()
	if v, ok := parseBudget(raw); ok {
		out.BudgetRange.Max = v
	}
	return out
}

// TargetCitiesInput joins the cities back into the form's text representation.
func (c SearchCriteria) TargetCitiesInput() string {
	return strings.Join(c.TargetCities, ", ")
}

// Request builds the POST body with the fixed user id and preferences.
func (c SearchCriteria) Request() SearchRequest {
	cities := make([]string, len(c.TargetCities))
	copy(cities, c.TargetCities)
	return SearchRequest{
		UserID:          DefaultUserID,
		CurrentLocation: c.CurrentLocation,
		TargetCities:    cities,
		BudgetRange:     c.BudgetRange,
		Preferences:     DefaultPreferences(),
	}
}

func (c SearchCriteria) clone() SearchCriteria {
	out := c
	out.TargetCities = make([]string, len(c.TargetCities))
	copy(out.TargetCities, c.TargetCities)
	return out
}

// ParseTargetCities splits a comma separated list and trims every element.
// Empty segments are preserved.
func ParseTargetCities(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseBudget(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
