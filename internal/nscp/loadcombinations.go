package nscp

import "math"

// Load case keys carried by input loads
const (
	CaseDead       = "D"
	CaseLive       = "L"
	CaseRoof       = "Lr"
	CaseWind       = "W"
	CaseEarthquake = "E"
	CaseRain       = "R"
)

// Cases lists the recognized load case keys
var Cases = []string{CaseDead, CaseLive, CaseRoof, CaseWind, CaseEarthquake, CaseRain}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	// Load factors for each load case
	Dead       float64 `json:"D,omitempty"`  // D - Dead load
	Live       float64 `json:"L,omitempty"`  // L - Live load
	Roof       float64 `json:"Lr,omitempty"` // Lr - Roof live load
	Wind       float64 `json:"W,omitempty"`  // W - Wind load
	Earthquake float64 `json:"E,omitempty"`  // E - Earthquake load
	Rain       float64 `json:"R,omitempty"`  // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for gravity-only analyses
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the factor the combination applies to a load case. An
// empty case is dead load. ok is false for an unknown case.
func (lc LoadCombination) Factor(loadCase string) (factor float64, ok bool) {
	switch loadCase {
	case "", CaseDead:
		return lc.Dead, true
	case CaseLive:
		return lc.Live, true
	case CaseRoof:
		return lc.Roof, true
	case CaseWind:
		return lc.Wind, true
	case CaseEarthquake:
		return lc.Earthquake, true
	case CaseRain:
		return lc.Rain, true
	}
	return 0, false
}

// Find returns the combination with the given id from a table
func Find(table []LoadCombination, id string) (LoadCombination, bool) {
	for _, lc := range table {
		if lc.ID == id {
			return lc, true
		}
	}
	return LoadCombination{}, false
}

// Table returns a combination table by name: "nscp" or "simplified"
func Table(name string) ([]LoadCombination, bool) {
	switch name {
	case "", "nscp":
		return LoadCombinations, true
	case "simplified":
		return SimplifiedCombinations, true
	}
	return nil, false
}

// Effects holds one unfactored load effect (moment, shear, reaction) per
// load case
type Effects struct {
	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// Combine returns the factored effect for the combination
func (lc LoadCombination) Combine(e Effects) float64 {
	return lc.Dead*e.Dead +
		lc.Live*e.Live +
		lc.Roof*e.Roof +
		lc.Wind*e.Wind +
		lc.Earthquake*e.Earthquake +
		lc.Rain*e.Rain
}

// Governing finds the combination giving the largest factored effect in
// magnitude
func Governing(e Effects, combinations []LoadCombination) (float64, LoadCombination) {
	var governing float64
	var combo LoadCombination

	for _, lc := range combinations {
		v := lc.Combine(e)
		if math.Abs(v) > math.Abs(governing) {
			governing = v
			combo = lc
		}
	}

	return governing, combo
}
