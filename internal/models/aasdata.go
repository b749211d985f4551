package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scope selects which part of the CarbonFootprint submodel an aggregation
// covers.
type Scope string

const (
	ScopeAll Scope = "all"
	ScopePCF Scope = "pcf"
	ScopeTCF Scope = "tcf"
)

// NoQuantity is returned by CO2eqPerItem when the first PCF entry carries no
// parseable quantity.
const NoQuantity = "no quantity"

// LifeCycleDistribution buckets PCF emissions into the four display groups of
// the overview chart. Values are kg of CO2 equivalent.
type LifeCycleDistribution struct {
	Production float64
	Usage      float64
	AfterLife  float64
	SecondLife float64
}

var (
	productionPhases = []PhaseCode{PhaseA1, PhaseA2, PhaseA3, PhaseA4}
	usagePhases      = []PhaseCode{PhaseB1, PhaseB2, PhaseB3, PhaseB5, PhaseB6, PhaseB7}
	afterLifePhases  = []PhaseCode{PhaseC1, PhaseC2, PhaseC3, PhaseC4}
	secondLifePhases = []PhaseCode{PhaseD}
)

// AASData wraps one fetched AssetRecord and derives CO2 figures from it. The
// wrapped record is never mutated; a collection refresh replaces the whole
// instance.
type AASData struct {
	Record AssetRecord
}

// NewAASData wraps a raw record.
func NewAASData(record AssetRecord) *AASData {
	return &AASData{Record: record}
}

// Sender returns the owning session identifier of the record.
func (a *AASData) Sender() string { return a.Record.Sender }

// AssetID returns the canonical record identifier.
func (a *AASData) AssetID() string { return a.Record.AssetID }

// AssetIDShort returns the display name of the record.
func (a *AASData) AssetIDShort() string { return a.Record.AssetIDShort }

// SumCO2eq totals the CO2eq fields in the chosen scope. Values that do not
// parse as a finite number contribute nothing; the result may be 0.
func (a *AASData) SumCO2eq(scope Scope) float64 {
	cf := a.Record.Submodels.CarbonFootprint
	var total float64
	if scope == ScopeAll || scope == ScopePCF {
		for _, entry := range cf.ProductCarbonFootprint {
			total += co2eqValue(entry.PCFCO2eq)
		}
	}
	if scope == ScopeAll || scope == ScopeTCF {
		for _, entry := range cf.TransportCarbonFootprint {
			total += co2eqValue(entry.TCFCO2eq)
		}
	}
	return total
}

// SumCO2eqPerLifeCycle totals PCFCO2eq over the PCF entries whose phase code
// equals phase exactly. No normalization is applied to the code.
func (a *AASData) SumCO2eqPerLifeCycle(phase string) float64 {
	var total float64
	for _, entry := range a.Record.Submodels.CarbonFootprint.ProductCarbonFootprint {
		if entry.PCFLiveCyclePhase == phase {
			total += co2eqValue(entry.PCFCO2eq)
		}
	}
	return total
}

// Distribution groups PCF emissions into the four chart buckets. Entries with
// an empty, unknown or combined-A1-A3 phase code fall into no bucket.
func (a *AASData) Distribution() LifeCycleDistribution {
	return LifeCycleDistribution{
		Production: a.sumPhases(productionPhases),
		Usage:      a.sumPhases(usagePhases),
		AfterLife:  a.sumPhases(afterLifePhases),
		SecondLife: a.sumPhases(secondLifePhases),
	}
}

func (a *AASData) sumPhases(phases []PhaseCode) float64 {
	var total float64
	for _, phase := range phases {
		total += a.SumCO2eqPerLifeCycle(string(phase))
	}
	return total
}

// CO2eqPerItem divides the total CO2eq by the quantity of the first PCF entry
// and formats it with two decimals. When there is no first entry or its
// quantity does not parse, the NoQuantity sentinel is returned instead.
func (a *AASData) CO2eqPerItem() string {
	pcf := a.Record.Submodels.CarbonFootprint.ProductCarbonFootprint
	if len(pcf) == 0 {
		return NoQuantity
	}
	quantity, err := parseDecimal(pcf[0].PCFQuantityOfMeasureForCalculation)
	if err != nil || math.IsNaN(quantity) {
		return NoQuantity
	}
	return fmt.Sprintf("%.2f", a.SumCO2eq(ScopeAll)/quantity)
}

// co2eqValue parses one wire value, treating anything non-numeric (including
// NaN spellings) as zero contribution.
func co2eqValue(raw string) float64 {
	v, err := parseDecimal(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseDecimal(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
