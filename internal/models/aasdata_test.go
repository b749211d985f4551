package models

import (
	"math"
	"testing"
)

func sampleRecord() AssetRecord {
	return AssetRecord{
		Sender:       "plant-a",
		AssetIDShort: "Gearbox",
		AssetID:      "https://example.com/id/gearbox",
		Submodels: Submodels{
			CarbonFootprint: CarbonFootprint{
				ProductCarbonFootprint: []PCFEntry{
					{PCFCO2eq: "10.5", PCFQuantityOfMeasureForCalculation: "3", PCFLiveCyclePhase: string(PhaseA3)},
					{PCFCO2eq: "2", PCFLiveCyclePhase: string(PhaseB6)},
					{PCFCO2eq: "1.5", PCFLiveCyclePhase: string(PhaseC4)},
				},
				TransportCarbonFootprint: []TCFEntry{
					{TCFCO2eq: "4"},
					{TCFCO2eq: "0.5"},
				},
			},
		},
	}
}

func TestSumCO2eqScopes(t *testing.T) {
	aas := NewAASData(sampleRecord())

	pcf := aas.SumCO2eq(ScopePCF)
	tcf := aas.SumCO2eq(ScopeTCF)
	all := aas.SumCO2eq(ScopeAll)

	if pcf != 14 {
		t.Fatalf("pcf sum = %v, want 14", pcf)
	}
	if tcf != 4.5 {
		t.Fatalf("tcf sum = %v, want 4.5", tcf)
	}
	// The two subtrees are disjoint, so the totals must add up exactly.
	if all != pcf+tcf {
		t.Fatalf("all = %v, want pcf+tcf = %v", all, pcf+tcf)
	}
}

func TestSumCO2eqSkipsUnparseable(t *testing.T) {
	record := sampleRecord()
	record.Submodels.CarbonFootprint.ProductCarbonFootprint = append(
		record.Submodels.CarbonFootprint.ProductCarbonFootprint,
		PCFEntry{PCFCO2eq: "abc"},
		PCFEntry{PCFCO2eq: ""},
		PCFEntry{PCFCO2eq: "NaN"},
	)
	aas := NewAASData(record)
	if got := aas.SumCO2eq(ScopePCF); got != 14 {
		t.Fatalf("pcf sum with junk entries = %v, want 14", got)
	}
}

func TestSumCO2eqPerLifeCycleExactMatch(t *testing.T) {
	aas := NewAASData(sampleRecord())
	if got := aas.SumCO2eqPerLifeCycle(string(PhaseA3)); got != 10.5 {
		t.Fatalf("A3 sum = %v, want 10.5", got)
	}
	if got := aas.SumCO2eqPerLifeCycle("no-such-code"); got != 0 {
		t.Fatalf("unknown phase sum = %v, want 0", got)
	}
}

func TestDistributionBuckets(t *testing.T) {
	record := sampleRecord()
	// One entry with the combined A1-A3 code and one with an empty code must
	// stay outside every bucket.
	record.Submodels.CarbonFootprint.ProductCarbonFootprint = append(
		record.Submodels.CarbonFootprint.ProductCarbonFootprint,
		PCFEntry{PCFCO2eq: "100", PCFLiveCyclePhase: string(PhaseA1ToA3)},
		PCFEntry{PCFCO2eq: "50", PCFLiveCyclePhase: ""},
	)
	aas := NewAASData(record)
	d := aas.Distribution()

	if d.Production != 10.5 {
		t.Fatalf("production = %v, want 10.5", d.Production)
	}
	if d.Usage != 2 {
		t.Fatalf("usage = %v, want 2", d.Usage)
	}
	if d.AfterLife != 1.5 {
		t.Fatalf("after life = %v, want 1.5", d.AfterLife)
	}
	if d.SecondLife != 0 {
		t.Fatalf("second life = %v, want 0", d.SecondLife)
	}
}

func TestDistributionCoversPCFSumWhenAllPhasesRecognized(t *testing.T) {
	aas := NewAASData(sampleRecord())
	d := aas.Distribution()
	total := d.Production + d.Usage + d.AfterLife + d.SecondLife
	if diff := math.Abs(total - aas.SumCO2eq(ScopePCF)); diff > 1e-9 {
		t.Fatalf("bucket total %v != pcf sum %v", total, aas.SumCO2eq(ScopePCF))
	}
}

func TestCO2eqPerItem(t *testing.T) {
	aas := NewAASData(sampleRecord())
	// 18.5 / 3 = 6.1666... -> two decimals
	if got := aas.CO2eqPerItem(); got != "6.17" {
		t.Fatalf("per item = %q, want 6.17", got)
	}
}

func TestCO2eqPerItemRounds(t *testing.T) {
	record := AssetRecord{Submodels: Submodels{CarbonFootprint: CarbonFootprint{
		ProductCarbonFootprint: []PCFEntry{{PCFCO2eq: "12.345", PCFQuantityOfMeasureForCalculation: "3"}},
	}}}
	if got := NewAASData(record).CO2eqPerItem(); got != "4.12" {
		t.Fatalf("per item = %q, want 4.12", got)
	}
}

func TestCO2eqPerItemNoQuantity(t *testing.T) {
	for _, quantity := range []string{"", "abc", "NaN"} {
		record := sampleRecord()
		record.Submodels.CarbonFootprint.ProductCarbonFootprint[0].PCFQuantityOfMeasureForCalculation = quantity
		if got := NewAASData(record).CO2eqPerItem(); got != NoQuantity {
			t.Fatalf("quantity %q: got %q, want %q", quantity, got, NoQuantity)
		}
	}
}

func TestCO2eqPerItemEmptyPCF(t *testing.T) {
	record := sampleRecord()
	record.Submodels.CarbonFootprint.ProductCarbonFootprint = nil
	if got := NewAASData(record).CO2eqPerItem(); got != NoQuantity {
		t.Fatalf("empty pcf: got %q, want %q", got, NoQuantity)
	}
}
