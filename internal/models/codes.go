package models

// The AAS submodel templates identify enumeration values by eClass IRDI
// strings. The tables below map every code the backend may send to its
// display label; anything else renders as NotDefined. Empty string is a
// legitimate key meaning "not chosen yet".

// NotDefined is the label for codes absent from a lookup table.
const NotDefined = "not defined"

// UnitCode identifies the reference unit of a quantity.
type UnitCode string

const (
	UnitGram        UnitCode = "0173-1#07-ABZ596#001"
	UnitKilogram    UnitCode = "0173-1#07-ABZ597#001"
	UnitTon         UnitCode = "0173-1#07-ABZ598#001"
	UnitMilliliter  UnitCode = "0173-1#07-ABZ599#001"
	UnitLiter       UnitCode = "0173-1#07-ABZ600#001"
	UnitCubicMeter  UnitCode = "0173-1#07-ABZ601#001"
	UnitSquareMeter UnitCode = "0173-1#07-ABZ602#001"
	UnitPiece       UnitCode = "0173-1#07-ABZ603#001"
)

var unitLabels = map[UnitCode]string{
	UnitGram:        "g",
	UnitKilogram:    "kg",
	UnitTon:         "t",
	UnitMilliliter:  "ml",
	UnitLiter:       "l",
	UnitCubicMeter:  "cbm",
	UnitSquareMeter: "qm",
	UnitPiece:       "piece",
	"":              NotDefined,
}

// UnitLabel resolves a reference unit code to its display label.
func UnitLabel(key string) string {
	if label, ok := unitLabels[UnitCode(key)]; ok {
		return label
	}
	return NotDefined
}

// PhaseCode identifies a life-cycle phase (A1..D plus the combined A1-A3).
type PhaseCode string

const (
	PhaseA1     PhaseCode = "0173-1#07-ABU208#001"
	PhaseA2     PhaseCode = "0173-1#07-ABU209#001"
	PhaseA3     PhaseCode = "0173-1#07-ABU210#001"
	PhaseA4     PhaseCode = "0173-1#07-ABU211#001"
	PhaseB1     PhaseCode = "0173-1#07-ABU212#001"
	PhaseB2     PhaseCode = "0173-1#07-ABV498#001"
	PhaseB3     PhaseCode = "0173-1#07-ABV497#001"
	PhaseB5     PhaseCode = "0173-1#07-ABV499#001"
	PhaseB6     PhaseCode = "0173-1#07-ABV500#001"
	PhaseB7     PhaseCode = "0173-1#07-ABV501#001"
	PhaseC1     PhaseCode = "0173-1#07-ABV502#001"
	PhaseC2     PhaseCode = "0173-1#07-ABU213#001"
	PhaseC3     PhaseCode = "0173-1#07-ABV503#001"
	PhaseC4     PhaseCode = "0173-1#07-ABV504#001"
	PhaseD      PhaseCode = "0173-1#07-ABU214#001"
	PhaseA1ToA3 PhaseCode = "0173-1#07-ABZ789#001"
)

var phaseLabels = map[PhaseCode]string{
	PhaseA1:     "A1 – raw material supply (and upstream production)",
	PhaseA2:     "A2 - cradle-to-gate transport to factory",
	PhaseA3:     "A3 - production",
	PhaseA4:     "A4 - transport to final destination",
	PhaseB1:     "B1 – usage phase",
	PhaseB2:     "B2 – maintenance",
	PhaseB3:     "B3 - repair",
	PhaseB5:     "B5 – update/upgrade, refurbishing",
	PhaseB6:     "B6 – usage energy consumption",
	PhaseB7:     "B7 – usage water consumption",
	PhaseC1:     "C1 – reassembly",
	PhaseC2:     "C2 – transport to recycler",
	PhaseC3:     "C3 – recycling, waste treatment",
	PhaseC4:     "C4 – landfill",
	PhaseD:      "D - reuse",
	PhaseA1ToA3: "A1-A3 – combined A1, A2, and A3 processes",
	"":          NotDefined,
}

// PhaseLabel resolves a life-cycle phase code to its display label.
func PhaseLabel(key string) string {
	if label, ok := phaseLabels[PhaseCode(key)]; ok {
		return label
	}
	return NotDefined
}

// Calculation method codes. The PCF template references the #002 revision of
// the eClass values, the TCF template the #001 revision; both families carry
// the same labels, so a single table resolves either.
var calculationMethodLabels = map[string]string{
	"0173-1#07-ABU223#002": "EN 15804",
	"0173-1#07-ABU221#002": "GHG Protocol",
	"0173-1#07-ABU222#002": "IEC TS 63058",
	"0173-1#07-ABV505#002": "ISO 14040",
	"0173-1#07-ABV506#002": "ISO 14044",
	"0173-1#07-ABU218#002": "ISO 14067",
	"0173-1#07-ACA792#001": "IEC 63366",
	"0173-1#07-ABU220#002": "PEP Ecopassport",
	"0173-1#07-ABU223#001": "EN 15804",
	"0173-1#07-ABU221#001": "GHG Protocol",
	"0173-1#07-ABU222#001": "IEC TS 63058",
	"0173-1#07-ABV505#001": "ISO 14040",
	"0173-1#07-ABV506#001": "ISO 14044",
	"0173-1#07-ABU218#001": "ISO 14067",
	"":                     NotDefined,
}

// CalculationMethodLabel resolves a PCF/TCF calculation method code.
func CalculationMethodLabel(key string) string {
	if label, ok := calculationMethodLabels[key]; ok {
		return label
	}
	return NotDefined
}

// TransportProcessCode identifies which part of the fuel chain a transport
// emission figure covers.
type TransportProcessCode string

const (
	ProcessWellToTank  TransportProcessCode = "0173-1#07-ABU216#001"
	ProcessTankToWheel TransportProcessCode = "0173-1#07-ABU215#001"
	ProcessWellToWheel TransportProcessCode = "0173-1#07-ABU217#001"
)

var transportProcessLabels = map[TransportProcessCode]string{
	ProcessWellToTank:  "WTT - Well-to-Tank",
	ProcessTankToWheel: "TTW - Tank-to-Wheel",
	ProcessWellToWheel: "WTW - Well-to-Wheel",
}

// TransportProcessLabel resolves a TCF greenhouse-gas process code.
func TransportProcessLabel(key string) string {
	if label, ok := transportProcessLabels[TransportProcessCode(key)]; ok {
		return label
	}
	return NotDefined
}
