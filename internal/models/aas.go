package models

// AssetRecord is one Asset Administration Shell record as served by the AAS
// backend. Every field travels as a string on the wire, numeric values
// included; parsing happens at aggregation time only.
type AssetRecord struct {
	Sender       string    `json:"sender"`
	AssetIDShort string    `json:"assetIDShort"`
	AssetID      string    `json:"assetID"`
	Submodels    Submodels `json:"submodels"`
}

// Submodels is the fixed-shape submodel section of an AssetRecord.
type Submodels struct {
	Nameplate       Nameplate       `json:"Nameplate"`
	TechnicalData   TechnicalData   `json:"TechnicalData"`
	CarbonFootprint CarbonFootprint `json:"CarbonFootprint"`
}

// Nameplate identifies the physical product.
type Nameplate struct {
	URIOfTheProduct    string `json:"URIOfTheProduct"`
	ManufacturerName   string `json:"ManufacturerName"`
	SerialNumber       string `json:"SerialNumber"`
	YearOfConstruction string `json:"YearOfConstruction"`
	DateOfManufacture  string `json:"DateOfManufacture"`
}

// TechnicalData carries ordering data. Logo and image are placeholders in the
// submission contract and are always sent empty.
type TechnicalData struct {
	ManufacturerOrderCode string `json:"ManufacturerOrderCode"`
	ManufacturerLogo      string `json:"ManufacturerLogo"`
	ProductImage          string `json:"ProductImage"`
}

// CarbonFootprint holds the two ordered entry sequences. The edit form keeps
// at least one entry in each list at all times.
type CarbonFootprint struct {
	ProductCarbonFootprint   []PCFEntry `json:"ProductCarbonFootprint"`
	TransportCarbonFootprint []TCFEntry `json:"TransportCarbonFootprint"`
}

// PCFEntry is one Product Carbon Footprint entry. ReferableAssetID may point
// at another record's AssetID to attribute upstream emissions; free-form
// identifiers outside the loaded collection are allowed.
type PCFEntry struct {
	ReferableAssetID                   string `json:"ReferableAssetID"`
	PCFCalculationMethod               string `json:"PCFCalculationMethod"`
	PCFCO2eq                           string `json:"PCFCO2eq"`
	PCFQuantityOfMeasureForCalculation string `json:"PCFQuantityOfMeasureForCalculation"`
	PCFReferenceValueForCalculation    string `json:"PCFReferenceValueForCalculation"`
	PCFLiveCyclePhase                  string `json:"PCFLiveCyclePhase"`
	PCFDescription                     string `json:"PCFDescription"`
	ExplanatoryStatement               string `json:"ExplanatoryStatement"`

	// Handover address of the produced asset.
	PCFHandoverStreet    string `json:"PCFHandoverStreet"`
	PCFHandoverNumber    string `json:"PCFHandoverNumber"`
	PCFHandoverCity      string `json:"PCFHandoverCity"`
	PCFHandoverZIP       string `json:"PCFHandoverZIP"`
	PCFHandoverCountry   string `json:"PCFHandoverCountry"`
	PCFHandoverLatitude  string `json:"PCFHandoverLatitude"`
	PCFHandoverLongitude string `json:"PCFHandoverLongitude"`
}

// TCFEntry is one Transport Carbon Footprint entry. Transport has two
// endpoints, so it carries both a takeover and a handover address.
type TCFEntry struct {
	TCFCalculationMethod                                    string `json:"TCFCalculationMethod"`
	TCFCO2eq                                                string `json:"TCFCO2eq"`
	TCFQuantityOfMeasureForCalculation                      string `json:"TCFQuantityOfMeasureForCalculation"`
	TCFReferenceValueForCalculation                         string `json:"TCFReferenceValueForCalculation"`
	TCFProcessesForGreenhouseGasEmissionInATransportService string `json:"TCFProcessesForGreenhouseGasEmissionInATransportService"`

	TCFTakeoverStreet    string `json:"TCFTakeoverStreet"`
	TCFTakeoverNumber    string `json:"TCFTakeoverNumber"`
	TCFTakeoverCity      string `json:"TCFTakeoverCity"`
	TCFTakeoverZIP       string `json:"TCFTakeoverZIP"`
	TCFTakeoverCountry   string `json:"TCFTakeoverCountry"`
	TCFTakeoverLatitude  string `json:"TCFTakeoverLatitude"`
	TCFTakeoverLongitude string `json:"TCFTakeoverLongitude"`

	TCFHandoverStreet    string `json:"TCFHandoverStreet"`
	TCFHandoverNumber    string `json:"TCFHandoverNumber"`
	TCFHandoverCity      string `json:"TCFHandoverCity"`
	TCFHandoverZIP       string `json:"TCFHandoverZIP"`
	TCFHandoverCountry   string `json:"TCFHandoverCountry"`
	TCFHandoverLatitude  string `json:"TCFHandoverLatitude"`
	TCFHandoverLongitude string `json:"TCFHandoverLongitude"`
}
