package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/backend"
	"github.com/greentwin/aas-cockpit/internal/models"
	"github.com/greentwin/aas-cockpit/internal/policy"
	"github.com/greentwin/aas-cockpit/internal/services"
	"github.com/greentwin/aas-cockpit/internal/session"
	"github.com/greentwin/aas-cockpit/internal/view"
	"github.com/greentwin/aas-cockpit/validation"
)

// AASHandler serves the asset pages: list, detail, form, and the
// import/export round trips. All persistence happens in the backend; after
// every mutation the collection snapshot is refreshed.
type AASHandler struct {
	backend    *backend.Client
	collection *services.Collection
	log        zerolog.Logger
}

func NewAASHandler(client *backend.Client, collection *services.Collection, log zerolog.Logger) *AASHandler {
	return &AASHandler{
		backend:    client,
		collection: collection,
		log:        log.With().Str("component", "aas").Logger(),
	}
}

// assetRow is one line of the overview table.
type assetRow struct {
	AssetIDShort     string
	AssetID          string
	ManufacturerName string
	TotalCO2         float64
	PCFCO2           float64
	TCFCO2           float64
	PerItem          string
	Allowed          bool
	Dist             models.LifeCycleDistribution
}

// List renders the asset overview, optionally filtered by ?q=.
func (h *AASHandler) List(w http.ResponseWriter, r *http.Request) {
	token, _ := session.TokenFromContext(r.Context())
	query := r.URL.Query().Get("q")

	records, err := h.collection.Filter(r.Context(), query)
	if err != nil {
		h.log.Error().Err(err).Msg("load collection")
		view.Render(w, r, "aas/index.html", map[string]any{
			"Error": "The AAS service is not reachable.",
			"Query": query,
		})
		return
	}

	rows := make([]assetRow, 0, len(records))
	for _, d := range records {
		rows = append(rows, assetRow{
			AssetIDShort:     d.AssetIDShort(),
			AssetID:          d.AssetID(),
			ManufacturerName: d.Record.Submodels.Nameplate.ManufacturerName,
			TotalCO2:         d.SumCO2eq(models.ScopeAll),
			PCFCO2:           d.SumCO2eq(models.ScopePCF),
			TCFCO2:           d.SumCO2eq(models.ScopeTCF),
			PerItem:          d.CO2eqPerItem(),
			Allowed:          policy.CanViewDetails(token, d.Sender()),
			Dist:             d.Distribution(),
		})
	}

	view.Render(w, r, "aas/index.html", map[string]any{
		"Rows":  rows,
		"Query": query,
	})
}

// Show renders the detail page for one asset, including the life-cycle
// distribution chart. Assets of other senders stay summarized.
func (h *AASHandler) Show(w http.ResponseWriter, r *http.Request) {
	token, _ := session.TokenFromContext(r.Context())
	assetID := r.URL.Query().Get("aas_url")
	if assetID == "" {
		http.Redirect(w, r, "/aas", http.StatusSeeOther)
		return
	}

	record, err := h.backend.FetchOne(r.Context(), assetID)
	if err != nil {
		h.log.Error().Err(err).Str("assetID", assetID).Msg("fetch asset")
		http.Error(w, "Failed to load asset", http.StatusBadGateway)
		return
	}
	if record == nil {
		http.NotFound(w, r)
		return
	}

	d := models.NewAASData(*record)
	dist := d.Distribution()
	view.Render(w, r, "aas/show.html", map[string]any{
		"Asset":      d.Record,
		"Allowed":    policy.CanViewDetails(token, d.Sender()),
		"Total":      d.SumCO2eq(models.ScopeAll),
		"PCFTotal":   d.SumCO2eq(models.ScopePCF),
		"TCFTotal":   d.SumCO2eq(models.ScopeTCF),
		"PerItem":    d.CO2eqPerItem(),
		"Production": dist.Production,
		"Usage":      dist.Usage,
		"AfterLife":  dist.AfterLife,
		"SecondLife": dist.SecondLife,
	})
}

// New renders an empty form with one product and one transport footprint
// block to start from.
func (h *AASHandler) New(w http.ResponseWriter, r *http.Request) {
	record := models.AssetRecord{}
	record.Submodels.CarbonFootprint.ProductCarbonFootprint = []models.PCFEntry{{}}
	record.Submodels.CarbonFootprint.TransportCarbonFootprint = []models.TCFEntry{{}}
	ids, _ := h.collection.AssetIDs(r.Context())
	view.Render(w, r, "aas/form.html", map[string]any{
		"Asset":    record,
		"Mode":     "create",
		"AssetIDs": ids,
	})
}

// Edit loads an existing record into the form. Only the owner may edit.
func (h *AASHandler) Edit(w http.ResponseWriter, r *http.Request) {
	token, _ := session.TokenFromContext(r.Context())
	assetID := r.URL.Query().Get("aas_url")

	record, err := h.backend.FetchOne(r.Context(), assetID)
	if err != nil {
		h.log.Error().Err(err).Str("assetID", assetID).Msg("fetch asset for edit")
		http.Error(w, "Failed to load asset", http.StatusBadGateway)
		return
	}
	if record == nil {
		http.NotFound(w, r)
		return
	}
	if !policy.CanViewDetails(token, record.Sender) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if len(record.Submodels.CarbonFootprint.ProductCarbonFootprint) == 0 {
		record.Submodels.CarbonFootprint.ProductCarbonFootprint = []models.PCFEntry{{}}
	}
	if len(record.Submodels.CarbonFootprint.TransportCarbonFootprint) == 0 {
		record.Submodels.CarbonFootprint.TransportCarbonFootprint = []models.TCFEntry{{}}
	}
	ids, _ := h.collection.AssetIDs(r.Context())
	view.Render(w, r, "aas/form.html", map[string]any{
		"Asset":    record,
		"Mode":     "edit",
		"AssetIDs": ids,
	})
}

// Submit handles both create and update. The backend decides insert vs
// replace by assetID; we guard against reusing an existing assetID whenever
// the submitted ID is not the one the form started from.
func (h *AASHandler) Submit(w http.ResponseWriter, r *http.Request) {
	token, _ := session.TokenFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form data", http.StatusBadRequest)
		return
	}
	mode := r.FormValue("mode")
	record := recordFromForm(r)
	record.Sender = token

	// Uniqueness of assetID is the only field rule enforced here; every other
	// value travels to the backend as the string the form delivered.
	v := make(validation.Violations)
	validation.Required("assetID", record.AssetID, v)
	if v["assetID"] == "" && record.AssetID != r.FormValue("originalAssetID") {
		exists, err := h.collection.Contains(r.Context(), record.AssetID)
		if err == nil {
			validation.Unique("assetID", record.AssetID, func(string) bool { return exists }, v)
		}
	}
	if !v.Empty() {
		ids, _ := h.collection.AssetIDs(r.Context())
		view.Render(w, r, "aas/form.html", map[string]any{
			"Asset":    record,
			"Mode":     mode,
			"Errors":   v,
			"AssetIDs": ids,
		})
		return
	}

	if err := h.backend.Submit(r.Context(), record); err != nil {
		h.log.Error().Err(err).Str("assetID", record.AssetID).Msg("submission failed")
		ids, _ := h.collection.AssetIDs(r.Context())
		view.Render(w, r, "aas/form.html", map[string]any{
			"Asset":    record,
			"Mode":     mode,
			"Error":    "Failed to save asset: " + err.Error(),
			"AssetIDs": ids,
		})
		return
	}
	h.collection.Refresh(r.Context())
	http.Redirect(w, r, "/aas", http.StatusSeeOther)
}

// Delete removes an asset and refreshes the snapshot.
func (h *AASHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assetID := r.FormValue("aas_url")
	if assetID == "" {
		http.Error(w, "Missing aas_url", http.StatusBadRequest)
		return
	}
	if err := h.backend.Delete(r.Context(), assetID); err != nil {
		h.log.Error().Err(err).Str("assetID", assetID).Msg("delete failed")
		http.Error(w, "Failed to delete asset", http.StatusBadGateway)
		return
	}
	h.collection.Refresh(r.Context())
	http.Redirect(w, r, "/aas", http.StatusSeeOther)
}

// Import forwards an uploaded AASX/JSON file to the backend.
func (h *AASHandler) Import(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := h.backend.Import(r.Context(), header.Filename, file); err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("import failed")
		view.Render(w, r, "aas/index.html", map[string]any{
			"Error": "Import failed: " + err.Error(),
		})
		return
	}
	h.collection.Refresh(r.Context())
	http.Redirect(w, r, "/aas", http.StatusSeeOther)
}

// Export streams the backend's rendition of the selected assets as a
// download.
func (h *AASHandler) Export(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad form data", http.StatusBadRequest)
		return
	}
	format := r.FormValue("format")
	if format != "json" && format != "aasx" {
		http.Error(w, "Unknown export format", http.StatusBadRequest)
		return
	}
	selected := r.Form["selected"]
	if len(selected) == 0 {
		http.Redirect(w, r, "/aas", http.StatusSeeOther)
		return
	}

	filename, body, err := h.backend.Export(r.Context(), format, selected)
	if err != nil {
		h.log.Error().Err(err).Str("format", format).Msg("export failed")
		http.Error(w, "Export failed", http.StatusBadGateway)
		return
	}
	defer body.Close()

	if filename == "" {
		filename = "export." + format
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := io.Copy(w, body); err != nil {
		h.log.Error().Err(err).Msg("streaming export")
	}
}

// recordFromForm rebuilds the wire record from the flat form. Footprint
// blocks repeat their input names; the slices in r.Form keep submission
// order, so index i of every field belongs to block i.
func recordFromForm(r *http.Request) models.AssetRecord {
	record := models.AssetRecord{
		AssetIDShort: strings.TrimSpace(r.FormValue("assetIDShort")),
		AssetID:      strings.TrimSpace(r.FormValue("assetID")),
	}
	record.Submodels.Nameplate = models.Nameplate{
		URIOfTheProduct:    r.FormValue("URIOfTheProduct"),
		ManufacturerName:   r.FormValue("ManufacturerName"),
		SerialNumber:       r.FormValue("SerialNumber"),
		YearOfConstruction: r.FormValue("YearOfConstruction"),
		DateOfManufacture:  r.FormValue("DateOfManufacture"),
	}
	record.Submodels.TechnicalData = models.TechnicalData{
		ManufacturerOrderCode: r.FormValue("ManufacturerOrderCode"),
		ManufacturerLogo:      "",
		ProductImage:          "",
	}
	record.Submodels.CarbonFootprint.ProductCarbonFootprint = pcfEntriesFromForm(r)
	record.Submodels.CarbonFootprint.TransportCarbonFootprint = tcfEntriesFromForm(r)
	return record
}

func pcfEntriesFromForm(r *http.Request) []models.PCFEntry {
	n := len(r.Form["PCFCO2eq"])
	entries := make([]models.PCFEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.PCFEntry{
			ReferableAssetID:                   formAt(r, "PCFReferableAssetID", i),
			PCFCalculationMethod:               formAt(r, "PCFCalculationMethod", i),
			PCFCO2eq:                           formAt(r, "PCFCO2eq", i),
			PCFQuantityOfMeasureForCalculation: formAt(r, "PCFQuantityOfMeasureForCalculation", i),
			PCFReferenceValueForCalculation:    formAt(r, "PCFReferenceValueForCalculation", i),
			PCFLiveCyclePhase:                  formAt(r, "PCFLiveCyclePhase", i),
			PCFDescription:                     formAt(r, "PCFDescription", i),
			ExplanatoryStatement:               formAt(r, "ExplanatoryStatement", i),
			PCFHandoverStreet:                  formAt(r, "PCFHandoverStreet", i),
			PCFHandoverNumber:                  formAt(r, "PCFHandoverNumber", i),
			PCFHandoverCity:                    formAt(r, "PCFHandoverCity", i),
			PCFHandoverZIP:                     formAt(r, "PCFHandoverZIP", i),
			PCFHandoverCountry:                 formAt(r, "PCFHandoverCountry", i),
			PCFHandoverLatitude:                formAt(r, "PCFHandoverLatitude", i),
			PCFHandoverLongitude:               formAt(r, "PCFHandoverLongitude", i),
		})
	}
	return entries
}

func tcfEntriesFromForm(r *http.Request) []models.TCFEntry {
	n := len(r.Form["TCFCO2eq"])
	entries := make([]models.TCFEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.TCFEntry{
			TCFCalculationMethod: formAt(r, "TCFCalculationMethod", i),
			TCFCO2eq:             formAt(r, "TCFCO2eq", i),
			TCFQuantityOfMeasureForCalculation: formAt(r, "TCFQuantityOfMeasureForCalculation", i),
			TCFReferenceValueForCalculation:    formAt(r, "TCFReferenceValueForCalculation", i),
			TCFProcessesForGreenhouseGasEmissionInATransportService: formAt(r, "TCFProcesses", i),
			TCFTakeoverStreet:    formAt(r, "TCFTakeoverStreet", i),
			TCFTakeoverNumber:    formAt(r, "TCFTakeoverNumber", i),
			TCFTakeoverCity:      formAt(r, "TCFTakeoverCity", i),
			TCFTakeoverZIP:       formAt(r, "TCFTakeoverZIP", i),
			TCFTakeoverCountry:   formAt(r, "TCFTakeoverCountry", i),
			TCFTakeoverLatitude:  formAt(r, "TCFTakeoverLatitude", i),
			TCFTakeoverLongitude: formAt(r, "TCFTakeoverLongitude", i),
			TCFHandoverStreet:    formAt(r, "TCFHandoverStreet", i),
			TCFHandoverNumber:    formAt(r, "TCFHandoverNumber", i),
			TCFHandoverCity:      formAt(r, "TCFHandoverCity", i),
			TCFHandoverZIP:       formAt(r, "TCFHandoverZIP", i),
			TCFHandoverCountry:   formAt(r, "TCFHandoverCountry", i),
			TCFHandoverLatitude:  formAt(r, "TCFHandoverLatitude", i),
			TCFHandoverLongitude: formAt(r, "TCFHandoverLongitude", i),
		})
	}
	return entries
}

func formAt(r *http.Request, field string, i int) string {
	values := r.Form[field]
	if i >= len(values) {
		return ""
	}
	return values[i]
}
