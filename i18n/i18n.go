// Package i18n provides the UI translations. English is the default; German
// is the second language of most asset senders.
package i18n

import "strings"

var translations = map[string]map[string]string{
	"en": {
		"required":          "Required",
		"already_exists":    "Already exists",
		"invalid_number":    "Must be a number",
		"nav.assets":        "Assets",
		"nav.admin":         "API Keys",
		"nav.logout":        "Logout",
		"assets.title":      "Asset Administration Shells",
		"assets.search":     "Search by asset ID",
		"assets.create":     "Create AAS",
		"assets.import":     "Import",
		"assets.export":     "Export",
		"assets.no_access":  "no access",
		"co2.total":         "Total CO2 equivalents",
		"co2.per_item":      "CO2e per item",
		"co2.production":    "Production",
		"co2.usage":         "Usage",
		"co2.afterlife":     "After-life",
		"co2.secondlife":    "Second-life",
		"form.save":         "Save",
		"form.cancel":       "Cancel",
		"form.add_pcf":      "Add product footprint",
		"form.add_tcf":      "Add transport footprint",
		"form.remove":       "Remove",
		"login.title":       "Login",
		"login.username":    "Username",
		"login.password":    "Password",
		"login.submit":      "Sign in",
		"login.failed":      "Login failed",
		"admin.title":       "API key management",
		"admin.owner":       "Owner",
		"admin.create":      "Create key",
		"admin.rename":      "Rename",
		"admin.regenerate":  "Regenerate",
		"admin.delete":      "Delete",
		"admin.new_key":     "New key (shown only once)",
	},
	"de": {
		"required":          "Pflichtfeld",
		"already_exists":    "Existiert bereits",
		"invalid_number":    "Muss eine Zahl sein",
		"nav.assets":        "Assets",
		"nav.admin":         "API-Schlüssel",
		"nav.logout":        "Abmelden",
		"assets.title":      "Verwaltungsschalen",
		"assets.search":     "Nach Asset-ID suchen",
		"assets.create":     "AAS anlegen",
		"assets.import":     "Importieren",
		"assets.export":     "Exportieren",
		"assets.no_access":  "kein Zugriff",
		"co2.total":         "CO2-Äquivalente gesamt",
		"co2.per_item":      "CO2e pro Stück",
		"co2.production":    "Produktion",
		"co2.usage":         "Nutzung",
		"co2.afterlife":     "Entsorgung",
		"co2.secondlife":    "Zweitnutzung",
		"form.save":         "Speichern",
		"form.cancel":       "Abbrechen",
		"form.add_pcf":      "Produkt-Fußabdruck hinzufügen",
		"form.add_tcf":      "Transport-Fußabdruck hinzufügen",
		"form.remove":       "Entfernen",
		"login.title":       "Anmeldung",
		"login.username":    "Benutzername",
		"login.password":    "Passwort",
		"login.submit":      "Anmelden",
		"login.failed":      "Anmeldung fehlgeschlagen",
		"admin.title":       "API-Schlüssel-Verwaltung",
		"admin.owner":       "Inhaber",
		"admin.create":      "Schlüssel anlegen",
		"admin.rename":      "Umbenennen",
		"admin.regenerate":  "Neu erzeugen",
		"admin.delete":      "Löschen",
		"admin.new_key":     "Neuer Schlüssel (wird nur einmal angezeigt)",
	},
}

// T translates a code for a language. Unknown languages fall back to English;
// unknown codes fall back to the code itself so missing entries are visible.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations["en"][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		base := strings.SplitN(tag, "-", 2)[0]
		if _, ok := translations[base]; ok {
			return base
		}
	}
	return "en"
}
