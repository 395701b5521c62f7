// Package locale holds the static registry of supported locales and helpers
// for converting between the API ("en_GB") and CMS ("en-GB") tag styles.
package locale

import "strings"

// Info describes one supported locale.
type Info struct {
	API   string `json:"api"`
	CMS   string `json:"cms"`
	Label string `json:"label"`
}

// registry maps short keys to locale metadata. Update here when adding locales.
var registry = map[string]Info{
	"en":    {API: "en_GB", CMS: "en-GB", Label: "English"},
	"en_IE": {API: "en_IE", CMS: "en-IE", Label: "English (Ireland)"},
	"es":    {API: "es_ES", CMS: "es-ES", Label: "Español"},
	"it":    {API: "it_IT", CMS: "it-IT", Label: "Italiano"},
	"fr":    {API: "fr_FR", CMS: "fr-FR", Label: "Français"},
	"de":    {API: "de_DE", CMS: "de-DE", Label: "Deutsch"},
	"fr_BE": {API: "fr_BE", CMS: "fr-BE", Label: "Français (Belgique)"},
	"nl_BE": {API: "nl_BE", CMS: "nl-BE", Label: "Nederlands (België)"},
	"pt":    {API: "pt_PT", CMS: "pt-PT", Label: "Português"},
	"pt_BR": {API: "pt_BR", CMS: "pt-BR", Label: "Português (Brasil)"},
	"nl":    {API: "nl_NL", CMS: "nl-NL", Label: "Nederlands"},
	"pl":    {API: "pl_PL", CMS: "pl-PL", Label: "Polski"},
	"sv":    {API: "sv_SE", CMS: "sv-SE", Label: "Svenska"},
	"da":    {API: "da_DK", CMS: "da-DK", Label: "Dansk"},
	"fi":    {API: "fi_FI", CMS: "fi-FI", Label: "Suomi"},
	"cs":    {API: "cs_CZ", CMS: "cs-CZ", Label: "Čeština"},
	"sk":    {API: "sk_SK", CMS: "sk-SK", Label: "Slovenčina"},
	"sl":    {API: "sl_SI", CMS: "sl-SI", Label: "Slovenščina"},
	"hr":    {API: "hr_HR", CMS: "hr-HR", Label: "Hrvatski"},
	"ro":    {API: "ro_RO", CMS: "ro-RO", Label: "Română"},
	"bg":    {API: "bg_BG", CMS: "bg-BG", Label: "Български"},
	"hu":    {API: "hu_HU", CMS: "hu-HU", Label: "Magyar"},
	"el":    {API: "el_GR", CMS: "el-GR", Label: "Ελληνικά"},
	"et":    {API: "et_EE", CMS: "et-EE", Label: "Eesti"},
	"lv":    {API: "lv_LV", CMS: "lv-LV", Label: "Latviešu"},
	"lt":    {API: "lt_LT", CMS: "lt-LT", Label: "Lietuvių"},
	"ga":    {API: "ga_IE", CMS: "ga-IE", Label: "Gaeilge"},
	"mt":    {API: "mt_MT", CMS: "mt-MT", Label: "Malti"},
	"tr":    {API: "tr_TR", CMS: "tr-TR", Label: "Türkçe"},
	"no":    {API: "nb_NO", CMS: "nb-NO", Label: "Norsk"},
}

// Mapping returns a copy of the locale registry.
func Mapping() map[string]Info {
	out := make(map[string]Info, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

// APIToCMS converts an API-style tag to CMS style, e.g. en_GB -> en-GB.
func APIToCMS(tag string) string {
	return strings.ReplaceAll(tag, "_", "-")
}

// CMSToAPI converts a CMS-style tag to API style, e.g. en-GB -> en_GB.
func CMSToAPI(tag string) string {
	return strings.ReplaceAll(tag, "-", "_")
}

// LanguageCode returns the base language code of a tag, e.g. en_GB -> en.
func LanguageCode(tag string) string {
	tag = strings.ToLower(tag)
	if i := strings.IndexAny(tag, "_-"); i >= 0 {
		return tag[:i]
	}
	return tag
}
