package locale

import "testing"

func TestMappingContents(t *testing.T) {
	m := Mapping()
	en, ok := m["en"]
	if !ok {
		t.Fatal("mapping missing en")
	}
	if en.API != "en_GB" || en.CMS != "en-GB" || en.Label != "English" {
		t.Errorf("en entry: got %+v", en)
	}
	if _, ok := m["fr_BE"]; !ok {
		t.Error("mapping missing fr_BE")
	}
}

func TestMappingReturnsCopy(t *testing.T) {
	m := Mapping()
	m["en"] = Info{API: "mutated"}
	if Mapping()["en"].API != "en_GB" {
		t.Error("Mapping() result is not a copy")
	}
}

func TestTagConversions(t *testing.T) {
	tests := []struct {
		api string
		cms string
	}{
		{"en_GB", "en-GB"},
		{"fr_BE", "fr-BE"},
		{"pt_BR", "pt-BR"},
	}
	for _, tt := range tests {
		if got := APIToCMS(tt.api); got != tt.cms {
			t.Errorf("APIToCMS(%q) = %q, want %q", tt.api, got, tt.cms)
		}
		if got := CMSToAPI(tt.cms); got != tt.api {
			t.Errorf("CMSToAPI(%q) = %q, want %q", tt.cms, got, tt.api)
		}
	}
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en_GB", "en"},
		{"en-GB", "en"},
		{"FR_fr", "fr"},
		{"de", "de"},
	}
	for _, tt := range tests {
		if got := LanguageCode(tt.tag); got != tt.want {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
