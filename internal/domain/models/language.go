package models

// Language is a translation target offered to clients
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var languageNames = map[string]string{
	"en": "English",
	"es": "Español",
	"fr": "Français",
	"de": "Deutsch",
	"ru": "Русский",
}

// LanguageName returns the native name of code, or code itself when unknown
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// AllModels lists every persisted model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Mineral{},
		&Favorite{},
	}
}
