// Package i18n holds the user-facing message catalog. Polish is the default
// language of the CRM; English is served when the client asks for it.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	Default   = language.Polish
	supported = []language.Tag{language.Polish, language.English}
	matcher   = language.NewMatcher(supported)
)

func init() {
	for key, msg := range polish {
		_ = message.SetString(language.Polish, key, msg)
	}
	for key, msg := range english {
		_ = message.SetString(language.English, key, msg)
	}
}

// Match picks the catalog language for an Accept-Language header value.
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return Default
	}
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	for _, s := range supported {
		if b, _ := s.Base(); b == base {
			return s
		}
	}
	return Default
}

// T translates key into lang. Unknown keys are returned unchanged.
func T(lang language.Tag, key string, args ...any) string {
	return message.NewPrinter(lang).Sprintf(key, args...)
}
