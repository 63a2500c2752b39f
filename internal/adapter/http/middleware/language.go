package middleware

import (
	"taskhub/pkg/translator"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = language.NewMatcher([]language.Tag{language.English, language.French})

// LanguageMiddleware is a Gin middleware that sets the language based on the Accept-Language header.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func matchLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	tag, _, _ := supported.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
