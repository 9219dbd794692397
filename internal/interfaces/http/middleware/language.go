package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/i18n"
)

// Language picks the response language from Accept-Language. A lang query
// parameter overrides the header.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := c.GetHeader(constants.HeaderAcceptLanguage)
		if q := c.Query("lang"); q != "" {
			pref = q
		}
		c.Set(constants.ContextKeyLanguage, i18n.Match(pref))
		c.Next()
	}
}

// LanguageFrom returns the tag stored by Language, or i18n.Default.
func LanguageFrom(c *gin.Context) language.Tag {
	if v, ok := c.Get(constants.ContextKeyLanguage); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return i18n.Default
}
