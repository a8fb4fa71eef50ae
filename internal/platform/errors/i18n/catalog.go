// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	// catalogs holds registered catalogs by canonical locale tag.
	catalogs = map[string]*Catalog{}
)

// GetCatalog returns the catalog best matching the given locale.
// Falls back to en-US when the locale is unknown or has no catalog.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	matched := matchLocale(requested)
	if c, ok := lookupCatalog(matched); ok {
		return c
	}

	c, _ := lookupCatalog(BaseLocale)
	return c
}

// matchLocale resolves a requested locale against registered catalogs using
// language tag matching, so "en" and "en-GB" both resolve to "en-US".
func matchLocale(requested string) string {
	catalogsMu.RLock()
	available := make([]language.Tag, 0, len(catalogs))
	locales := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		available = append(available, tag)
		locales = append(locales, locale)
	}
	catalogsMu.RUnlock()

	if len(available) == 0 {
		return BaseLocale
	}

	matcher := language.NewMatcher(available)
	desired, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, index, _ := matcher.Match(desired)
	return locales[index]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	if c == nil {
		return BaseLocale
	}
	return c.locale
}

// Format renders the message template for the code with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	if c == nil {
		return code
	}
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a catalog for the given locale. Callers should
// only use this during init or single-threaded test setup.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}
