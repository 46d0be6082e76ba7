// Package i18n renders fasting analyses in human languages. It is pure
// formatting: nothing here influences status computation.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/IRedDragonICY/shaum/rules"
)

//go:embed locales/*.json
var localeFS embed.FS

// localeFiles are the bundled translations, English first so it becomes
// the fallback language.
var localeFiles = []string{"locales/en.json", "locales/id.json"}

// Localizer renders the pieces of a FastingAnalysis in one language.
type Localizer interface {
	// MonthName returns the localized Hijri month name (1-12).
	MonthName(month int) string

	// StatusName returns the localized fasting status name.
	StatusName(status rules.FastingStatus) string

	// TypeName returns the localized fasting type name.
	TypeName(t rules.FastingType) string

	// Describe renders a one-line description of an analysis.
	Describe(analysis *rules.FastingAnalysis) string
}

// Languages lists the bundled language tags.
var Languages = []string{"en", "id"}

// bundleLocalizer implements Localizer over a go-i18n bundle.
type bundleLocalizer struct {
	loc *goi18n.Localizer
}

// New builds a Localizer for the given BCP 47 language tag. Unknown
// messages and unknown languages fall back to English.
func New(lang string) (Localizer, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, path := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("failed to load locale %s: %w", path, err)
		}
	}

	return &bundleLocalizer{loc: goi18n.NewLocalizer(bundle, lang, "en")}, nil
}

func (b *bundleLocalizer) message(id, fallback string) string {
	msg, err := b.loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return fallback
	}
	return msg
}

// MonthName implements Localizer.
func (b *bundleLocalizer) MonthName(month int) string {
	if month < 1 || month > 12 {
		return "Unknown"
	}
	return b.message("month."+strconv.Itoa(month), "Unknown")
}

// StatusName implements Localizer.
func (b *bundleLocalizer) StatusName(status rules.FastingStatus) string {
	return b.message("status."+status.String(), status.String())
}

// TypeName implements Localizer.
func (b *bundleLocalizer) TypeName(t rules.FastingType) string {
	return b.message("type."+string(t), string(t))
}

// Describe implements Localizer.
func (b *bundleLocalizer) Describe(analysis *rules.FastingAnalysis) string {
	msg, err := b.loc.Localize(&goi18n.LocalizeConfig{
		MessageID: "describe",
		TemplateData: map[string]interface{}{
			"Day":    analysis.Hijri.Day,
			"Month":  b.MonthName(analysis.Hijri.Month),
			"Year":   analysis.Hijri.Year,
			"Status": b.StatusName(analysis.Status),
		},
	})
	if err != nil {
		return analysis.Explain()
	}
	return msg
}
