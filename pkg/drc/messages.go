package drc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message catalog keys. The English text doubles as the key.
const (
	MsgCourtyardsOverlap  = "Courtyards overlap"
	MsgMissingCourtyard   = "Footprint has no courtyard defined"
	MsgMalformedCourtyard = "Footprint has malformed courtyard"

	QualifierNotClosed  = "not a closed shape"
	QualifierDegenerate = "outline encloses no area"

	StageCourtyardDefinitions = "Testing component courtyard definitions"
	StageCourtyardOverlap     = "Testing component courtyard overlap"
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgCourtyardsOverlap:      "Sperrflächen überlappen",
		MsgMissingCourtyard:       "Footprint hat keine Sperrfläche definiert",
		MsgMalformedCourtyard:     "Footprint hat eine fehlerhafte Sperrfläche",
		QualifierNotClosed:        "keine geschlossene Form",
		QualifierDegenerate:       "Kontur ohne Fläche",
		StageCourtyardDefinitions: "Prüfe Sperrflächen-Definitionen der Bauteile",
		StageCourtyardOverlap:     "Prüfe Überlappung der Bauteil-Sperrflächen",
	},
}

var messageCatalog = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{
		MsgCourtyardsOverlap, MsgMissingCourtyard, MsgMalformedCourtyard,
		QualifierNotClosed, QualifierDegenerate,
		StageCourtyardDefinitions, StageCourtyardOverlap,
	} {
		_ = b.SetString(language.English, key, key)
	}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Localizer renders catalog messages in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a localizer for the best supported match of lang
// (a BCP 47 tag such as "de" or "en-US"). Unknown languages fall back to
// English.
func NewLocalizer(lang string) *Localizer {
	supported := messageCatalog.Languages()
	tag := language.English
	if lang != "" {
		if requested, err := language.Parse(lang); err == nil {
			_, idx, conf := language.NewMatcher(supported).Match(requested)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messageCatalog)),
	}
}

// Language returns the tag messages are rendered in.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T translates a catalog key.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}
