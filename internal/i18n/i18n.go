// Package i18n renders recommendation and tip codes into localized text.
//
// The insights engine only emits stable codes with string parameters; this package
// owns the wording. Messages live in an x/text catalog keyed by "<code>.title",
// "<code>.description" and "<code>.text", and parameters are passed positionally in the
// order listed by the message definition.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/castlemilk/finhealth/internal/model"
)

// Supported lists the locales with a complete catalog. The first entry is the fallback.
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

// Translator renders codes using a fixed catalog.
type Translator struct {
	cat    catalog.Catalog
	params map[string][]string
}

// New builds a Translator over the built-in message tables.
func New() (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	params := make(map[string][]string)
	for _, tbl := range []struct {
		tag  language.Tag
		msgs []entry
	}{
		{language.English, english},
		{language.Russian, russian},
	} {
		for _, e := range tbl.msgs {
			if err := b.SetString(tbl.tag, e.key, e.format); err != nil {
				return nil, err
			}
			params[e.key] = e.params
		}
	}
	return &Translator{cat: b, params: params}, nil
}

// MustNew is New for package-level initialization; the built-in tables always compile.
func MustNew() *Translator {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Match picks the closest supported locale for a BCP 47 string such as "ru-RU".
// Empty or unparseable input yields English.
func Match(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(language.Make(locale))
	return Supported[idx]
}

// Recommendation returns a copy of rec with Title and Description rendered for tag.
func (t *Translator) Recommendation(tag language.Tag, rec model.Recommendation) model.Recommendation {
	p := message.NewPrinter(tag, message.Catalog(t.cat))
	rec.Title = t.render(p, rec.Code+".title", rec.Params)
	rec.Description = t.render(p, rec.Code+".description", rec.Params)
	return rec
}

// Recommendations renders every item of recs.
func (t *Translator) Recommendations(tag language.Tag, recs []model.Recommendation) []model.Recommendation {
	out := make([]model.Recommendation, len(recs))
	for i, r := range recs {
		out[i] = t.Recommendation(tag, r)
	}
	return out
}

// Tip returns a copy of tip with Text rendered for tag.
func (t *Translator) Tip(tag language.Tag, tip model.Tip) model.Tip {
	p := message.NewPrinter(tag, message.Catalog(t.cat))
	tip.Text = t.render(p, tip.Code+".text", tip.Params)
	return tip
}

// Tips renders every item of tips.
func (t *Translator) Tips(tag language.Tag, tips []model.Tip) []model.Tip {
	out := make([]model.Tip, len(tips))
	for i, tip := range tips {
		out[i] = t.Tip(tag, tip)
	}
	return out
}

// Advice renders a retirement advisory code.
func (t *Translator) Advice(tag language.Tag, code string) string {
	p := message.NewPrinter(tag, message.Catalog(t.cat))
	return t.render(p, code+".text", nil)
}

func (t *Translator) render(p *message.Printer, key string, params map[string]string) string {
	names, ok := t.params[key]
	if !ok {
		// Unknown codes render as the bare code so clients still get something stable.
		return strings.SplitN(key, ".", 2)[0]
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = params[n]
	}
	return p.Sprintf(key, args...)
}
