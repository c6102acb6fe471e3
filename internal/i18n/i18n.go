package i18n

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/TemirB/order-pipeline/internal/domain"
)

// Translator resolves catalog keys to text for the locale a client asked for.
type Translator struct {
	cat     *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// New builds the English and Russian catalog. defaultLocale is used when the
// client states no preference or nothing it asks for is supported.
func New(defaultLocale string) *Translator {
	def := language.English
	if t, err := language.Parse(defaultLocale); err == nil {
		if base, _ := t.Base(); base.String() == "ru" {
			def = language.Russian
		}
	}

	cat := catalog.NewBuilder(catalog.Fallback(def))
	if err := register(cat, texts); err != nil {
		panic(err)
	}

	tags := []language.Tag{def}
	if def == language.English {
		tags = append(tags, language.Russian)
	} else {
		tags = append(tags, language.English)
	}
	return &Translator{
		cat:     cat,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

func register(cat *catalog.Builder, entries map[string]text) error {
	for key, tx := range entries {
		if err := cat.SetString(language.English, key, tx.en); err != nil {
			return fmt.Errorf("i18n: en %s: %w", key, err)
		}
		if err := cat.SetString(language.Russian, key, tx.ru); err != nil {
			return fmt.Errorf("i18n: ru %s: %w", key, err)
		}
	}
	return nil
}

// Tag picks the supported locale for an Accept-Language header value.
func (t *Translator) Tag(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.tags[0]
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No {
		return t.tags[0]
	}
	return t.tags[idx]
}

func (t *Translator) Printer(acceptLanguage string) *message.Printer {
	return message.NewPrinter(t.Tag(acceptLanguage), message.Catalog(t.cat))
}

// Text renders one message. Unknown keys come back as the key itself.
func (t *Translator) Text(p *message.Printer, m domain.Message) string {
	if _, ok := texts[m.Key]; !ok {
		return m.Key
	}
	return p.Sprintf(m.Key, plainArgs(m.Args)...)
}

// plainArgs renders integers up front so ids are not grouped by locale rules.
func plainArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case int64:
			out[i] = strconv.FormatInt(v, 10)
		case int:
			out[i] = strconv.Itoa(v)
		default:
			out[i] = a
		}
	}
	return out
}

// Join renders msgs separated by ", ".
func (t *Translator) Join(p *message.Printer, msgs []domain.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, t.Text(p, m))
	}
	return strings.Join(parts, ", ")
}
