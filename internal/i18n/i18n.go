package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/tuanvumaihuynh/shopster-web/internal/model"
)

var supported = []language.Tag{language.Russian, language.English}

var matcher = language.NewMatcher(supported)

// Translator renders storefront copy for a single locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
	months  [12]string
}

// New builds a Translator for locale. Unsupported locales fall back to Russian,
// the storefront's primary language.
func New(locale string) (*Translator, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	_, idx, conf := matcher.Match(requested)
	if conf == language.No {
		idx = 0
	}
	tag := supported[idx]

	cat, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	t := &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		months:  monthsEN,
	}
	if tag == language.Russian {
		t.months = monthsRU
	}
	return t, nil
}

// MustNew is New for wiring code where a bad locale is a programming error.
func MustNew(locale string) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Russian))
	for tag, msgs := range map[language.Tag]map[string]string{
		language.Russian: messagesRU,
		language.English: messagesEN,
	} {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("set message %q for %s: %w", key, tag, err)
			}
		}
	}
	return b, nil
}

// Tag is the matched language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Lang is the value for the html lang attribute.
func (t *Translator) Lang() string {
	base, _ := t.tag.Base()
	return base.String()
}

// T returns the message stored under key, formatted with args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// ValidationMessage localizes a validator field error.
func (t *Translator) ValidationMessage(fe govalidator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		switch {
		case fe.Field() == "email":
			return t.T("validation.email_required")
		case fe.Field() == "password":
			return t.T("validation.password_min", strconv.Itoa(model.MinPasswordLength))
		}
		return t.T("validation.required")
	case "email":
		return t.T("validation.email")
	case "eqfield":
		return t.T("validation.passwords_mismatch")
	case "min":
		if strings.HasPrefix(fe.Field(), "password") {
			return t.T("validation.password_min", fe.Param())
		}
		return t.T("validation.min", fe.Param())
	case "max":
		return t.T("validation.max", fe.Param())
	case "gte", "lte":
		return t.T("validation.rating")
	default:
		return t.T("validation.invalid")
	}
}

// ModerationLabel is the badge text for a review status. Unknown statuses are
// shown as-is.
func (t *Translator) ModerationLabel(s model.ModerationStatus) string {
	switch s {
	case model.ModerationApproved:
		return t.T("moderation.approved")
	case model.ModerationPending:
		return t.T("moderation.pending")
	case model.ModerationRejected:
		return t.T("moderation.rejected")
	default:
		return string(s)
	}
}

// Date formats d as a short calendar date ("5 мар. 2024 г." or "Mar 5, 2024").
func (t *Translator) Date(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	month := t.months[d.Month()-1]
	if t.tag == language.Russian {
		return fmt.Sprintf("%d %s %d г.", d.Day(), month, d.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, d.Day(), d.Year())
}

var monthsRU = [12]string{
	"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
	"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
}

var monthsEN = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}
