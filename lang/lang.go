// Package lang provides the localized messages shown to players.
package lang

import (
	"fmt"
	"github.com/lefinal/flier/config"
	"github.com/lefinal/flier/errors"
	"github.com/lefinal/flier/palette"
	"github.com/lefinal/flier/world"
	"strconv"
	"strings"
)

// DefaultLanguage is used when no default is configured.
const DefaultLanguage = "en"

// defaultKey is the catalog section key that selects the fallback language.
const defaultKey = "default"

// Catalog holds messages per language. Texts may contain alternate color codes
// with & and positional placeholders {1}, {2}, ...
type Catalog struct {
	fallback string
	// messages maps language and message key to the text.
	messages map[string]map[string]string
}

// NewCatalog creates an empty Catalog with the given fallback language.
func NewCatalog(fallback string) *Catalog {
	return &Catalog{
		fallback: fallback,
		messages: make(map[string]map[string]string),
	}
}

// FromSection loads a Catalog from a section mapping languages to their
// messages. The optional key default selects the fallback language.
func FromSection(section config.Section) (*Catalog, error) {
	fallback, err := section.StringOr(defaultKey, DefaultLanguage)
	if err != nil {
		return nil, errors.Wrap(err, "load default language", nil)
	}
	c := NewCatalog(fallback)
	for _, language := range section.Keys() {
		if language == defaultKey {
			continue
		}
		var messages map[string]string
		s, ok := section.Section(language)
		if !ok {
			return nil, errors.NewLoadingError(errors.KindInvalidValue,
				fmt.Sprintf("language '%s' must be a mapping", language), nil)
		}
		err = s.Decode(&messages)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("load language '%s'", language), nil)
		}
		for key, text := range messages {
			c.Add(language, key, text)
		}
	}
	return c, nil
}

// Add adds or replaces a message.
func (c *Catalog) Add(language string, key string, text string) {
	language = normalize(language)
	m, ok := c.messages[language]
	if !ok {
		m = make(map[string]string)
		c.messages[language] = m
	}
	m[key] = palette.TranslateAlternateCodes('&', text)
}

// Message returns the message with the given key in the language of the
// player.
func (c *Catalog) Message(p world.Player, key string, args ...string) string {
	return c.Translate(p.Locale(), key, args...)
}

// Translate returns the message with the given key in the given language. The
// language tag is tried as is, then without its region and finally the
// fallback language is used. If the key is unknown, the key itself is
// returned.
func (c *Catalog) Translate(language string, key string, args ...string) string {
	text, ok := c.lookup(language, key)
	if !ok {
		return key
	}
	for i, arg := range args {
		text = strings.ReplaceAll(text, "{"+strconv.Itoa(i+1)+"}", arg)
	}
	return text
}

func (c *Catalog) lookup(language string, key string) (string, bool) {
	language = normalize(language)
	candidates := []string{language}
	if i := strings.IndexByte(language, '_'); i > 0 {
		candidates = append(candidates, language[:i])
	}
	candidates = append(candidates, normalize(c.fallback))
	for _, candidate := range candidates {
		if text, ok := c.messages[candidate][key]; ok {
			return text, true
		}
	}
	return "", false
}

func normalize(language string) string {
	return strings.ReplaceAll(strings.ToLower(language), "-", "_")
}
