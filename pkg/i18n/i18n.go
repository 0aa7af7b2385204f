// Package i18n translates the shell's chrome. Menu titles come from the
// registry and are shown as they are.
package i18n

import (
	"embed"
	"fmt"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Language is a supported UI language code.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

var supported = []language.Tag{language.English, language.Chinese}

// Parse matches any BCP 47 tag ("zh-CN", "en_US") to a supported language,
// defaulting to English.
func Parse(s string) Language {
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	matcher := language.NewMatcher(supported)
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	base, _ := supported[idx].Base()
	return Language(base.String())
}

// Toggle flips between the two supported languages.
func (l Language) Toggle() Language {
	if l == Chinese {
		return English
	}
	return Chinese
}

type Translator struct {
	localizers map[Language]*i18n.Localizer
}

// New loads the embedded message files.
func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	t := &Translator{localizers: make(map[Language]*i18n.Localizer)}
	for _, lang := range []Language{English, Chinese} {
		path := fmt.Sprintf("locales/%s.yaml", lang)
		data, err := localeFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		t.localizers[lang] = i18n.NewLocalizer(bundle, string(lang))
	}
	return t, nil
}

// T translates id. Missing ids render as the id itself so a gap is visible
// but never fatal.
func (t *Translator) T(lang Language, id string, data ...map[string]interface{}) string {
	if t == nil {
		return id
	}
	loc, ok := t.localizers[lang]
	if !ok {
		loc = t.localizers[English]
	}
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	s, err := loc.Localize(cfg)
	if err != nil {
		return id
	}
	return s
}

// For binds a language so renderers can call tr("id").
func (t *Translator) For(lang Language) func(id string, data ...map[string]interface{}) string {
	return func(id string, data ...map[string]interface{}) string {
		return t.T(lang, id, data...)
	}
}
