package utils

import (
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "en.yaml"))
	bundle.MustLoadMessageFile(path.Join(viper.GetString("i18n.dir"), "zh_tw.yaml"))
}

// NewLocalizer returns a localizer for the given language tag. Message
// lookups fall back to their default text when the bundle has not been
// loaded, so callers always get a usable string.
func NewLocalizer(lang string) *i18n.Localizer {
	if bundle == nil {
		return i18n.NewLocalizer(i18n.NewBundle(language.English), lang)
	}
	return i18n.NewLocalizer(bundle, lang)
}
