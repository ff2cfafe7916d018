package locale

import (
	"embed"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

var bundle *i18n.Bundle

func init() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.Glob(localeFS, "active.*.toml")
	if err != nil {
		panic(err)
	}
	for _, name := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			panic(err)
		}
	}
}

// T renders the message identified by messageID for the given language
// preference list (typically the Accept-Language header), falling back
// to English. Unknown IDs render as the ID itself.
func T(lang, messageID string, data map[string]any) string {
	localizer := i18n.NewLocalizer(bundle, lang)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		logrus.Debugf("missing translation for %q: %v", messageID, err)
		return messageID
	}
	return msg
}
