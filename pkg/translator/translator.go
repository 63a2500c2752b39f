package translator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // a warning is logged for any of these without a message file
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator loads every <lang>.toml file of the translation folder into
// a fresh bundle. English is the fallback language.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	loaded := make(map[string]bool)
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		file, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name()))
		if err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
			continue
		}
		base, _ := file.Tag.Base()
		loaded[base.String()] = true
	}

	for _, lang := range cfg.SupportedLanguages {
		if !loaded[strings.ToLower(lang)] {
			zap.L().Warn("no translation file for supported language", zap.String("lang", lang))
		}
	}
}
