// Package locale resolves UI strings from the embedded message catalogs.
package locale

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/rook-computer/sysdeck/internal/assets"
)

var DefaultLanguage = language.English

// Catalog looks strings up by message id. Unknown ids come back unchanged.
type Catalog struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New loads every embedded catalog plus the optional messageFile and picks
// lang, falling back to English for missing messages.
func New(lang, messageFile string) (*Catalog, error) {
	tag := DefaultLanguage
	if strings.TrimSpace(lang) != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", lang, err)
		}
		tag = parsed
	}

	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if err := loadEmbedded(bundle, assets.Locales); err != nil {
		return nil, err
	}
	if messageFile != "" {
		if _, err := bundle.LoadMessageFile(messageFile); err != nil {
			return nil, fmt.Errorf("load message file: %w", err)
		}
	}

	return &Catalog{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), DefaultLanguage.String()),
	}, nil
}

func loadEmbedded(bundle *i18n.Bundle, files fs.FS) error {
	names, err := fs.Glob(files, "*.toml")
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(name)); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return nil
}

func (c *Catalog) Language() language.Tag { return c.tag }

func (c *Catalog) T(id string) string {
	if c == nil || c.localizer == nil {
		return id
	}
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return id
	}
	return msg
}
