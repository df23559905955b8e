package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale must be present in every bundle; it is the fallback language.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the translated messages of every known locale.
type Bundle struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS reads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	base := language.MustParse(BaseLocale)
	b := &Bundle{builder: catalog.NewBuilder(catalog.Fallback(base))}
	seen := map[string]bool{}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		if seen[locale] {
			return nil, fmt.Errorf("catalog %s: locale %q already defined", path, locale)
		}
		seen[locale] = true

		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale tag %q: %w", path, locale, err)
		}
		for key, value := range file.Messages {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("catalog %s: message key cannot be blank", path)
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("catalog %s: set %q: %w", path, key, err)
			}
		}
		b.tags = append(b.tags, tag)
	}

	if !seen[BaseLocale] {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The matcher falls back to its first tag.
	sort.SliceStable(b.tags, func(i, j int) bool { return b.tags[i] == base })
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Locales returns the locales of the bundle, base locale first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

// Match picks the best supported locale for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.tags[0]
	}
	_, index, _ := b.matcher.Match(tags...)
	return b.tags[index]
}

// Printer returns a printer for the best match of acceptLanguage.
func (b *Bundle) Printer(acceptLanguage string) *message.Printer {
	return message.NewPrinter(b.Match(acceptLanguage), message.Catalog(b.builder))
}
