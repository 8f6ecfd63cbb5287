// Package catalog loads the YAML message catalogs shipped with the binary
// and registers them with golang.org/x/text/message.
//
// Catalog files live at locales/<locale>/<namespace>.yaml. A key belongs to
// exactly one namespace per locale, and keys prefixed with "core." must live
// in the core namespace.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog is measured against.
const BaseLocale = "en-US"

const corePrefix = "core."

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// localeCatalog holds one locale's messages, flat and by namespace.
type localeCatalog struct {
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle is a set of locale catalogs.
type Bundle struct {
	locales map[string]*localeCatalog
}

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS parses every locales/*/*.yaml file in fsys. The base locale
// must be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]*localeCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		file, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

func parseCatalogFile(data []byte) (catalogFile, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return catalogFile{}, fmt.Errorf("decode yaml: %w", err)
	}
	file.Locale = strings.TrimSpace(file.Locale)
	file.Namespace = strings.TrimSpace(file.Namespace)
	switch {
	case file.Locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case file.Namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(file.Messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return file, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.Locale != dirLocale {
		return fmt.Errorf("locale %q must match path locale %q", file.Locale, dirLocale)
	}
	if file.Namespace != fileNamespace {
		return fmt.Errorf("namespace %q must match filename namespace %q", file.Namespace, fileNamespace)
	}

	lc := b.locales[file.Locale]
	if lc == nil {
		lc = &localeCatalog{namespaces: map[string]map[string]string{}, messages: map[string]string{}}
		b.locales[file.Locale] = lc
	}
	if _, exists := lc.namespaces[file.Namespace]; exists {
		return fmt.Errorf("namespace %q already defined for locale %q", file.Namespace, file.Locale)
	}

	ns := make(map[string]string, len(file.Messages))
	for rawKey, value := range file.Messages {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			return fmt.Errorf("message key cannot be blank")
		}
		if strings.HasPrefix(key, corePrefix) && file.Namespace != "core" {
			return fmt.Errorf("key %q must be defined in core namespace", key)
		}
		if _, exists := lc.messages[key]; exists {
			return fmt.Errorf("duplicate key %q in locale %q", key, file.Locale)
		}
		lc.messages[key] = value
		ns[key] = value
	}
	lc.namespaces[file.Namespace] = ns
	return nil
}

// Register installs every message with x/text/message. Region tags also
// register under their base language so "es" resolves to "es-ES".
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag.String() != tag.String() {
				tags = append(tags, baseTag)
			}
		}
		messages := b.locales[locale].messages
		for _, key := range sortedKeys(messages) {
			for _, t := range tags {
				if err := message.SetString(t, key, messages[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", t, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether the bundle defines locale.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the defined locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// NamespaceMessages returns a copy of one namespace for locale.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	lc := b.lookup(locale)
	if lc == nil {
		return map[string]string{}
	}
	return copyMap(lc.namespaces[strings.TrimSpace(namespace)])
}

// Message returns one message, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if lc := b.lookup(candidate); lc != nil {
			if value, ok := lc.messages[key]; ok {
				return value, true
			}
		}
	}
	return "", false
}

func (b *Bundle) lookup(locale string) *localeCatalog {
	if b == nil {
		return nil
	}
	return b.locales[strings.TrimSpace(locale)]
}

// LocaleStatus compares one locale with the base locale.
type LocaleStatus struct {
	Locale      string
	BaseKeys    int
	Translated  int
	MissingKeys []string
	ExtraKeys   []string
}

// Completion is the translated share of base keys, from 0 to 1.
func (s LocaleStatus) Completion() float64 {
	if s.BaseKeys == 0 {
		return 1
	}
	return float64(s.Translated) / float64(s.BaseKeys)
}

// Status reports translation coverage for every non-base locale.
func (b *Bundle) Status() []LocaleStatus {
	base := b.lookup(BaseLocale)
	if base == nil {
		return nil
	}
	var out []LocaleStatus
	for _, locale := range b.Locales() {
		if locale == BaseLocale {
			continue
		}
		messages := b.locales[locale].messages
		status := LocaleStatus{Locale: locale, BaseKeys: len(base.messages)}
		for _, key := range sortedKeys(base.messages) {
			if _, ok := messages[key]; ok {
				status.Translated++
				continue
			}
			status.MissingKeys = append(status.MissingKeys, key)
		}
		for _, key := range sortedKeys(messages) {
			if _, ok := base.messages[key]; !ok {
				status.ExtraKeys = append(status.ExtraKeys, key)
			}
		}
		out = append(out, status)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func copyMap(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadAndRegisterEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
