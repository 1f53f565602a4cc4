// Package i18n provides the translation service handed to UI components.
//
// Messages are keyed by an optional context and a msgid, the same pair
// gettext's pgettext uses. Translation files are YAML documents named after
// their language tag (pl.yaml, de-AT.yaml) holding a list of entries:
//
//	- context: Category list table header name
//	  msgid: Name
//	  msgstr: Nazwa
//
// A message with no translation renders as its msgid. Messages are returned
// verbatim; format verbs in them are left for the caller to fill in.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var builtinLocales embed.FS

// contextSeparator joins context and msgid into a catalog key, as gettext does.
const contextSeparator = "\x04"

// Translator looks up localized strings for one locale.
type Translator interface {
	// Gettext translates msgid.
	Gettext(msgid string) string
	// Pgettext translates msgid disambiguated by context.
	Pgettext(context, msgid string) string
	// Locale is the language this translator serves.
	Locale() language.Tag
}

// Entry is one message in a translation file.
type Entry struct {
	Context string `yaml:"context"`
	MsgID   string `yaml:"msgid"`
	MsgStr  string `yaml:"msgstr"`
}

// Catalog holds the translations for every loaded language.
// It is safe for concurrent use; Reload swaps the contents atomically.
type Catalog struct {
	fallback language.Tag
	state    atomic.Pointer[catalogState]
}

type catalogState struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
	byName  map[string]language.Tag
	keys    map[string]map[string]struct{} // by language tag string
}

// NewCatalog returns a catalog with the built-in translations loaded.
// fallback is served when no loaded language matches a request.
func NewCatalog(fallback language.Tag) (*Catalog, error) {
	c := &Catalog{fallback: fallback}
	if err := c.Reload(""); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rebuilds the catalog from the built-in translations plus every
// *.yaml file in dir. An empty dir loads only the built-in translations.
// Files in dir override built-in messages with the same key.
func (c *Catalog) Reload(dir string) error {
	st := &catalogState{
		builder: catalog.NewBuilder(catalog.Fallback(c.fallback)),
		keys:    make(map[string]map[string]struct{}),
		byName:  make(map[string]language.Tag),
	}

	if err := st.loadFS(builtinLocales, "locales"); err != nil {
		return fmt.Errorf("failed to load built-in translations: %w", err)
	}
	if dir != "" {
		if err := st.loadFS(os.DirFS(dir), "."); err != nil {
			return fmt.Errorf("failed to load translations from %s: %w", dir, err)
		}
	}

	st.tags = append(st.tags, c.fallback)
	for name, tag := range st.byName {
		if name != c.fallback.String() {
			st.tags = append(st.tags, tag)
		}
	}
	// Keep the fallback first so the matcher uses it for unknown languages.
	rest := st.tags[1:]
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].String() < rest[j].String()
	})
	st.matcher = language.NewMatcher(st.tags)

	c.state.Store(st)
	return nil
}

// Languages returns the languages the catalog can serve, fallback first.
func (c *Catalog) Languages() []language.Tag {
	st := c.state.Load()
	return append([]language.Tag(nil), st.tags...)
}

// ForAcceptLanguage picks the best translator for an Accept-Language header.
func (c *Catalog) ForAcceptLanguage(header string) Translator {
	st := c.state.Load()
	_, idx := language.MatchStrings(st.matcher, header)
	return c.translator(st, st.tags[idx])
}

// For returns the translator for a specific language.
func (c *Catalog) For(tag language.Tag) Translator {
	st := c.state.Load()
	_, idx, _ := st.matcher.Match(tag)
	return c.translator(st, st.tags[idx])
}

func (c *Catalog) translator(st *catalogState, tag language.Tag) Translator {
	return &printerTranslator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(st.builder)),
		keys:    st.keys[tag.String()],
	}
}

func (st *catalogState) loadFS(fsys fs.FS, dir string) error {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	for _, name := range matches {
		base := strings.TrimSuffix(path.Base(name), ".yaml")
		tag, err := language.Parse(base)
		if err != nil {
			return fmt.Errorf("invalid language tag in file name %s: %w", name, err)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		var entries []Entry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}

		if err := st.add(tag, entries); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

func (st *catalogState) add(tag language.Tag, entries []Entry) error {
	name := tag.String()
	keys, ok := st.keys[name]
	if !ok {
		keys = make(map[string]struct{})
		st.keys[name] = keys
		st.byName[name] = tag
	}
	for _, e := range entries {
		if e.MsgID == "" || e.MsgStr == "" {
			continue
		}
		key := messageKey(e.Context, e.MsgID)
		// The printer formats msgstr; keep verbs such as %d for the caller.
		msg := strings.ReplaceAll(e.MsgStr, "%", "%%")
		if err := st.builder.SetString(tag, key, msg); err != nil {
			return err
		}
		keys[key] = struct{}{}
	}
	return nil
}

func messageKey(context, msgid string) string {
	if context == "" {
		return msgid
	}
	return context + contextSeparator + msgid
}

// printerTranslator resolves messages through an x/text message printer.
type printerTranslator struct {
	tag     language.Tag
	printer *message.Printer
	keys    map[string]struct{}
}

func (t *printerTranslator) Gettext(msgid string) string {
	return t.lookup("", msgid)
}

func (t *printerTranslator) Pgettext(context, msgid string) string {
	return t.lookup(context, msgid)
}

func (t *printerTranslator) Locale() language.Tag {
	return t.tag
}

func (t *printerTranslator) lookup(context, msgid string) string {
	key := messageKey(context, msgid)
	if _, ok := t.keys[key]; !ok {
		return msgid
	}
	return t.printer.Sprintf(key)
}

// Identity is a Translator that returns every msgid unchanged.
// Tests and the CLI use it where no catalog is configured.
type Identity struct{}

func (Identity) Gettext(msgid string) string { return msgid }

func (Identity) Pgettext(_, msgid string) string { return msgid }

func (Identity) Locale() language.Tag { return language.English }
