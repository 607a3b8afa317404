// Package i18n localizes the error and notification messages the API
// returns. Catalogs live in messages/<locale>.json and are flattened
// into dot-notation keys (e.g. "errors.task_empty") at first use.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"path"
	"strings"
	"sync"
)

//go:embed messages/*.json
var catalogFS embed.FS

const DefaultLocale = "en"

type localeKey struct{}

var (
	catalogs     map[string]map[string]string
	catalogsOnce sync.Once
)

// loadCatalogs reads every embedded catalog and flattens its nested
// sections into dot keys. Locales are whatever files exist under
// messages/, so adding a language is just adding a JSON file.
func loadCatalogs() {
	catalogsOnce.Do(func() {
		catalogs = make(map[string]map[string]string)

		files, err := catalogFS.ReadDir("messages")
		if err != nil {
			return
		}
		for _, f := range files {
			locale := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
			data, err := catalogFS.ReadFile("messages/" + f.Name())
			if err != nil {
				continue
			}

			var tree map[string]any
			if err := json.Unmarshal(data, &tree); err != nil {
				continue
			}

			flat := make(map[string]string)
			flatten("", tree, flat)
			catalogs[locale] = flat
		}
	})
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// TFromContext translates key for the locale carried in ctx, falling
// back to the default locale and finally to the key itself. Optional
// params replace {name} placeholders in the message.
func TFromContext(ctx context.Context, key string, params ...map[string]string) string {
	loadCatalogs()

	locale := localeFromContext(ctx)
	msg, ok := catalogs[locale][key]
	if !ok {
		msg, ok = catalogs[DefaultLocale][key]
	}
	if !ok {
		return key
	}

	if len(params) > 0 {
		for k, v := range params[0] {
			msg = strings.ReplaceAll(msg, "{"+k+"}", v)
		}
	}
	return msg
}

// WithLocale stores the request locale on the context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

func localeFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey{}).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}

// ParseAcceptLanguage picks the first requested language we have a
// catalog for. Quality weights are ignored, the client's order wins.
func ParseAcceptLanguage(header string) string {
	loadCatalogs()

	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, ";-"); i >= 0 {
			tag = tag[:i]
		}
		if _, ok := catalogs[tag]; ok {
			return tag
		}
	}
	return DefaultLocale
}
