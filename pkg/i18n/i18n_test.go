package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTFromContext_DefaultLocale(t *testing.T) {
	got := TFromContext(context.Background(), "errors.task_empty")
	assert.Equal(t, "a task description is required", got)
}

func TestTFromContext_German(t *testing.T) {
	ctx := WithLocale(context.Background(), "de")
	got := TFromContext(ctx, "errors.task_empty")
	assert.Equal(t, "eine Tätigkeitsbeschreibung ist erforderlich", got)
}

func TestTFromContext_Params(t *testing.T) {
	got := TFromContext(context.Background(), "errors.invalid_period", map[string]string{"period": "last_decade"})
	assert.Contains(t, got, "last_decade")
}

func TestTFromContext_UnknownKeyFallsBackToKey(t *testing.T) {
	got := TFromContext(context.Background(), "errors.does_not_exist")
	assert.Equal(t, "errors.does_not_exist", got)
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        "en",
		"de":                      "de",
		"de-CH,de;q=0.9,en;q=0.8": "de",
		"fr-FR,fr;q=0.9":          "en",
		"fr,de;q=0.5":             "de",
	}
	for header, want := range cases {
		assert.Equal(t, want, ParseAcceptLanguage(header), "header %q", header)
	}
}

func TestMiddleware_SetsLocale(t *testing.T) {
	var got string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = localeFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "de", got)
}
