package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/infrastructure/memory"
	"marktrans/internal/infrastructure/missing"
	"marktrans/internal/parser"
	"marktrans/internal/ports/output"
)

// spyStore records FindMany calls on top of an in-memory store.
type spyStore struct {
	output.TranslationStore
	calls [][]string
	err   error
}

func (s *spyStore) FindMany(ctx context.Context, locale string, keys []string, dom string) ([]entities.Translation, error) {
	s.calls = append(s.calls, append([]string(nil), keys...))
	if s.err != nil {
		return nil, s.err
	}
	return s.TranslationStore.FindMany(ctx, locale, keys, dom)
}

func newStore(t *testing.T, translations ...entities.Translation) *spyStore {
	t.Helper()
	repo, err := memory.NewTranslationRepositoryFrom(translations...)
	require.NoError(t, err)
	return &spyStore{TranslationStore: repo}
}

var en = entities.Scope{Locale: "en"}

func TestResolveStringScenario(t *testing.T) {
	store := newStore(t, entities.Translation{Locale: "en", Key: "name", Content: "Burak"})
	rec := &missing.Recorder{}
	tr := NewTranslator(store, WithMissingSink(rec))

	out, err := tr.ResolveString(context.Background(), en, `Hi __{{name}} __{{surname}} __{{w, "Hi"}}`)
	require.NoError(t, err)

	assert.Equal(t, "Hi Burak  Hi", out)
	assert.Equal(t, []string{"surname", "w"}, rec.Keys(), "defaults do not suppress reports")
	assert.Equal(t, [][]string{{"name", "surname", "w"}}, store.calls)

	entries := rec.Entries()
	assert.Equal(t, en, entries[0].Scope)
	assert.Equal(t, `__{{w, "Hi"}}`, entries[1].Translatable.Span)
	assert.Equal(t, "Hi", entries[1].Translatable.Default)
}

func TestResolveStringWithoutMarkers(t *testing.T) {
	store := newStore(t)
	rec := &missing.Recorder{}
	tr := NewTranslator(store, WithMissingSink(rec))

	in := "nothing to translate here"
	out, err := tr.ResolveString(context.Background(), en, in)
	require.NoError(t, err)

	assert.Equal(t, in, out)
	assert.Empty(t, rec.Keys())
	assert.Empty(t, store.calls, "no keys means no lookup")
}

func TestResolveReportsEachKeyOnce(t *testing.T) {
	store := newStore(t)
	rec := &missing.Recorder{}
	tr := NewTranslator(store, WithMissingSink(rec))

	out, err := tr.ResolveString(context.Background(), en, `__{{k}} __{{k, "d"}} __{{other}} __{{k}}`)
	require.NoError(t, err)

	assert.Equal(t, " d  ", out)
	assert.Equal(t, []string{"k", "other"}, rec.Keys())
	assert.Equal(t, "__{{k}}", rec.Entries()[0].Translatable.Span, "first occurrence is reported")
	assert.Equal(t, [][]string{{"k", "other"}}, store.calls)
}

func TestResolveMissWithoutDefaultIsEmpty(t *testing.T) {
	rec := &missing.Recorder{}
	tr := NewTranslator(newStore(t), WithMissingSink(rec))

	out, err := tr.ResolveString(context.Background(), en, "[__{{nothing}}]")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, []string{"nothing"}, rec.Keys())
}

func TestResolveDoesNotWriteDefaults(t *testing.T) {
	repo, err := memory.NewTranslationRepositoryFrom()
	require.NoError(t, err)
	tr := NewTranslator(repo)

	out, err := tr.ResolveString(context.Background(), en, `__{{k, "fallback"}}`)
	require.NoError(t, err)
	assert.Equal(t, "fallback", out)
	assert.Equal(t, 0, repo.Len())
}

func TestResolveDomainFiltering(t *testing.T) {
	store := newStore(t,
		entities.Translation{Locale: "en", Key: "k", Content: "A"},
		entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "B"},
	)
	tr := NewTranslator(store)
	ctx := context.Background()

	out, err := tr.ResolveString(ctx, entities.Scope{Locale: "en"}, "__{{k}}")
	require.NoError(t, err)
	assert.Equal(t, "A", out)

	out, err = tr.ResolveString(ctx, entities.Scope{Locale: "en", Domain: "d1"}, "__{{k}}")
	require.NoError(t, err)
	assert.Equal(t, "B", out)

	out, err = tr.ResolveString(ctx, entities.Scope{Locale: "en", Domain: "d2"}, `__{{k, "none"}}`)
	require.NoError(t, err)
	assert.Equal(t, "none", out)
}

func TestResolveStoreMissing(t *testing.T) {
	tr := NewTranslator(nil)

	_, err := tr.ResolveString(context.Background(), en, "hello world")
	assert.ErrorIs(t, err, domain.ErrStoreMissing)

	_, err = tr.ResolveTree(context.Background(), en, entities.String("not even a tree"))
	assert.ErrorIs(t, err, domain.ErrStoreMissing, "store is checked before parsing")
}

func TestResolveStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	store := newStore(t)
	store.err = boom
	rec := &missing.Recorder{}
	tr := NewTranslator(store, WithMissingSink(rec))

	_, err := tr.ResolveString(context.Background(), en, "__{{k}}")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Keys())
}

func TestResolveTreeBatchesOneLookup(t *testing.T) {
	store := newStore(t, entities.Translation{Locale: "en", Key: "k", Content: "X"})
	rec := &missing.Recorder{}
	tr := NewTranslator(store, WithMissingSink(rec))

	in, err := entities.FromAny(map[string]any{
		"a": "__{{k}}",
		"b": map[string]any{"c": "__{{k}}", "d": []any{"__{{gone}}", "__{{k}}"}},
	})
	require.NoError(t, err)

	out, err := tr.ResolveTree(context.Background(), en, in)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": "X",
		"b": map[string]any{"c": "X", "d": []any{"", "X"}},
	}, out.Any())
	assert.Equal(t, [][]string{{"k", "gone"}}, store.calls)
	assert.Equal(t, []string{"gone"}, rec.Keys())

	orig, ok := in.Path("a")
	require.True(t, ok)
	assert.Equal(t, "__{{k}}", orig.Text(), "input tree must not change")
}

func TestResolveTreeRejectsLeaf(t *testing.T) {
	tr := NewTranslator(newStore(t))
	_, err := tr.ResolveTree(context.Background(), en, entities.String("hello"))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestResolveWithExplicitParser(t *testing.T) {
	store := newStore(t, entities.Translation{Locale: "es", Key: "hi", Content: "Hola"})
	tr := NewTranslator(store)

	p := parser.NewStringParser()
	out, err := Resolve[string](context.Background(), tr, p, entities.Scope{Locale: "es"}, "__{{hi}}!")
	require.NoError(t, err)
	assert.Equal(t, "Hola!", out)
	assert.Equal(t, []string{"hi"}, p.Keys())
}

const page = `<html>
<head><title>__{{page_title, "Default Title"}}</title></head>
<body>
<h1 class="__{{title_class, 'title'}}">__{{page_title, "Default Title"}}</h1>
<p>__{{intro, "Hello, welcome to my webpage."}}</p>
<div class="default-only">__{{default_only, "Default Only!"}}</div>
<div class="no-default">__{{no_default}}</div>
</body>
</html>`

func TestResolveHTMLAcrossLocalesAndDomains(t *testing.T) {
	store := newStore(t,
		entities.Translation{Locale: "en", Key: "page_title", Content: "English Page Title"},
		entities.Translation{Locale: "en", Key: "title_class", Content: "title-en"},
		entities.Translation{Locale: "en", Key: "no_default", Content: "No Default English"},
		entities.Translation{Locale: "es", Key: "page_title", Content: "Spanish Page Title"},
		entities.Translation{Locale: "es", Key: "intro", Content: "Intro in Spanish"},
		entities.Translation{Locale: "es", Key: "no_default", Content: "No Default Spanish"},
		entities.Translation{Locale: "en", Key: "page_title", Domain: "cust1", Content: "English Page Title for Cust1"},
		entities.Translation{Locale: "en", Key: "no_default", Domain: "cust1", Content: "No Default English For Cust 1"},
	)
	tr := NewTranslator(store)
	ctx := context.Background()

	tests := []struct {
		name  string
		scope entities.Scope
		want  []string
	}{
		{
			name:  "english",
			scope: entities.Scope{Locale: "en"},
			want: []string{
				"<title>English Page Title</title>",
				`<h1 class="title-en">English Page Title</h1>`,
				"<p>Hello, welcome to my webpage.</p>",
				`<div class="default-only">Default Only!</div>`,
				`<div class="no-default">No Default English</div>`,
			},
		},
		{
			name:  "spanish",
			scope: entities.Scope{Locale: "es"},
			want: []string{
				"<title>Spanish Page Title</title>",
				`<h1 class="title">Spanish Page Title</h1>`,
				"<p>Intro in Spanish</p>",
				`<div class="no-default">No Default Spanish</div>`,
			},
		},
		{
			name:  "english cust1",
			scope: entities.Scope{Locale: "en", Domain: "cust1"},
			want: []string{
				"<title>English Page Title for Cust1</title>",
				`<h1 class="title">English Page Title for Cust1</h1>`,
				"<p>Hello, welcome to my webpage.</p>",
				`<div class="no-default">No Default English For Cust 1</div>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tr.ResolveString(ctx, tt.scope, page)
			require.NoError(t, err)
			assert.False(t, strings.Contains(out, "__{{"))
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}
