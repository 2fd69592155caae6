package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/adapter/llm"
	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/recipeimport"
	"github.com/user/recipe-service/internal/repository"
	"github.com/user/recipe-service/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

const pageFixture = `<!DOCTYPE html>
<html><head>
<title>Classic Tomato Soup Recipe | Soup Kitchen</title>
<meta property="og:image" content="https://cdn.soup.example.com/tomato-soup.jpg">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Recipe","name":"Classic Tomato Soup",
 "image":"https://cdn.soup.example.com/ld-image.jpg",
 "recipeIngredient":["1 kg tomatoes","1 onion","2 cloves garlic","500 ml stock","2 tbsp olive oil"],
 "recipeInstructions":[{"@type":"HowToStep","text":"Saute onion and garlic."},
   {"@type":"HowToStep","text":"Add tomatoes and stock, simmer 20 minutes."},
   {"@type":"HowToStep","text":"Blend until smooth."}]}
</script>
</head><body><h1>Classic Tomato Soup</h1><p>Warming and simple.</p></body></html>`

const modelAnswer = "```json\n" + `{
  "title": "Classic Tomato Soup Recipe",
  "description": "A warming, simple tomato soup.",
  "imageUrl": "https://model.example.com/made-up.jpg",
  "tags": ["Soup", "vegetarian", "comfort-food", "Quick"],
  "ingredients": ["1 kg tomatoes", "1 onion", "2 cloves garlic", "500 ml stock", "2 tbsp olive oil"],
  "steps": ["Saute onion and garlic.", "Add tomatoes and stock, simmer 20 minutes.", "Blend until smooth."]
}` + "\n```"

var testCaller = &entity.SessionUser{ID: "user-1", Username: "cook"}

func newImporter(f *fakeFetcher, m repository.CompletionClient, attempts *fakeAttemptRepo) RecipeImporter {
	if attempts == nil {
		return NewRecipeImporter(f, m, nil, zap.NewNop())
	}
	return NewRecipeImporter(f, m, attempts, zap.NewNop())
}

func requireImportError(t *testing.T, err error, kind ImportErrorKind, status int) *ImportError {
	t.Helper()
	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, kind, importErr.Kind)
	assert.Equal(t, status, importErr.Status)
	assert.NotEmpty(t, importErr.Message)
	return importErr
}

func TestImport_EndToEndHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{html: pageFixture}
	model := &fakeModel{configured: true, answer: modelAnswer}
	attempts := &fakeAttemptRepo{}

	recipe, err := newImporter(fetcher, model, attempts).Import(t.Context(), "https://soup.example.com/tomato", testCaller)
	require.NoError(t, err)

	assert.NotEmpty(t, recipe.Title)
	assert.Equal(t, "Classic Tomato Soup", recipe.Title)
	assert.Len(t, recipe.Ingredients, 5)
	assert.Len(t, recipe.Steps, 3)
	require.NotNil(t, recipe.ImageURL)
	assert.Equal(t, "https://cdn.soup.example.com/tomato-soup.jpg", *recipe.ImageURL)
	for _, tag := range recipe.Tags {
		assert.True(t, recipeimport.IsKnownTag(tag), tag)
	}
	assert.Equal(t, []string{"soup", "vegetarian", "quick"}, recipe.Tags)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Structured data (JSON-LD):")
	assert.Contains(t, model.prompts[0], "500 ml stock")

	require.Len(t, attempts.saved, 1)
	assert.Equal(t, "success", attempts.saved[0].Outcome)
	assert.Equal(t, http.StatusOK, attempts.saved[0].HTTPStatusCode)
	assert.Equal(t, testCaller.ID, attempts.saved[0].UserID)
}

func TestImport_RejectedURLNeverFetches(t *testing.T) {
	tests := []struct {
		raw  string
		kind ImportErrorKind
	}{
		{"", KindMissingURL},
		{"   ", KindMissingURL},
		{"not a url", KindInvalidURL},
		{"ftp://example.com/recipe", KindDisallowedScheme},
		{"http://10.0.0.5/recipe", KindDisallowedHost},
		{"http://localhost:3000/", KindDisallowedHost},
		{"https://192.168.1.1/admin", KindDisallowedHost},
		{"http://169.254.169.254/latest/meta-data", KindDisallowedHost},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			fetcher := &fakeFetcher{html: pageFixture}
			model := &fakeModel{configured: true, answer: modelAnswer}

			_, err := newImporter(fetcher, model, nil).Import(t.Context(), tt.raw, testCaller)

			requireImportError(t, err, tt.kind, http.StatusBadRequest)
			assert.Empty(t, fetcher.calls)
			assert.Empty(t, model.prompts)
		})
	}
}

func TestImport_MissingCredentialBeforeAnyNetworkCall(t *testing.T) {
	fetcher := &fakeFetcher{html: pageFixture}
	model := &fakeModel{configured: false}

	_, err := newImporter(fetcher, model, nil).Import(t.Context(), "https://soup.example.com/tomato", testCaller)

	requireImportError(t, err, KindMissingCredential, http.StatusInternalServerError)
	assert.Empty(t, fetcher.calls)
	assert.Empty(t, model.prompts)
}

func TestImport_TimeoutIsDistinctFromFetchFailure(t *testing.T) {
	model := &fakeModel{configured: true, answer: modelAnswer}

	_, err := newImporter(&fakeFetcher{err: repository.ErrFetchTimeout}, model, nil).
		Import(t.Context(), "https://slow.example.com/", testCaller)
	timeoutErr := requireImportError(t, err, KindFetchTimeout, http.StatusBadRequest)

	_, err = newImporter(&fakeFetcher{err: &repository.FetchStatusError{StatusCode: http.StatusNotFound}}, model, nil).
		Import(t.Context(), "https://gone.example.com/", testCaller)
	notFoundErr := requireImportError(t, err, KindFetchFailed, http.StatusBadRequest)

	assert.NotEqual(t, timeoutErr.Kind, notFoundErr.Kind)
	assert.Contains(t, notFoundErr.Message, "404")
	assert.Empty(t, model.prompts)
}

func TestImport_StageFailures(t *testing.T) {
	tests := []struct {
		name     string
		fetchErr error
		answer   string
		modelErr error
		kind     ImportErrorKind
		status   int
	}{
		{"network failure", fmt.Errorf("%w: connection refused", repository.ErrFetchFailed), "", nil, KindFetchFailed, 400},
		{"unknown fetch error", errors.New("boom"), "", nil, KindUnexpected, 500},
		{"models exhausted", nil, "", repository.ErrAllModelsExhausted, KindAllModelsExhausted, 429},
		{"model auth", nil, "", fmt.Errorf("%w: 401", repository.ErrModelAuth), KindModelAuth, 401},
		{"model down", nil, "", fmt.Errorf("%w: 503", repository.ErrModelUnavailable), KindUnexpected, 500},
		{"prose answer", nil, "I could not find a recipe, sorry!", nil, KindUnparsableOutput, 500},
		{"no ingredients", nil, `{"title":"Soup","ingredients":[],"steps":["Boil."]}`, nil, KindIncompleteRecipe, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{html: pageFixture, err: tt.fetchErr}
			model := &fakeModel{configured: true, answer: tt.answer, err: tt.modelErr}

			recipe, err := newImporter(fetcher, model, nil).Import(t.Context(), "https://soup.example.com/tomato", testCaller)

			assert.Nil(t, recipe)
			importErr := requireImportError(t, err, tt.kind, tt.status)
			assert.NotContains(t, importErr.Message, "boom")
		})
	}
}

func TestImport_ModelFallbackIsInvisible(t *testing.T) {
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)

		w.Header().Set("Content-Type", "application/json")
		if req.Model == "busy-model" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"tokens","code":"rate_limit_exceeded"}}`))
			return
		}
		content, _ := json.Marshal(modelAnswer)
		_, _ = fmt.Fprintf(w, `{"id":"c1","object":"chat.completion","created":1,"model":%q,
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":%s}}]}`, req.Model, content)
	}))
	defer server.Close()

	client := llm.NewClient(llm.Options{
		APIKey:  "test-key",
		BaseURL: server.URL + "/",
		Models:  []string{"busy-model", "spare-model"},
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	recipe, err := newImporter(&fakeFetcher{html: pageFixture}, client, nil).
		Import(t.Context(), "https://soup.example.com/tomato", testCaller)

	require.NoError(t, err)
	assert.Equal(t, []string{"busy-model", "spare-model"}, models)
	assert.Len(t, recipe.Ingredients, 5)
}

func TestImport_AuditFailureIsNotSurfaced(t *testing.T) {
	attempts := &fakeAttemptRepo{saveErr: errors.New("db down")}
	model := &fakeModel{configured: true, answer: modelAnswer}

	recipe, err := newImporter(&fakeFetcher{html: pageFixture}, model, attempts).
		Import(t.Context(), "https://soup.example.com/tomato", testCaller)

	require.NoError(t, err)
	assert.NotNil(t, recipe)
}

func TestImport_AuditRecordsFailureAndHistory(t *testing.T) {
	attempts := &fakeAttemptRepo{}
	importer := newImporter(&fakeFetcher{err: repository.ErrFetchTimeout}, &fakeModel{configured: true}, attempts)

	ctx, cancel := context.WithCancel(t.Context())
	_, err := importer.Import(ctx, "https://slow.example.com/", testCaller)
	cancel()
	require.Error(t, err)

	history, err := importer.History(t.Context(), testCaller.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(KindFetchTimeout), history[0].Outcome)
	assert.Equal(t, http.StatusBadRequest, history[0].HTTPStatusCode)
	assert.NotEmpty(t, history[0].FailureReason)

	other, err := importer.History(t.Context(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}
