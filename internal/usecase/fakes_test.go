package usecase

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/repository"
)

type fakeFetcher struct {
	mu    sync.Mutex
	html  string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, u *url.URL) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, u.String())
	return f.html, f.err
}

type fakeModel struct {
	configured bool
	answer     string
	err        error
	prompts    []string
}

func (m *fakeModel) Complete(_ context.Context, _, userPrompt string) (string, error) {
	m.prompts = append(m.prompts, userPrompt)
	return m.answer, m.err
}

func (m *fakeModel) Configured() bool { return m.configured }

type fakeAttemptRepo struct {
	mu      sync.Mutex
	saved   []*entity.ImportAttempt
	saveErr error
}

func (r *fakeAttemptRepo) Save(_ context.Context, a *entity.ImportAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	a.ID = int64(len(r.saved) + 1)
	r.saved = append(r.saved, a)
	return nil
}

func (r *fakeAttemptRepo) FindRecentByUser(_ context.Context, userID string, limit int) ([]*entity.ImportAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.ImportAttempt{}
	for i := len(r.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if r.saved[i].UserID == userID {
			out = append(out, r.saved[i])
		}
	}
	return out, nil
}

type fakeRecipeRepo struct {
	recipes map[string]*entity.Recipe
	order   []string
	nextID  int
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]*entity.Recipe{}}
}

func (r *fakeRecipeRepo) Create(_ context.Context, recipe *entity.Recipe) error {
	r.nextID++
	recipe.ID = fmt.Sprintf("recipe-%d", r.nextID)
	recipe.CreatedAt = time.Now()
	r.recipes[recipe.ID] = recipe
	r.order = append(r.order, recipe.ID)
	return nil
}

func (r *fakeRecipeRepo) FindByID(_ context.Context, id string) (*entity.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return recipe, nil
}

func (r *fakeRecipeRepo) ListRecent(_ context.Context, limit int) ([]*entity.Recipe, error) {
	out := []*entity.Recipe{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if recipe, ok := r.recipes[r.order[i]]; ok {
			out = append(out, recipe)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	user.ID = "user-" + user.Username
	user.CreatedAt = time.Now()
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeSessionRepo struct {
	sessions map[string]string
	ttls     map[string]time.Duration
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, token, userID string, expiry time.Duration) error {
	r.sessions[token] = userID
	r.ttls[token] = expiry
	return nil
}

func (r *fakeSessionRepo) Lookup(_ context.Context, token string) (string, error) {
	userID, ok := r.sessions[token]
	if !ok {
		return "", repository.ErrSessionNotFound
	}
	return userID, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}
