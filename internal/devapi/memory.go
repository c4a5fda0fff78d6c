package devapi

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

// MemoryAccounts is the default AccountRepository.
type MemoryAccounts struct {
	mu   sync.RWMutex
	byID map[string]*Account
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{byID: make(map[string]*Account)}
}

func (r *MemoryAccounts) Create(_ context.Context, account *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if strings.EqualFold(a.Email, account.Email) {
			return ErrAccountExists
		}
	}
	r.byID[account.ID] = copyAccount(account)
	return nil
}

func (r *MemoryAccounts) FindByID(_ context.Context, id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return copyAccount(a), nil
}

func (r *MemoryAccounts) FindByEmail(_ context.Context, email string) (*Account, error) {
	return r.find(func(a *Account) bool { return strings.EqualFold(a.Email, email) })
}

func (r *MemoryAccounts) FindByVerificationToken(_ context.Context, token string) (*Account, error) {
	if token == "" {
		return nil, ErrAccountNotFound
	}
	return r.find(func(a *Account) bool { return a.VerificationToken == token })
}

func (r *MemoryAccounts) Update(_ context.Context, account *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[account.ID]; !ok {
		return ErrAccountNotFound
	}
	r.byID[account.ID] = copyAccount(account)
	return nil
}

func (r *MemoryAccounts) find(match func(*Account) bool) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.byID {
		if match(a) {
			return copyAccount(a), nil
		}
	}
	return nil, ErrAccountNotFound
}

func copyAccount(a *Account) *Account {
	c := *a
	c.Preferences = a.Preferences.Clone()
	return &c
}

// MemoryArticles is the default ArticleRepository.
type MemoryArticles struct {
	mu   sync.RWMutex
	byID map[string]domain.Article
}

func NewMemoryArticles() *MemoryArticles {
	return &MemoryArticles{byID: make(map[string]domain.Article)}
}

// List returns the catalogue newest first.
func (r *MemoryArticles) List(_ context.Context) ([]domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Article, 0, len(r.byID))
	for _, a := range r.byID {
		a.Topics = append([]string{}, a.Topics...)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (r *MemoryArticles) FindByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, ErrUnknownArticle
	}
	a.Topics = append([]string{}, a.Topics...)
	return &a, nil
}

func (r *MemoryArticles) Upsert(_ context.Context, article domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	article.Topics = append([]string{}, article.Topics...)
	article.IsRead, article.IsSaved = false, false
	r.byID[article.ID] = article
	return nil
}

// MemoryReadingState is the default ReadingStateRepository.
type MemoryReadingState struct {
	mu    sync.Mutex
	saved map[string]map[string]struct{}
	read  map[string]map[string]struct{}
}

func NewMemoryReadingState() *MemoryReadingState {
	return &MemoryReadingState{
		saved: make(map[string]map[string]struct{}),
		read:  make(map[string]map[string]struct{}),
	}
}

func (r *MemoryReadingState) Get(_ context.Context, accountID string) (ReadingState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReadingState{Saved: keys(r.saved[accountID]), Read: keys(r.read[accountID])}, nil
}

func (r *MemoryReadingState) SetSaved(_ context.Context, accountID, articleID string, saved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !saved {
		delete(r.saved[accountID], articleID)
		return nil
	}
	add(r.saved, accountID, articleID)
	return nil
}

func (r *MemoryReadingState) MarkRead(_ context.Context, accountID, articleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	add(r.read, accountID, articleID)
	return nil
}

func add(m map[string]map[string]struct{}, accountID, articleID string) {
	set, ok := m[accountID]
	if !ok {
		set = make(map[string]struct{})
		m[accountID] = set
	}
	set[articleID] = struct{}{}
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
