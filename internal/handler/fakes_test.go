package handler

import (
	"context"
	"errors"
	"time"

	"newsdigest/internal/credential"
	"newsdigest/internal/model"
	"newsdigest/internal/personalize"
	"newsdigest/internal/repository"
	"newsdigest/pkg/llm"
	"newsdigest/pkg/news"

	"github.com/gin-gonic/gin"
)

type fakeUsers struct {
	users  map[int64]*model.User
	nextID int64
	err    error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: map[int64]*model.User{}, nextID: 100}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return nil, repository.ErrDuplicateUsername
		}
	}
	f.nextID++
	u := &model.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.users[id], f.err
}

func (f *fakeUsers) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, f.err
		}
	}
	return nil, f.err
}

func (f *fakeUsers) UpdateAPIKeys(ctx context.Context, id int64, upd model.APIKeyUpdate) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, f.err
	}
	if upd.NewsAPIKey != nil {
		u.NewsAPIKey = *upd.NewsAPIKey
	}
	if upd.AIAPIKey != nil {
		u.AIAPIKey = *upd.AIAPIKey
	}
	return u, f.err
}

type fakeSessions struct {
	tokens map[string]int64
	err    error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]int64{}}
}

func (f *fakeSessions) CreateSession(ctx context.Context, userID int64) (string, error) {
	token := "token-" + time.Now().Format("150405.000000000")
	f.tokens[token] = userID
	return token, f.err
}

func (f *fakeSessions) GetSession(ctx context.Context, token string) (int64, error) {
	return f.tokens[token], f.err
}

func (f *fakeSessions) DeleteSession(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return f.err
}

type fakeFetcher struct {
	list         *news.ArticleList
	err          error
	keys         []string
	headlineArgs []news.HeadlineParams
	searchArgs   []news.SearchParams
}

func (f *fakeFetcher) TopHeadlines(ctx context.Context, apiKey string, params news.HeadlineParams) (*news.ArticleList, error) {
	f.keys = append(f.keys, apiKey)
	f.headlineArgs = append(f.headlineArgs, params)
	return f.list, f.err
}

func (f *fakeFetcher) Search(ctx context.Context, apiKey string, params news.SearchParams) (*news.ArticleList, error) {
	f.keys = append(f.keys, apiKey)
	f.searchArgs = append(f.searchArgs, params)
	return f.list, f.err
}

type fakeSummarizer struct {
	result *llm.SummaryResult
	err    error
	reqs   []llm.SummaryRequest
}

func (f *fakeSummarizer) Summarize(ctx context.Context, apiKey string, req llm.SummaryRequest) (*llm.SummaryResult, error) {
	f.reqs = append(f.reqs, req)
	return f.result, f.err
}

type fakeInterestNews struct {
	result *personalize.Result
	err    error
	reqs   []personalize.Request
}

func (f *fakeInterestNews) NewsForInterests(ctx context.Context, req personalize.Request) (*personalize.Result, error) {
	f.reqs = append(f.reqs, req)
	return f.result, f.err
}

type fakeInterests struct {
	interests []model.Interest
	deleted   [][2]int64
	err       error
}

func (f *fakeInterests) GetInterests(ctx context.Context, userID int64) ([]model.Interest, error) {
	var res []model.Interest
	for _, i := range f.interests {
		if i.UserID == userID {
			res = append(res, i)
		}
	}
	return res, f.err
}

func (f *fakeInterests) CreateInterest(ctx context.Context, interest *model.Interest) error {
	if f.err != nil {
		return f.err
	}
	interest.ID = int64(len(f.interests) + 1)
	interest.Active = true
	interest.CreatedAt = time.Now()
	f.interests = append(f.interests, *interest)
	return nil
}

func (f *fakeInterests) DeleteInterest(ctx context.Context, id, userID int64) error {
	f.deleted = append(f.deleted, [2]int64{id, userID})
	return f.err
}

type fakeSavedArticles struct {
	articles []model.SavedArticle
	err      error
}

func (f *fakeSavedArticles) GetSavedArticles(ctx context.Context, userID int64) ([]model.SavedArticle, error) {
	return f.articles, f.err
}

func (f *fakeSavedArticles) SaveArticle(ctx context.Context, article *model.SavedArticle) error {
	if f.err != nil {
		return f.err
	}
	article.ID = int64(len(f.articles) + 1)
	article.SavedAt = time.Now()
	f.articles = append(f.articles, *article)
	return nil
}

func (f *fakeSavedArticles) DeleteSavedArticle(ctx context.Context, id, userID int64) error {
	return f.err
}

var errStore = errors.New("store down")

func testResolver() *credential.Resolver {
	return credential.NewResolver(credential.Defaults{NewsAPIKey: "news-default", AIAPIKey: "ai-default"})
}

// testEnv wires every handler behind the same middleware the server uses.
type testEnv struct {
	users     *fakeUsers
	sessions  *fakeSessions
	fetcher   *fakeFetcher
	summaries *fakeSummarizer
	news      *fakeInterestNews
	interests *fakeInterests
	saved     *fakeSavedArticles
	keys      KeyResolver
}

func newTestEnv() *testEnv {
	return &testEnv{
		users:     newFakeUsers(&model.User{ID: 1, Username: "alice", CreatedAt: time.Now()}),
		sessions:  newFakeSessions(),
		fetcher:   &fakeFetcher{list: &news.ArticleList{Status: "ok"}},
		summaries: &fakeSummarizer{},
		news:      &fakeInterestNews{},
		interests: &fakeInterests{},
		saved:     &fakeSavedArticles{},
		keys:      testResolver(),
	}
}

func (e *testEnv) login(userID int64) string {
	token := "session-" + string(rune('a'+userID))
	e.sessions.tokens[token] = userID
	return token
}

func (e *testEnv) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authHandler := NewAuthHandler(e.users, e.sessions, time.Hour)
	newsHandler := NewNewsHandler(e.fetcher, e.keys)
	aiHandler := NewAIHandler(e.summaries, e.news, e.keys)
	interestHandler := NewInterestHandler(e.interests)
	savedHandler := NewSavedArticleHandler(e.saved)

	api := r.Group("/api", Authenticate(e.users, e.sessions))
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/news/top-headlines", newsHandler.GetTopHeadlines)
	api.GET("/news/search", newsHandler.Search)
	api.POST("/ai/summarize-article", aiHandler.SummarizeArticle)
	api.POST("/ai/generate-news-for-interests", aiHandler.GenerateNewsForInterests)

	private := api.Group("", RequireUser)
	private.GET("/user", authHandler.GetUser)
	private.PATCH("/user", authHandler.UpdateUser)
	private.GET("/interests", interestHandler.GetInterests)
	private.POST("/interests", interestHandler.CreateInterest)
	private.DELETE("/interests/:id", interestHandler.DeleteInterest)
	private.GET("/saved-articles", savedHandler.GetSavedArticles)
	private.POST("/saved-articles", savedHandler.SaveArticle)
	private.DELETE("/saved-articles/:id", savedHandler.DeleteSavedArticle)

	return r
}
