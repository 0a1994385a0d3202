package main

import (
	"context"
	"log"
	"log/slog"

	"newsdigest/db"
	"newsdigest/internal/config"
	"newsdigest/internal/credential"
	"newsdigest/internal/handler"
	"newsdigest/internal/logging"
	"newsdigest/internal/personalize"
	"newsdigest/internal/repository"
	"newsdigest/pkg/llm"
	"newsdigest/pkg/news"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(logging.New(cfg.LogLevel))

	err = db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	err = db.Migrate(ctx)
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	err = db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	provider := newProvider(cfg)
	slog.Info("generative provider selected", "provider", provider.Name())

	keys := credential.NewResolver(credential.Defaults{
		NewsAPIKey: cfg.NewsAPIKey,
		AIAPIKey:   cfg.AIAPIKey,
	})
	fetcher := news.NewNewsAPIClient(cfg.NewsAPIBaseURL)
	orchestrator := personalize.NewOrchestrator(keys, llm.NewQueryGenerator(provider), fetcher)

	userRepo := repository.NewUserRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.Redis, cfg.SessionTTL)
	interestRepo := repository.NewInterestRepository(db.DB)
	savedRepo := repository.NewSavedArticleRepository(db.DB)

	authHandler := handler.NewAuthHandler(userRepo, sessionRepo, cfg.SessionTTL)
	newsHandler := handler.NewNewsHandler(fetcher, keys)
	aiHandler := handler.NewAIHandler(llm.NewSummarizer(provider), orchestrator, keys)
	interestHandler := handler.NewInterestHandler(interestRepo)
	savedHandler := handler.NewSavedArticleHandler(savedRepo)
	healthHandler := handler.NewHealthHandler(db.DB.PingContext, sessionRepo.Ping)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthHandler.GetHealth)

	api := r.Group("/api", handler.Authenticate(userRepo, sessionRepo))
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/news/top-headlines", newsHandler.GetTopHeadlines)
	api.GET("/news/search", newsHandler.Search)
	api.POST("/ai/summarize-article", aiHandler.SummarizeArticle)
	api.POST("/ai/generate-news-for-interests", aiHandler.GenerateNewsForInterests)

	private := api.Group("", handler.RequireUser)
	private.GET("/user", authHandler.GetUser)
	private.PATCH("/user", authHandler.UpdateUser)
	private.GET("/interests", interestHandler.GetInterests)
	private.POST("/interests", interestHandler.CreateInterest)
	private.DELETE("/interests/:id", interestHandler.DeleteInterest)
	private.GET("/saved-articles", savedHandler.GetSavedArticles)
	private.POST("/saved-articles", savedHandler.SaveArticle)
	private.DELETE("/saved-articles/:id", savedHandler.DeleteSavedArticle)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func newProvider(cfg *config.Config) llm.Provider {
	switch cfg.AIProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient()
	case config.ProviderAnthropic:
		return llm.NewAnthropicClient()
	default:
		return llm.NewGeminiClient(cfg.GeminiBaseURL)
	}
}
