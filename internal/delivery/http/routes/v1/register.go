package v1

import (
	"log"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/delivery/http/handler"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/infrastructure/cache"
	"jobpath/internal/infrastructure/qa"
	"jobpath/internal/pkg/jwt"
	"jobpath/internal/repository"
	"jobpath/internal/usecase"
	"jobpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	cfg := deps.Config

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(deps.DB)
	bookmarkRepo := repository.NewPostgresBookmarkRepository(deps.DB)
	applicationRepo := repository.NewPostgresApplicationRepository(deps.DB)
	companyRepo := repository.NewPostgresCompanyRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)

	remoteQA := qa.NewClient(cfg.Chatbot.RemoteURL, cfg.Chatbot.RemoteToken, cfg.Chatbot.Timeout)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	skillUC := usecase.NewSkillCatalogUsecase(skillRepo)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, userSkillRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, jobSkillRepo, deps.Cache)
	recommendationUC := usecase.NewRecommendationUsecase(jobRepo, jobSkillRepo, userSkillRepo)
	bookmarkUC := usecase.NewBookmarkUsecase(bookmarkRepo, jobRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	insightUC := usecase.NewResumeInsightUsecase(userSkillRepo, jobSkillRepo, jobRepo, profileUC)
	chatbotUC := usecase.NewChatbotUsecase(remoteQA, deps.Cache, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	userSkillHandler := handler.NewUserSkillHandler(userSkillUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	jobHandler := handler.NewJobHandler(jobUC)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	companyHandler := handler.NewCompanyHandler(companyUC)
	insightHandler := handler.NewResumeInsightHandler(insightUC)
	chatbotHandler := handler.NewChatbotHandler(chatbotUC)
	wsHandler := ws.NewHandler(deps.Hub, chatbotUC, deps.Logger)

	authHandler.RegisterRoutes(r.Group("/auth"))

	// Everything under the user's own account requires a valid access token.
	protected := r.Group("", authMw.Middleware())

	// /jobs/recommendations must be registered before the public /jobs/:id
	// wildcard.
	recommendationHandler.RegisterRoutes(protected)

	// Public catalog and browse surface.
	skillHandler.RegisterRoutes(r)
	jobHandler.RegisterRoutes(r)
	companyHandler.RegisterRoutes(r)
	chatbotHandler.RegisterRoutes(r)
	r.Get("/chat/ws", wsHandler.HandleChatWS)

	userSkillHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	bookmarkHandler.RegisterRoutes(protected)
	applicationHandler.RegisterRoutes(protected)
	insightHandler.RegisterRoutes(protected)
}
