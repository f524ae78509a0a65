package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"forum-api/config"
	"forum-api/handlers"
	"forum-api/middleware"
	"forum-api/models"
	"forum-api/repositories"
	"forum-api/services"
)

const testPassword = "password123"

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *IntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		suite.T().Fatal("failed to open test database:", err)
	}
	if err := config.Migrate(db); err != nil {
		suite.T().Fatal("failed to migrate test database:", err)
	}
	suite.db = db
	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	db := suite.db

	userRepo := repositories.NewUserRepository(db)
	permissionRepo := repositories.NewPermissionRepository(db)
	moderationRepo := repositories.NewModerationRepository(db)
	topicRepo := repositories.NewTopicRepository(db)
	postRepo := repositories.NewPostRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	authService := services.NewAuthService(userRepo)
	permissionService := services.NewPermissionService(userRepo, permissionRepo)
	moderationService := services.NewModerationService(userRepo, moderationRepo, permissionService)
	notificationService := services.NewNotificationService(notificationRepo, followRepo, userRepo)
	topicService := services.NewTopicService(topicRepo, tagRepo, categoryRepo, followRepo, userRepo, permissionService)
	postService := services.NewPostService(postRepo, topicRepo, permissionService, notificationService)
	reportService := services.NewReportService(reportRepo, postRepo, userRepo, notificationService)

	authHandler := handlers.NewAuthHandler(authService, nil)
	userHandler := handlers.NewUserHandler(permissionService, topicService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	topicHandler := handlers.NewTopicHandler(topicService)
	postHandler := handlers.NewPostHandler(postService)
	reportHandler := handlers.NewReportHandler(reportService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	router := gin.New()
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(userRepo, moderationService))
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/topics", topicHandler.GetList)
	protected.GET("/reports", reportHandler.GetList)
	protected.GET("/notifications", notificationHandler.GetList)

	mutating := v1.Group("/")
	mutating.Use(middleware.AuthMiddleware(userRepo, moderationService), middleware.RequireNotBanned())
	mutating.POST("/topics", topicHandler.Create)
	mutating.POST("/posts", postHandler.Create)
	mutating.POST("/users/:id/ban", moderationHandler.Ban)
	mutating.POST("/users/:id/unban", moderationHandler.Unban)
	mutating.POST("/reports", reportHandler.File)
	mutating.PUT("/reports/:id/status", reportHandler.SetStatus)

	admin := v1.Group("/")
	admin.Use(middleware.AuthMiddleware(userRepo, moderationService), middleware.RequireRole(models.RoleAdmin))
	admin.PUT("/users/:id/role", userHandler.SetRole)
	admin.PUT("/users/:id/permissions", userHandler.SetPermissions)

	suite.router = router
}

func (suite *IntegrationTestSuite) createUser(username string, role models.UserRole) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *IntegrationTestSuite) login(user *models.User) string {
	body := map[string]string{"email": user.Email, "password": testPassword}
	w := suite.request(http.MethodPost, "/api/v1/auth/login", "", body)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotEmpty(response.Data.Token)
	return response.Data.Token
}

func (suite *IntegrationTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) TestBanBlocksMutationsUntilUnban() {
	admin := suite.createUser("ban_admin", models.RoleAdmin)
	enforcer := suite.createUser("ban_enforcer", models.RoleUser)
	target := suite.createUser("ban_target", models.RoleUser)

	adminToken := suite.login(admin)

	// Granting can_ban_users promotes the enforcer to moderator.
	w := suite.request(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/permissions", enforcer.ID),
		adminToken, map[string]bool{"can_ban_users": true})
	suite.Equal(http.StatusOK, w.Code)

	enforcerToken := suite.login(enforcer)
	targetToken := suite.login(target)

	// Permanent ban: days omitted.
	w = suite.request(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/ban", target.ID),
		enforcerToken, map[string]interface{}{"reason": "repeated spam"})
	suite.Equal(http.StatusCreated, w.Code)

	// Banned caller is rejected uniformly on mutating routes.
	w = suite.request(http.MethodPost, "/api/v1/topics", targetToken,
		map[string]interface{}{"title": "blocked topic"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "user is banned")

	// Reads still work.
	w = suite.request(http.MethodGet, "/api/v1/topics", targetToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/unban", target.ID),
		enforcerToken, map[string]interface{}{"reason": "appeal accepted"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/topics", targetToken,
		map[string]interface{}{"title": "allowed topic"})
	suite.Equal(http.StatusCreated, w.Code)

	var records []models.BanRecord
	suite.Require().NoError(suite.db.Where("target_user_id = ?", target.ID).Order("id").Find(&records).Error)
	suite.Require().Len(records, 2)
	suite.Equal(models.ActionBan, records[0].Action)
	suite.Equal(models.ActionUnban, records[1].Action)
}

func (suite *IntegrationTestSuite) TestElapsedBanExpiresOnRequest() {
	target := suite.createUser("expiry_target", models.RoleUser)
	token := suite.login(target)

	past := time.Now().Add(-time.Hour)
	suite.Require().NoError(suite.db.Model(&models.User{}).Where("id = ?", target.ID).
		Updates(map[string]interface{}{"is_banned": true, "banned_until": past}).Error)

	// The first authenticated request clears the elapsed ban.
	w := suite.request(http.MethodPost, "/api/v1/topics", token,
		map[string]interface{}{"title": "back again"})
	suite.Equal(http.StatusCreated, w.Code)

	var stored models.User
	suite.Require().NoError(suite.db.First(&stored, target.ID).Error)
	suite.False(stored.IsBanned)
	suite.Nil(stored.BannedUntil)
}

func (suite *IntegrationTestSuite) TestModeratingAdminIsForbidden() {
	admin := suite.createUser("immune_admin", models.RoleAdmin)
	enforcer := suite.createUser("immune_enforcer", models.RoleModerator)
	suite.Require().NoError(suite.db.Create(&models.ModeratorPermission{
		UserID:      enforcer.ID,
		CanBanUsers: true,
	}).Error)

	token := suite.login(enforcer)
	w := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/ban", admin.ID),
		token, map[string]interface{}{"reason": "power grab"})
	suite.Equal(http.StatusForbidden, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.BanRecord{}).
		Where("target_user_id = ?", admin.ID).Count(&count).Error)
	suite.Zero(count)
}

func (suite *IntegrationTestSuite) TestRoleRoutesAreAdminOnly() {
	mod := suite.createUser("role_mod", models.RoleModerator)
	target := suite.createUser("role_target", models.RoleUser)

	token := suite.login(mod)
	w := suite.request(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", target.ID),
		token, map[string]string{"role": "moderator"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *IntegrationTestSuite) TestReportLifecycleOverHTTP() {
	reporter := suite.createUser("report_reporter", models.RoleUser)
	author := suite.createUser("report_author", models.RoleUser)
	mod := suite.createUser("report_mod", models.RoleModerator)

	authorToken := suite.login(author)
	w := suite.request(http.MethodPost, "/api/v1/topics", authorToken,
		map[string]interface{}{"title": "report fodder"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var topicResponse struct {
		Data models.Topic `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &topicResponse))

	w = suite.request(http.MethodPost, "/api/v1/posts", authorToken,
		map[string]interface{}{"topic_id": topicResponse.Data.ID, "content": "objectionable"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var postResponse struct {
		Data models.Post `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &postResponse))

	reporterToken := suite.login(reporter)
	w = suite.request(http.MethodPost, "/api/v1/reports", reporterToken,
		map[string]interface{}{"post_id": postResponse.Data.ID, "reason": "not ok"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var reportResponse struct {
		Data models.Report `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reportResponse))
	suite.Require().NotNil(reportResponse.Data.TargetUserID)
	suite.Equal(author.ID, *reportResponse.Data.TargetUserID)

	// Reports are staff-only reading.
	w = suite.request(http.MethodGet, "/api/v1/reports", reporterToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	modToken := suite.login(mod)
	w = suite.request(http.MethodGet, "/api/v1/reports", modToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	// The moderator got a fan-out notification for the report.
	w = suite.request(http.MethodGet, "/api/v1/notifications", modToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), string(models.NotifyReport))

	w = suite.request(http.MethodPut, fmt.Sprintf("/api/v1/reports/%d/status", reportResponse.Data.ID),
		modToken, map[string]string{"status": "reviewed"})
	suite.Equal(http.StatusOK, w.Code)

	var stored models.Report
	suite.Require().NoError(suite.db.First(&stored, reportResponse.Data.ID).Error)
	suite.Equal(models.ReportReviewed, stored.Status)
	suite.Require().NotNil(stored.ResolvedByID)
	suite.Equal(mod.ID, *stored.ResolvedByID)
}

func (suite *IntegrationTestSuite) TestInvalidTokenRejected() {
	w := suite.request(http.MethodGet, "/api/v1/profile", "not-a-token", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/profile", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
