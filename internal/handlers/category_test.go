package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/constants"
	"github.com/ekovaleva/goals-api/internal/dto"
	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/repository"
	"github.com/ekovaleva/goals-api/internal/services"
)

type categoryTestEnv struct {
	db      *gorm.DB
	handler *CategoryHandler

	owner  *models.User
	reader *models.User

	board *models.Board
}

func setupCategoryTestEnv(t *testing.T) *categoryTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardParticipant{},
		&models.GoalCategory{},
		&models.Goal{},
	)
	require.NoError(t, err)

	boardRepo := repository.NewBoardRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	categoryService := services.NewCategoryService(categoryRepo, boardRepo)

	env := &categoryTestEnv{
		db:      db,
		handler: NewCategoryHandler(categoryService),
	}

	env.owner = &models.User{Username: "alice", PasswordHash: "hashed"}
	require.NoError(t, db.Create(env.owner).Error)
	env.reader = &models.User{Username: "carol", PasswordHash: "hashed"}
	require.NoError(t, db.Create(env.reader).Error)

	env.board = &models.Board{Title: "Sprint 1"}
	require.NoError(t, db.Create(env.board).Error)
	for _, p := range []models.BoardParticipant{
		{BoardID: env.board.ID, UserID: env.owner.ID, Role: models.RoleOwner},
		{BoardID: env.board.ID, UserID: env.reader.ID, Role: models.RoleReader},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

func (env *categoryTestEnv) request(t *testing.T, userID uint64, method string, body any, id uint64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, "/api/categories", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(constants.ContextKeyUserID, userID)
	if id != 0 {
		c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
	}

	return c, w
}

func TestCategoryHandler_Create(t *testing.T) {
	env := setupCategoryTestEnv(t)

	c, w := env.request(t, env.owner.ID, http.MethodPost, map[string]any{
		"title": "Backend",
		"board": env.board.ID,
	}, 0)

	env.handler.CreateCategory(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Backend", response.Title)
	require.Equal(t, env.board.ID, response.BoardID)
}

func TestCategoryHandler_Create_ReaderForbidden(t *testing.T) {
	env := setupCategoryTestEnv(t)

	c, w := env.request(t, env.reader.ID, http.MethodPost, map[string]any{
		"title": "Backend",
		"board": env.board.ID,
	}, 0)

	env.handler.CreateCategory(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCategoryHandler_Create_DeletedBoard(t *testing.T) {
	env := setupCategoryTestEnv(t)
	require.NoError(t, env.db.Model(env.board).Update("is_deleted", true).Error)

	c, w := env.request(t, env.owner.ID, http.MethodPost, map[string]any{
		"title": "Backend",
		"board": env.board.ID,
	}, 0)

	env.handler.CreateCategory(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryHandler_Get_DeletedInvisible(t *testing.T) {
	env := setupCategoryTestEnv(t)

	category := &models.GoalCategory{Title: "Backend", BoardID: env.board.ID, UserID: env.owner.ID, IsDeleted: true}
	require.NoError(t, env.db.Create(category).Error)

	c, w := env.request(t, env.owner.ID, http.MethodGet, nil, category.ID)
	env.handler.GetCategory(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryHandler_Update_Rename(t *testing.T) {
	env := setupCategoryTestEnv(t)

	category := &models.GoalCategory{Title: "Backend", BoardID: env.board.ID, UserID: env.owner.ID}
	require.NoError(t, env.db.Create(category).Error)

	c, w := env.request(t, env.owner.ID, http.MethodPatch, map[string]any{
		"title": "Platform",
	}, category.ID)
	env.handler.UpdateCategory(c)

	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.GoalCategory
	require.NoError(t, env.db.First(&reloaded, category.ID).Error)
	require.Equal(t, "Platform", reloaded.Title)
}

func TestCategoryHandler_Update_ReaderForbidden(t *testing.T) {
	env := setupCategoryTestEnv(t)

	category := &models.GoalCategory{Title: "Backend", BoardID: env.board.ID, UserID: env.owner.ID}
	require.NoError(t, env.db.Create(category).Error)

	c, w := env.request(t, env.reader.ID, http.MethodPatch, map[string]any{
		"title": "Hijacked",
	}, category.ID)
	env.handler.UpdateCategory(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCategoryHandler_List_ScopedToBoards(t *testing.T) {
	env := setupCategoryTestEnv(t)

	mine := &models.GoalCategory{Title: "Backend", BoardID: env.board.ID, UserID: env.owner.ID}
	require.NoError(t, env.db.Create(mine).Error)

	other := &models.User{Username: "eve", PasswordHash: "hashed"}
	require.NoError(t, env.db.Create(other).Error)
	foreignBoard := &models.Board{Title: "Foreign"}
	require.NoError(t, env.db.Create(foreignBoard).Error)
	require.NoError(t, env.db.Create(&models.BoardParticipant{
		BoardID: foreignBoard.ID, UserID: other.ID, Role: models.RoleOwner,
	}).Error)
	require.NoError(t, env.db.Create(&models.GoalCategory{
		Title: "Hidden", BoardID: foreignBoard.ID, UserID: other.ID,
	}).Error)

	c, w := env.request(t, env.owner.ID, http.MethodGet, nil, 0)
	env.handler.ListCategories(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CategoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Categories, 1)
	require.Equal(t, "Backend", response.Categories[0].Title)
}
