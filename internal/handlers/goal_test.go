package handlers

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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/constants"
	"github.com/ekovaleva/goals-api/internal/dto"
	"github.com/ekovaleva/goals-api/internal/models"
	"github.com/ekovaleva/goals-api/internal/repository"
	"github.com/ekovaleva/goals-api/internal/services"
)

type GoalHandlerTestSuite struct {
	suite.Suite
	db              *gorm.DB
	handler         *GoalHandler
	categoryHandler *CategoryHandler

	owner  *models.User
	reader *models.User

	board    *models.Board
	category *models.GoalCategory
}

func (s *GoalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardParticipant{},
		&models.GoalCategory{},
		&models.Goal{},
		&models.GoalComment{},
	)
	s.Require().NoError(err)

	s.db = db

	boardRepo := repository.NewBoardRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	goalService := services.NewGoalService(goalRepo, categoryRepo, boardRepo)
	categoryService := services.NewCategoryService(categoryRepo, boardRepo)
	s.handler = NewGoalHandler(goalService)
	s.categoryHandler = NewCategoryHandler(categoryService)

	s.owner = &models.User{Username: "alice", PasswordHash: "hashed"}
	s.Require().NoError(db.Create(s.owner).Error)
	s.reader = &models.User{Username: "dave", PasswordHash: "hashed"}
	s.Require().NoError(db.Create(s.reader).Error)

	s.board = &models.Board{Title: "Sprint 1"}
	s.Require().NoError(db.Create(s.board).Error)
	s.Require().NoError(db.Create(&models.BoardParticipant{
		BoardID: s.board.ID, UserID: s.owner.ID, Role: models.RoleOwner,
	}).Error)
	s.Require().NoError(db.Create(&models.BoardParticipant{
		BoardID: s.board.ID, UserID: s.reader.ID, Role: models.RoleReader,
	}).Error)

	s.category = &models.GoalCategory{Title: "Backend", BoardID: s.board.ID, UserID: s.owner.ID}
	s.Require().NoError(db.Create(s.category).Error)
}

func (s *GoalHandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *GoalHandlerTestSuite) createGoal(title string, categoryID uint64) *models.Goal {
	goal := &models.Goal{
		Title:      title,
		CategoryID: categoryID,
		UserID:     s.owner.ID,
		Status:     models.GoalStatusTodo,
		Priority:   models.GoalPriorityMedium,
	}
	s.Require().NoError(s.db.Create(goal).Error)
	return goal
}

func (s *GoalHandlerTestSuite) request(userID uint64, method, rawQuery string, body any, id uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	url := "/api/goals"
	if rawQuery != "" {
		url += "?" + rawQuery
	}
	c.Request = httptest.NewRequest(method, url, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(constants.ContextKeyUserID, userID)
	if id != 0 {
		c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
	}

	return c, w
}

func (s *GoalHandlerTestSuite) TestCreateGoal_Defaults() {
	c, w := s.request(s.owner.ID, http.MethodPost, "", map[string]any{
		"title":    "Fix login bug",
		"category": s.category.ID,
	}, 0)

	s.handler.CreateGoal(c)

	s.Require().Equal(http.StatusCreated, w.Code)

	var response dto.GoalDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(models.GoalStatusTodo, response.Status)
	s.Equal(models.GoalPriorityMedium, response.Priority)
	s.Nil(response.DueDate)
}

func (s *GoalHandlerTestSuite) TestCreateGoal_PastDueDate() {
	past := time.Now().Add(-48 * time.Hour)

	c, w := s.request(s.owner.ID, http.MethodPost, "", map[string]any{
		"title":    "Time travel",
		"category": s.category.ID,
		"due_date": past.Format(time.RFC3339),
	}, 0)

	s.handler.CreateGoal(c)

	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "due_date")
}

func (s *GoalHandlerTestSuite) TestCreateGoal_DeletedCategory() {
	s.Require().NoError(s.db.Model(s.category).Update("is_deleted", true).Error)

	c, w := s.request(s.owner.ID, http.MethodPost, "", map[string]any{
		"title":    "Orphan",
		"category": s.category.ID,
	}, 0)

	s.handler.CreateGoal(c)

	s.Require().Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "category")
}

func (s *GoalHandlerTestSuite) TestCreateGoal_ReaderForbidden() {
	c, w := s.request(s.reader.ID, http.MethodPost, "", map[string]any{
		"title":    "Not allowed",
		"category": s.category.ID,
	}, 0)

	s.handler.CreateGoal(c)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *GoalHandlerTestSuite) TestCreateGoal_ArchivedStatusRejected() {
	c, w := s.request(s.owner.ID, http.MethodPost, "", map[string]any{
		"title":    "Born dead",
		"category": s.category.ID,
		"status":   "archived",
	}, 0)

	s.handler.CreateGoal(c)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *GoalHandlerTestSuite) TestGetGoal_ArchivedInvisible() {
	goal := s.createGoal("Old goal", s.category.ID)
	s.Require().NoError(s.db.Model(goal).Update("status", models.GoalStatusArchived).Error)

	c, w := s.request(s.owner.ID, http.MethodGet, "", nil, goal.ID)

	s.handler.GetGoal(c)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GoalHandlerTestSuite) TestUpdateGoal_StatusTransition() {
	goal := s.createGoal("Fix login bug", s.category.ID)

	c, w := s.request(s.owner.ID, http.MethodPatch, "", map[string]any{
		"status": "done",
	}, goal.ID)

	s.handler.UpdateGoal(c)

	s.Require().Equal(http.StatusOK, w.Code)

	var response dto.GoalDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(models.GoalStatusDone, response.Status)
}

func (s *GoalHandlerTestSuite) TestUpdateGoal_ArchivedStatusRejected() {
	goal := s.createGoal("Fix login bug", s.category.ID)

	c, w := s.request(s.owner.ID, http.MethodPatch, "", map[string]any{
		"status": "archived",
	}, goal.ID)

	s.handler.UpdateGoal(c)

	s.Equal(http.StatusBadRequest, w.Code)

	var reloaded models.Goal
	s.Require().NoError(s.db.First(&reloaded, goal.ID).Error)
	s.Equal(models.GoalStatusTodo, reloaded.Status)
}

func (s *GoalHandlerTestSuite) TestUpdateGoal_ReaderForbidden() {
	goal := s.createGoal("Fix login bug", s.category.ID)

	c, w := s.request(s.reader.ID, http.MethodPatch, "", map[string]any{
		"title": "Hijacked",
	}, goal.ID)

	s.handler.UpdateGoal(c)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *GoalHandlerTestSuite) TestUpdateGoal_ClearDueDate() {
	due := time.Now().Add(7 * 24 * time.Hour)
	goal := s.createGoal("Fix login bug", s.category.ID)
	s.Require().NoError(s.db.Model(goal).Update("due_date", due).Error)

	c, w := s.request(s.owner.ID, http.MethodPatch, "", map[string]any{
		"due_date": nil,
	}, goal.ID)

	s.handler.UpdateGoal(c)

	s.Require().Equal(http.StatusOK, w.Code)

	var reloaded models.Goal
	s.Require().NoError(s.db.First(&reloaded, goal.ID).Error)
	s.Nil(reloaded.DueDate)
}

func (s *GoalHandlerTestSuite) TestDeleteGoal_Archives() {
	goal := s.createGoal("Fix login bug", s.category.ID)

	c, w := s.request(s.owner.ID, http.MethodDelete, "", nil, goal.ID)
	s.handler.DeleteGoal(c)
	c.Writer.WriteHeaderNow()
	s.Require().Equal(http.StatusNoContent, w.Code)

	var reloaded models.Goal
	s.Require().NoError(s.db.First(&reloaded, goal.ID).Error)
	s.Equal(models.GoalStatusArchived, reloaded.Status)

	// Archived goals disappear from detail
	c, w = s.request(s.owner.ID, http.MethodGet, "", nil, goal.ID)
	s.handler.GetGoal(c)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GoalHandlerTestSuite) TestDeleteCategory_ArchivesGoals() {
	goal := s.createGoal("Fix login bug", s.category.ID)
	other := s.createGoal("Unrelated", s.category.ID)

	keep := &models.GoalCategory{Title: "Frontend", BoardID: s.board.ID, UserID: s.owner.ID}
	s.Require().NoError(s.db.Create(keep).Error)
	kept := s.createGoal("Stays visible", keep.ID)

	c, w := s.request(s.owner.ID, http.MethodDelete, "", nil, s.category.ID)
	s.categoryHandler.DeleteCategory(c)
	c.Writer.WriteHeaderNow()
	s.Require().Equal(http.StatusNoContent, w.Code)

	for _, id := range []uint64{goal.ID, other.ID} {
		var reloaded models.Goal
		s.Require().NoError(s.db.First(&reloaded, id).Error)
		s.Equal(models.GoalStatusArchived, reloaded.Status)
	}

	var untouched models.Goal
	s.Require().NoError(s.db.First(&untouched, kept.ID).Error)
	s.Equal(models.GoalStatusTodo, untouched.Status)

	// The list now only shows the surviving category's goal
	c, w = s.request(s.owner.ID, http.MethodGet, "", nil, 0)
	s.handler.ListGoals(c)
	s.Require().Equal(http.StatusOK, w.Code)

	var response dto.GoalListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().Len(response.Goals, 1)
	s.Equal("Stays visible", response.Goals[0].Title)
}

func (s *GoalHandlerTestSuite) TestListGoals_Filters() {
	s.createGoal("Fix login bug", s.category.ID)
	s.createGoal("Add dashboard", s.category.ID)

	archived := s.createGoal("Archived noise", s.category.ID)
	s.Require().NoError(s.db.Model(archived).Update("status", models.GoalStatusArchived).Error)

	c, w := s.request(s.owner.ID, http.MethodGet, "search=login", nil, 0)
	s.handler.ListGoals(c)
	s.Require().Equal(http.StatusOK, w.Code)

	var response dto.GoalListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().Len(response.Goals, 1)
	s.Equal("Fix login bug", response.Goals[0].Title)

	c, w = s.request(s.owner.ID, http.MethodGet, "", nil, 0)
	s.handler.ListGoals(c)
	s.Require().Equal(http.StatusOK, w.Code)

	response = dto.GoalListResponse{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response.Goals, 2)
	s.EqualValues(2, response.Pagination.Total)
}

func (s *GoalHandlerTestSuite) TestListGoals_DueDateRange() {
	near := s.createGoal("Due soon", s.category.ID)
	s.Require().NoError(s.db.Model(near).Update("due_date", time.Now().Add(24*time.Hour)).Error)

	far := s.createGoal("Due later", s.category.ID)
	s.Require().NoError(s.db.Model(far).Update("due_date", time.Now().Add(30*24*time.Hour)).Error)

	from := time.Now().UTC().Format(time.RFC3339)
	to := time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339)

	c, w := s.request(s.owner.ID, http.MethodGet, "due_date_from="+from+"&due_date_to="+to, nil, 0)
	s.handler.ListGoals(c)
	s.Require().Equal(http.StatusOK, w.Code)

	var response dto.GoalListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().Len(response.Goals, 1)
	s.Equal("Due soon", response.Goals[0].Title)
}

func TestGoalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GoalHandlerTestSuite))
}
