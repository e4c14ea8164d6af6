package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskaura-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestProjectRepository_DeleteRemovesTasksFirst(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks` WHERE project_id = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `projects` WHERE `projects`.`id` = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewProjectRepository(db).Delete(5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_DeleteRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks` WHERE project_id = ?")).
		WithArgs(uint64(5)).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := NewProjectRepository(db).Delete(5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_LockByIDSelectsForUpdate(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "user_id"}).
		AddRow(3, "Launch", "", 7)
	mock.ExpectQuery("SELECT \\* FROM `projects` WHERE `projects`.`id` = \\? .*FOR UPDATE").
		WillReturnRows(rows)

	project, err := NewProjectRepository(db).LockByID(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), project.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `projects`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewUnitOfWork(db).Do(context.Background(), func(repos Repositories) error {
		if err := repos.Projects.Create(&models.Project{Title: "p", UserID: 1}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// RepositoryTestSuite exercises the repositories against SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	repos    Repositories
	owner    *models.User
	stranger *models.User
}

// SetupTest runs before each test
func (suite *RepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	suite.repos = NewRepositories(suite.db)

	suite.owner = &models.User{Email: "owner@example.com", Username: "owner", PasswordHash: "x"}
	suite.Require().NoError(suite.repos.Users.Create(suite.owner))
	suite.stranger = &models.User{Email: "stranger@example.com", Username: "stranger", PasswordHash: "x"}
	suite.Require().NoError(suite.repos.Users.Create(suite.stranger))
}

// TearDownTest runs after each test
func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) createProject(userID uint64, title string, createdAt time.Time) *models.Project {
	project := &models.Project{Title: title, UserID: userID, CreatedAt: createdAt}
	suite.Require().NoError(suite.repos.Projects.Create(project))
	return project
}

func (suite *RepositoryTestSuite) countTasks(projectID uint64) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error)
	return count
}

func (suite *RepositoryTestSuite) TestList_PageBeyondEndIsEmpty() {
	for i := 0; i < 4; i++ {
		suite.createProject(suite.owner.ID, fmt.Sprintf("p%d", i), time.Now())
	}

	for _, page := range []int{1, 3074457345618258603, math.MaxInt} {
		projects, total, err := suite.repos.Projects.List(ProjectFilter{UserID: suite.owner.ID, Page: page, PageSize: 6})
		suite.Require().NoError(err)
		suite.Equal(int64(4), total)
		suite.Empty(projects, "page %d", page)
	}
}

func (suite *RepositoryTestSuite) TestList_FiltersOrdersAndPreloads() {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	older := suite.createProject(suite.owner.ID, "Alpha Plan", base)
	newer := suite.createProject(suite.owner.ID, "alpha release", base.Add(time.Minute))
	suite.createProject(suite.owner.ID, "Beta", base.Add(2*time.Minute))
	suite.createProject(suite.stranger.ID, "Alpha elsewhere", base.Add(3*time.Minute))

	suite.Require().NoError(suite.repos.Tasks.Create(&models.Task{Title: "t1", ProjectID: newer.ID, Completed: true}))
	suite.Require().NoError(suite.repos.Tasks.Create(&models.Task{Title: "t2", ProjectID: newer.ID}))

	projects, total, err := suite.repos.Projects.List(ProjectFilter{
		UserID:   suite.owner.ID,
		Search:   "ALPHA",
		Page:     0,
		PageSize: 10,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(projects, 2)
	suite.Equal(newer.ID, projects[0].ID)
	suite.Equal(older.ID, projects[1].ID)
	suite.Require().Len(projects[0].Tasks, 2)
	suite.Equal("t1", projects[0].Tasks[0].Title)
	suite.Empty(projects[1].Tasks)
}

func (suite *RepositoryTestSuite) TestList_Empty() {
	projects, total, err := suite.repos.Projects.List(ProjectFilter{UserID: suite.owner.ID, PageSize: 6})
	suite.Require().NoError(err)
	suite.Zero(total)
	suite.NotNil(projects)
	suite.Empty(projects)
}

func (suite *RepositoryTestSuite) TestList_SameTimestampOrdersByID() {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	first := suite.createProject(suite.owner.ID, "one", at)
	second := suite.createProject(suite.owner.ID, "two", at)

	projects, _, err := suite.repos.Projects.List(ProjectFilter{UserID: suite.owner.ID, PageSize: 1})
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Equal(second.ID, projects[0].ID)

	projects, _, err = suite.repos.Projects.List(ProjectFilter{UserID: suite.owner.ID, Page: 1, PageSize: 1})
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Equal(first.ID, projects[0].ID)
}

func (suite *RepositoryTestSuite) TestTasks_ListAndLock() {
	project := suite.createProject(suite.owner.ID, "p", time.Now())
	for _, title := range []string{"a", "b", "c"} {
		suite.Require().NoError(suite.repos.Tasks.Create(&models.Task{Title: title, ProjectID: project.ID}))
	}

	tasks, err := suite.repos.Tasks.ListByProject(project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)
	suite.Equal("a", tasks[0].Title)
	suite.Equal("c", tasks[2].Title)

	suite.Equal(int64(3), suite.countTasks(project.ID))

	locked, err := suite.repos.Tasks.LockByID(tasks[1].ID)
	suite.Require().NoError(err)
	suite.Equal(suite.owner.ID, locked.Project.UserID)
}

func (suite *RepositoryTestSuite) TestTaskUpdate_LeavesProjectUntouched() {
	project := suite.createProject(suite.owner.ID, "Original", time.Now())
	task := &models.Task{Title: "t", ProjectID: project.ID}
	suite.Require().NoError(suite.repos.Tasks.Create(task))

	locked, err := suite.repos.Tasks.LockByID(task.ID)
	suite.Require().NoError(err)
	locked.Title = "renamed"
	locked.Project.Title = "Mutated"
	suite.Require().NoError(suite.repos.Tasks.Update(locked))

	stored, err := suite.repos.Projects.FindByID(project.ID)
	suite.Require().NoError(err)
	suite.Equal("Original", stored.Title)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal("renamed", reloaded.Title)
}

func (suite *RepositoryTestSuite) TestProjectDelete_Cascades() {
	project := suite.createProject(suite.owner.ID, "p", time.Now())
	suite.Require().NoError(suite.repos.Tasks.Create(&models.Task{Title: "t", ProjectID: project.ID}))

	suite.Require().NoError(suite.repos.Projects.Delete(project.ID))

	suite.Zero(suite.countTasks(project.ID))

	_, err := suite.repos.Projects.FindByID(project.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestUsers_FindAndExists() {
	exists, err := suite.repos.Users.ExistsByEmail("owner@example.com")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.repos.Users.ExistsByEmail("ghost@example.com")
	suite.Require().NoError(err)
	suite.False(exists)

	user, err := suite.repos.Users.FindByEmail("stranger@example.com")
	suite.Require().NoError(err)
	suite.Equal(suite.stranger.ID, user.ID)

	_, err = suite.repos.Users.FindByID(12345)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestRepositoryTestSuite runs the test suite
func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
