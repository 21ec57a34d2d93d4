package post

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blognoitro/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func postRow(id, authorID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "category", "author_id", "status", "created_at"}).
		AddRow(id, "Canh chua cá lóc", "Nội dung", models.CategoryCooking, authorID, "published", time.Now())
}

func TestServiceCreate_Validation(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewService(db)

	tests := []struct {
		name     string
		dto      CreatePostDTO
		authorID string
	}{
		{name: "missing title", dto: CreatePostDTO{Content: "x", Category: models.CategoryCooking}, authorID: "a1"},
		{name: "missing content", dto: CreatePostDTO{Title: "x", Category: models.CategoryCooking}, authorID: "a1"},
		{name: "missing category", dto: CreatePostDTO{Title: "x", Content: "y"}, authorID: "a1"},
		{name: "missing author", dto: CreatePostDTO{Title: "x", Content: "y", Category: models.CategoryCooking}},
		{name: "unknown category", dto: CreatePostDTO{Title: "x", Content: "y", Category: "sports"}, authorID: "a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := svc.Create(&tt.dto, tt.authorID)
			assert.Nil(t, post)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestServiceCreate_DerivesExcerptAndTags(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `posts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	post, err := svc.Create(&CreatePostDTO{
		Title:    "Mẹo nấu canh chua",
		Content:  "Nội dung bài viết.",
		Category: models.CategoryCooking,
		Hashtags: "#nấuăn, #mẹo",
	}, "author-1")

	require.NoError(t, err)
	assert.Equal(t, "Nội dung bài viết.", post.Excerpt)
	assert.Equal(t, models.StringArray{"nấuăn", "mẹo"}, post.Tags)
	assert.Equal(t, models.StatusPublished, post.Status)
	assert.NotEmpty(t, post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceGet_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `posts`").
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := svc.Get("missing")
	assert.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceUpdate_ForbiddenForOtherAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `posts`").
		WithArgs("p1", 1).
		WillReturnRows(postRow("p1", "owner"))

	title := "Tiêu đề mới"
	post, err := svc.Update("p1", &UpdatePostDTO{Title: &title}, "intruder")

	assert.Nil(t, post)
	assert.ErrorIs(t, err, ErrForbidden)
	// no UPDATE must have been issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceUpdate_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `posts`").
		WithArgs("gone", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := svc.Update("gone", &UpdatePostDTO{}, "anyone")
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestServiceDelete_CascadesChildren(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `posts`").
		WithArgs("p1", 1).
		WillReturnRows(postRow("p1", "owner"))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `comments`").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `reactions`").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `posts`").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	found, err := svc.Delete("p1", "owner")
	assert.True(t, found)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceDelete_Forbidden(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `posts`").
		WithArgs("p1", 1).
		WillReturnRows(postRow("p1", "owner"))

	found, err := svc.Delete("p1", "intruder")
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceIncrementViews(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `posts` SET `views`=views \\+ 1").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, svc.IncrementViews("p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecomputeCounters(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reactions`").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `comments`").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `posts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, RecomputeCounters(db, "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
