package reaction

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/blognoitro/core/internal/models"
	mysqldriver "github.com/go-sql-driver/mysql"
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

func expectPostExists(mock sqlmock.Sqlmock, postID string) {
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `posts`").
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
}

func expectRecompute(mock sqlmock.Sqlmock, postID string, likes, comments int64) {
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reactions`").
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(likes))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `comments`").
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(comments))
	mock.ExpectExec("UPDATE `posts` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestToggle_MissingFields(t *testing.T) {
	db, _ := setupMockDB(t)
	svc := NewService(db)

	_, err := svc.Toggle("", "a1", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Toggle("p1", "  ", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestToggle_PostMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `posts`").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := svc.Toggle("gone", "a1", "")
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_AddsWhenAbsent(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	expectPostExists(mock, "p1")
	mock.ExpectQuery("SELECT \\* FROM `reactions`").
		WithArgs("p1", "a1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `reactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	expectRecompute(mock, "p1", 1, 0)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reactions`").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	result, err := svc.Toggle("p1", "a1", "")
	require.NoError(t, err)
	assert.True(t, result.Added)
	assert.Equal(t, int64(1), result.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_RemovesWhenPresent(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	expectPostExists(mock, "p1")
	mock.ExpectQuery("SELECT \\* FROM `reactions`").
		WithArgs("p1", "a1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "post_id", "author_id", "created_at"}).
			AddRow("r1", models.ReactionTypeLike, "p1", "a1", time.Now()))
	mock.ExpectExec("DELETE FROM `reactions`").
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectRecompute(mock, "p1", 0, 0)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reactions`").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	result, err := svc.Toggle("p1", "a1", "")
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.Equal(t, int64(0), result.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggle_DuplicateInsertRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	// a racing add slipped in between the existence check and the insert;
	// the unique index rejects the duplicate and the whole transaction
	// rolls back, leaving the counter untouched
	mock.ExpectBegin()
	expectPostExists(mock, "p1")
	mock.ExpectQuery("SELECT \\* FROM `reactions`").
		WithArgs("p1", "a1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `reactions`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'p1-a1' for key 'uniq_reaction_post_author'"})
	mock.ExpectRollback()

	result, err := svc.Toggle("p1", "a1", "")
	assert.Nil(t, result)
	var mysqlErr *mysqldriver.MySQLError
	require.ErrorAs(t, err, &mysqlErr)
	assert.Equal(t, uint16(1062), mysqlErr.Number)
	// no UPDATE `posts` was expected: the counter recompute never ran
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusForPost(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT type, COUNT\\(\\*\\) AS count FROM `reactions`").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}).
			AddRow(models.ReactionTypeLike, 3))
	mock.ExpectQuery("SELECT \\* FROM `reactions`").
		WithArgs("p1", "a1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "post_id", "author_id"}).
			AddRow("r1", models.ReactionTypeLike, "p1", "a1"))

	st, err := svc.StatusForPost("p1", "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalCount)
	assert.Equal(t, int64(3), st.Counts[models.ReactionTypeLike])
	assert.True(t, st.HasUserReacted)
	assert.Equal(t, models.ReactionTypeLike, st.UserReaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusForPost_NoUserReaction(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT type, COUNT\\(\\*\\) AS count FROM `reactions`").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}))
	mock.ExpectQuery("SELECT \\* FROM `reactions`").
		WithArgs("p1", "a2", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	st, err := svc.StatusForPost("p1", "a2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.TotalCount)
	assert.False(t, st.HasUserReacted)
	assert.Empty(t, st.UserReaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
