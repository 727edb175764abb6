package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ekovaleva/goals-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestBoardRepository_DeleteCascade_SingleTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `boards` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `goal_categories` SET").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `goals` SET").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_DeleteCascade_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	boom := errors.New("category update failed")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `boards` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `goal_categories` SET").
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.DeleteCascade(1)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ReplaceParticipants_SingleTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `board_participants` WHERE board_id").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `board_participants`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `boards` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceParticipants(1, 10, []models.BoardParticipant{
		{BoardID: 1, UserID: 20, Role: models.RoleReader},
	}, "Renamed")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ReplaceParticipants_EmptyRosterSkipsInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `board_participants` WHERE board_id").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceParticipants(1, 10, nil, ""))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ReplaceParticipants_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	boom := errors.New("duplicate participant")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `board_participants` WHERE board_id").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `board_participants`").
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.ReplaceParticipants(1, 10, []models.BoardParticipant{
		{BoardID: 1, UserID: 20, Role: models.RoleWriter},
	}, "")
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateWithOwner_SingleTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `boards`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `board_participants`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	board := &models.Board{Title: "Sprint 1"}
	require.NoError(t, repo.CreateWithOwner(board, 10))
	require.NoError(t, mock.ExpectationsWereMet())
	require.EqualValues(t, 5, board.ID)
}
