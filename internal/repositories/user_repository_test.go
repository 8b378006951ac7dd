package repositories

import (
	"context"
	"testing"

	"finora-backend/internal/database"
	"finora-backend/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *database.DB
	repo UserStore
}

func (s *UserRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestCreate() {
	user := &models.User{Username: "ana"}

	s.Require().NoError(s.repo.Create(s.ctx, user))
	s.NotZero(user.ID)
	s.NotZero(user.CreatedAt)
}

func (s *UserRepositorySuite) TestCreate_Duplicate() {
	s.Require().NoError(s.repo.Create(s.ctx, &models.User{Username: "ana"}))

	err := s.repo.Create(s.ctx, &models.User{Username: "ana"})
	s.Equal(ErrUserAlreadyExists, err)
}

func (s *UserRepositorySuite) TestGetByIDAndUsername() {
	user := database.CreateTestUser(s.T(), s.db, "ana")

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("ana", found.Username)

	found, err = s.repo.GetByUsername(s.ctx, "ana")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByID(s.ctx, user.ID+1)
	s.Equal(ErrUserNotFound, err)

	_, err = s.repo.GetByUsername(s.ctx, "nadie")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestDelete_CascadesToOwnedTransactions() {
	owner := database.CreateTestUser(s.T(), s.db, "ana")
	other := database.CreateTestUser(s.T(), s.db, "luis")
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{UserID: &owner.ID, Amount: 1})
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{UserID: &owner.ID, Amount: 2})
	kept := database.CreateTestTransaction(s.T(), s.db, &models.Transaction{UserID: &other.ID, Amount: 3})
	anonymous := database.CreateTestTransaction(s.T(), s.db, &models.Transaction{Amount: 4})

	s.Require().NoError(s.repo.Delete(s.ctx, owner.ID))

	var remaining []models.Transaction
	s.Require().NoError(s.db.Order("id").Find(&remaining).Error)
	s.Require().Len(remaining, 2)
	s.Equal(kept.ID, remaining[0].ID)
	s.Equal(anonymous.ID, remaining[1].ID)

	_, err := s.repo.GetByID(s.ctx, owner.ID)
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestDelete_NotFound() {
	s.Equal(ErrUserNotFound, s.repo.Delete(s.ctx, 9))
}
