package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/core/services"
)

type SnapshotServiceTestSuite struct {
	suite.Suite
	mockSnapshotRepo *MockSnapshotRepository
	service          portssvc.SnapshotSvcFacade
	admin            *domain.User
}

func (suite *SnapshotServiceTestSuite) SetupTest() {
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.service = services.NewSnapshotService(suite.mockSnapshotRepo, 1001)

	suite.admin = &domain.User{UserID: uuid.NewString(), Name: "Admin", Roles: []domain.Role{domain.RoleAdmin}}
}

func balancedSnapshotEntry(doc int64, amount int64) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        uuid.NewString(),
		DocumentNumber: doc,
		Description:    "entry",
		Status:         domain.Posted,
		EntryDate:      time.Now().UTC(),
		Lines: []domain.JournalLine{
			domain.DebitLine(domain.AccountCashOnHand, decimal.NewFromInt(amount), ""),
			domain.CreditLine(domain.AccountTrainingRevenue, decimal.NewFromInt(amount), ""),
		},
	}
}

func (suite *SnapshotServiceTestSuite) TestExport_WrapsDataWithMetadata() {
	ctx := context.Background()
	data := &domain.SnapshotData{
		JournalEntries: []domain.JournalEntry{balancedSnapshotEntry(1001, 500)},
	}

	suite.mockSnapshotRepo.On("ExportAll", ctx).Return(data, nil).Once()

	snapshot, err := suite.service.Export(ctx, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.SnapshotVersion, snapshot.Metadata.Version)
	suite.Equal(suite.admin.UserID, snapshot.Metadata.ExportedBy)
	suite.WithinDuration(time.Now().UTC(), snapshot.Metadata.Timestamp, time.Minute)
	suite.Len(snapshot.Data.JournalEntries, 1)
}

func (suite *SnapshotServiceTestSuite) TestExport_RequiresAdmin() {
	ctx := context.Background()
	member := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}}

	_, err := suite.service.Export(ctx, member)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "ExportAll", ctx)
}

func (suite *SnapshotServiceTestSuite) TestRestore_Success() {
	ctx := context.Background()
	snapshot := &domain.Snapshot{
		Metadata: domain.SnapshotMetadata{
			Timestamp:  time.Now().UTC(),
			Version:    domain.SnapshotVersion,
			ExportedBy: suite.admin.UserID,
		},
		Data: domain.SnapshotData{
			JournalEntries: []domain.JournalEntry{
				balancedSnapshotEntry(1001, 500),
				balancedSnapshotEntry(1002, 750),
			},
		},
	}

	suite.mockSnapshotRepo.On("RestoreAll", ctx, &snapshot.Data, int64(1001)).Return(nil).Once()

	err := suite.service.Restore(ctx, snapshot, suite.admin)

	suite.Require().NoError(err)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestRestore_RejectsVersionMismatch() {
	ctx := context.Background()
	snapshot := &domain.Snapshot{
		Metadata: domain.SnapshotMetadata{Version: "0.9.0"},
	}

	err := suite.service.Restore(ctx, snapshot, suite.admin)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "RestoreAll", ctx, mock.Anything, mock.Anything)
}

func (suite *SnapshotServiceTestSuite) TestRestore_RejectsUnbalancedEntry() {
	ctx := context.Background()
	bad := balancedSnapshotEntry(1001, 500)
	bad.Lines[1].Credit = decimal.NewFromInt(400)
	snapshot := &domain.Snapshot{
		Metadata: domain.SnapshotMetadata{Version: domain.SnapshotVersion},
		Data:     domain.SnapshotData{JournalEntries: []domain.JournalEntry{bad}},
	}

	err := suite.service.Restore(ctx, snapshot, suite.admin)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "RestoreAll", ctx, mock.Anything, mock.Anything)
}

func (suite *SnapshotServiceTestSuite) TestRestore_RequiresAdmin() {
	ctx := context.Background()
	member := &domain.User{UserID: uuid.NewString(), Roles: []domain.Role{domain.RoleClient}}
	snapshot := &domain.Snapshot{Metadata: domain.SnapshotMetadata{Version: domain.SnapshotVersion}}

	err := suite.service.Restore(ctx, snapshot, member)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *SnapshotServiceTestSuite) TestRestore_NilSnapshot() {
	ctx := context.Background()

	err := suite.service.Restore(ctx, nil, suite.admin)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}
