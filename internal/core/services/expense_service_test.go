package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisaab-app/hisaab-backend/internal/apperrors"
	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	portssvc "github.com/hisaab-app/hisaab-backend/internal/core/ports/services"
	"github.com/hisaab-app/hisaab-backend/internal/core/services"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockGroupRepo   *MockGroupRepository
	service         portssvc.ExpenseSvcFacade
	group           *domain.Group
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockGroupRepo)
	suite.group = &domain.Group{
		GroupID:   "g1",
		Name:      "Flat 4B",
		MemberIDs: []string{"alice", "bob", "carol"},
	}
}

// --- CreateExpense Tests ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_EqualSplit() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:    "Dinner",
		PayerID:        "alice",
		TotalAmount:    dec("300.00"),
		SplitPolicy:    "EQUAL",
		ParticipantIDs: []string{"alice", "bob", "carol"},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "g1", req, "alice")

	suite.Require().NoError(err)
	suite.Require().Len(expense.Participants, 3)
	for _, share := range expense.Participants {
		suite.True(share.Amount.Equal(dec("100.00")))
	}
	// The payer settled their slice the moment they paid the bill.
	suite.True(expense.Participants[0].Paid)
	suite.False(expense.Participants[1].Paid)
	suite.False(expense.Participants[2].Paid)
	suite.Equal(domain.SplitEqual, expense.SplitPolicy)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_CustomSplitMismatchRejected() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description: "Groceries",
		PayerID:     "alice",
		TotalAmount: dec("100.00"),
		SplitPolicy: "CUSTOM",
		Shares: []dto.ExpenseShareInput{
			{MemberID: "alice", Amount: dec("50.00")},
			{MemberID: "bob", Amount: dec("49.98")},
		},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "g1", req, "alice")

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense")
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_PercentageSplit() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description: "Cab",
		PayerID:     "bob",
		TotalAmount: dec("250.00"),
		SplitPolicy: "PERCENTAGE",
		Percentages: []dto.ExpensePercentInput{
			{MemberID: "alice", Percent: dec("60")},
			{MemberID: "bob", Percent: dec("40")},
		},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "g1", req, "bob")

	suite.Require().NoError(err)
	suite.Require().Len(expense.Participants, 2)
	suite.True(expense.Participants[0].Amount.Equal(dec("150.00")))
	suite.True(expense.Participants[1].Amount.Equal(dec("100.00")))
	suite.False(expense.Participants[0].Paid)
	suite.True(expense.Participants[1].Paid)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonMemberParticipantRejected() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:    "Dinner",
		PayerID:        "alice",
		TotalAmount:    dec("300.00"),
		SplitPolicy:    "EQUAL",
		ParticipantIDs: []string{"alice", "mallory"},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "g1", req, "alice")

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonMemberPayerRejected() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:    "Dinner",
		PayerID:        "mallory",
		TotalAmount:    dec("300.00"),
		SplitPolicy:    "EQUAL",
		ParticipantIDs: []string{"alice", "bob"},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "g1", req, "alice")

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_CreatorMustBeMember() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Description:    "Dinner",
		PayerID:        "alice",
		TotalAmount:    dec("300.00"),
		SplitPolicy:    "EQUAL",
		ParticipantIDs: []string{"alice"},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, "g1", req, "mallory")

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- MarkSharePaid Tests ---

func (suite *ExpenseServiceTestSuite) TestMarkSharePaid_Success() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID: "e1",
		GroupID:   "g1",
		PayerID:   "alice",
		Participants: []domain.ParticipantShare{
			{MemberID: "alice", Amount: dec("100.00"), Paid: true},
			{MemberID: "bob", Amount: dec("100.00")},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "e1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()
	suite.mockExpenseRepo.On("MarkSharePaid", ctx, "e1", "bob", mock.AnythingOfType("time.Time"), "alice").Return(nil).Once()

	updated, err := suite.service.MarkSharePaid(ctx, "e1", "bob", "alice")

	suite.Require().NoError(err)
	suite.True(updated.Participants[1].Paid)
	suite.NotNil(updated.Participants[1].PaidAt)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestMarkSharePaid_AlreadyPaidIsNoOp() {
	ctx := context.Background()
	paidAt := time.Now()
	expense := &domain.Expense{
		ExpenseID: "e1",
		GroupID:   "g1",
		PayerID:   "alice",
		Participants: []domain.ParticipantShare{
			{MemberID: "bob", Amount: dec("100.00"), Paid: true, PaidAt: &paidAt},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "e1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()

	updated, err := suite.service.MarkSharePaid(ctx, "e1", "bob", "alice")

	suite.Require().NoError(err)
	suite.True(updated.Participants[0].Paid)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "MarkSharePaid")
}

func (suite *ExpenseServiceTestSuite) TestMarkSharePaid_UnknownMember() {
	ctx := context.Background()
	expense := &domain.Expense{
		ExpenseID: "e1",
		GroupID:   "g1",
		PayerID:   "alice",
		Participants: []domain.ParticipantShare{
			{MemberID: "alice", Amount: dec("100.00")},
		},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "e1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()

	updated, err := suite.service.MarkSharePaid(ctx, "e1", "carol", "alice")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateExpense Tests ---

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_RecomputesShares() {
	ctx := context.Background()
	existing := &domain.Expense{
		ExpenseID:   "e1",
		GroupID:     "g1",
		PayerID:     "alice",
		Description: "Dinner",
		TotalAmount: dec("300.00"),
		SplitPolicy: domain.SplitEqual,
		Participants: []domain.ParticipantShare{
			{MemberID: "alice", Amount: dec("150.00"), Paid: true},
			{MemberID: "bob", Amount: dec("150.00")},
		},
	}
	req := dto.CreateExpenseRequest{
		Description:    "Dinner (corrected)",
		PayerID:        "alice",
		TotalAmount:    dec("300.00"),
		SplitPolicy:    "EQUAL",
		ParticipantIDs: []string{"alice", "bob", "carol"},
	}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "e1").Return(existing, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()
	suite.mockExpenseRepo.On("ReplaceExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ExpenseID == "e1" && len(e.Participants) == 3
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, "e1", req, "alice")

	suite.Require().NoError(err)
	suite.Equal("Dinner (corrected)", updated.Description)
	suite.Require().Len(updated.Participants, 3)
	for _, share := range updated.Participants {
		suite.True(share.Amount.Equal(dec("100.00")))
	}
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

// --- DeleteExpense Tests ---

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_Success() {
	ctx := context.Background()
	expense := &domain.Expense{ExpenseID: "e1", GroupID: "g1", PayerID: "alice"}

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, "e1").Return(expense, nil).Once()
	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(suite.group, nil).Once()
	suite.mockExpenseRepo.On("MarkExpenseDeleted", ctx, "e1", "bob", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteExpense(ctx, "e1", "bob")

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
