package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisaab-app/hisaab-backend/internal/apperrors"
	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	portssvc "github.com/hisaab-app/hisaab-backend/internal/core/ports/services"
	"github.com/hisaab-app/hisaab-backend/internal/core/services"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
)

type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockGroupRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.GroupSvcFacade
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewGroupService(suite.mockGroupRepo, suite.mockUserRepo)
}

func (suite *GroupServiceTestSuite) expectUsersExist(ctx context.Context, userIDs ...string) {
	for _, id := range userIDs {
		suite.mockUserRepo.On("FindUserByID", ctx, id).Return(&domain.User{UserID: id}, nil).Once()
	}
}

// --- CreateGroup Tests ---

func (suite *GroupServiceTestSuite) TestCreateGroup_CreatorIsFirstMember() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{Name: "Goa Trip", MemberIDs: []string{"bob", "carol"}}

	suite.expectUsersExist(ctx, "alice", "bob", "carol")
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return g.Name == "Goa Trip" &&
			len(g.MemberIDs) == 3 &&
			g.MemberIDs[0] == "alice" && g.MemberIDs[1] == "bob" && g.MemberIDs[2] == "carol"
	})).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, req, "alice")

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.NotEmpty(group.GroupID)
	suite.Equal("alice", group.CreatedBy)
	suite.mockGroupRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_DeduplicatesMembers() {
	ctx := context.Background()
	// The creator listed again and a repeated member collapse to one entry each.
	req := dto.CreateGroupRequest{Name: "Flat", MemberIDs: []string{"alice", "bob", "bob"}}

	suite.expectUsersExist(ctx, "alice", "bob")
	suite.mockGroupRepo.On("SaveGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return len(g.MemberIDs) == 2 && g.MemberIDs[0] == "alice" && g.MemberIDs[1] == "bob"
	})).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, req, "alice")

	suite.Require().NoError(err)
	suite.Equal([]string{"alice", "bob"}, group.MemberIDs)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_UnknownMemberRejected() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{Name: "Flat", MemberIDs: []string{"ghost"}}

	suite.mockUserRepo.On("FindUserByID", ctx, "alice").Return(&domain.User{UserID: "alice"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	group, err := suite.service.CreateGroup(ctx, req, "alice")

	suite.Require().Error(err)
	suite.Nil(group)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "SaveGroup")
}

// --- GetGroupByID Tests ---

func (suite *GroupServiceTestSuite) TestGetGroupByID_MemberAllowed() {
	ctx := context.Background()
	group := &domain.Group{GroupID: "g1", Name: "Flat", MemberIDs: []string{"alice", "bob"}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(group, nil).Once()

	got, err := suite.service.GetGroupByID(ctx, "g1", "bob")

	suite.Require().NoError(err)
	suite.Equal(group, got)
}

func (suite *GroupServiceTestSuite) TestGetGroupByID_NonMemberForbidden() {
	ctx := context.Background()
	group := &domain.Group{GroupID: "g1", Name: "Flat", MemberIDs: []string{"alice", "bob"}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(group, nil).Once()

	got, err := suite.service.GetGroupByID(ctx, "g1", "mallory")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- AddMembers Tests ---

func (suite *GroupServiceTestSuite) TestAddMembers_AppendsInOrder() {
	ctx := context.Background()
	group := &domain.Group{GroupID: "g1", MemberIDs: []string{"alice"}}
	req := dto.AddGroupMembersRequest{MemberIDs: []string{"bob", "carol"}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(group, nil).Once()
	suite.expectUsersExist(ctx, "bob", "carol")
	suite.mockGroupRepo.On("AddGroupMembers", ctx, "g1", []string{"bob", "carol"}, "alice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AddMembers(ctx, "g1", req, "alice")

	suite.Require().NoError(err)
	suite.Equal([]string{"alice", "bob", "carol"}, updated.MemberIDs)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestAddMembers_ExistingMembersSkipped() {
	ctx := context.Background()
	group := &domain.Group{GroupID: "g1", MemberIDs: []string{"alice", "bob"}}
	req := dto.AddGroupMembersRequest{MemberIDs: []string{"bob"}}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(group, nil).Once()

	updated, err := suite.service.AddMembers(ctx, "g1", req, "alice")

	suite.Require().NoError(err)
	suite.Equal([]string{"alice", "bob"}, updated.MemberIDs)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "AddGroupMembers")
}

// --- DeleteGroup Tests ---

func (suite *GroupServiceTestSuite) TestDeleteGroup_OnlyCreatorAllowed() {
	ctx := context.Background()
	group := &domain.Group{
		GroupID:   "g1",
		MemberIDs: []string{"alice", "bob"},
		AuditFields: domain.AuditFields{
			CreatedBy: "alice",
		},
	}

	suite.mockGroupRepo.On("FindGroupByID", ctx, "g1").Return(group, nil).Twice()
	suite.mockGroupRepo.On("MarkGroupDeleted", ctx, "g1", "alice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteGroup(ctx, "g1", "bob")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	err = suite.service.DeleteGroup(ctx, "g1", "alice")
	suite.Require().NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
