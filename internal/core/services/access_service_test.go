package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccessServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccessRepository
	service  *services.AccessService
	ctx      context.Context
}

func (suite *AccessServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccessRepository)
	suite.service = services.NewAccessService(suite.mockRepo)
	suite.ctx = context.Background()

	users := map[string]domain.Role{
		"u-admin":       domain.RoleAdmin,
		"u-collections": domain.RoleCollections,
		"u-readonly":    domain.RoleReadOnly,
	}
	for id, role := range users {
		suite.mockRepo.On("FindUserByID", mock.Anything, id).
			Return(&domain.User{UserID: id, Name: id, Role: role}, nil).Maybe()
	}
	suite.mockRepo.On("FindUserByID", mock.Anything, "ghost").
		Return(nil, apperrors.ErrNotFound).Maybe()
	suite.mockRepo.On("GetRoleDefaults", mock.Anything).
		Return(domain.DefaultRoleDefaults(), nil).Maybe()
}

func (suite *AccessServiceTestSuite) noRules(userIDs ...string) {
	for _, id := range userIDs {
		suite.mockRepo.On("FindAccessRules", mock.Anything, id).Return(nil, apperrors.ErrNotFound).Maybe()
	}
}

func (suite *AccessServiceTestSuite) TestEffectivePermissions_UnknownUser() {
	_, err := suite.service.EffectivePermissions(suite.ctx, "ghost")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownUser)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccessServiceTestSuite) TestEffectivePermissions_RoleDefaultsWithoutRules() {
	suite.noRules("u-collections")

	perms, err := suite.service.EffectivePermissions(suite.ctx, "u-collections")

	suite.Require().NoError(err)
	suite.Len(perms, len(domain.PermissionIDs))
	suite.True(perms[domain.PermAccessBilling])
	suite.False(perms[domain.PermAccessStorage])
}

func (suite *AccessServiceTestSuite) TestEffectivePermissions_OverrideIgnoredWhileUsingDefaults() {
	rules := &domain.AccessRules{
		UserID:      "u-collections",
		UseDefaults: true,
		Overrides:   domain.PermissionMap{domain.PermAccessStorage: true},
	}
	suite.mockRepo.On("FindAccessRules", mock.Anything, "u-collections").Return(rules, nil).Once()

	perms, err := suite.service.EffectivePermissions(suite.ctx, "u-collections")

	suite.Require().NoError(err)
	suite.False(perms[domain.PermAccessStorage])
}

func (suite *AccessServiceTestSuite) TestEffectivePermissions_OverrideAppliedWithoutDefaults() {
	rules := &domain.AccessRules{
		UserID:      "u-collections",
		UseDefaults: false,
		Overrides:   domain.PermissionMap{domain.PermAccessStorage: true},
	}
	suite.mockRepo.On("FindAccessRules", mock.Anything, "u-collections").Return(rules, nil).Once()

	perms, err := suite.service.EffectivePermissions(suite.ctx, "u-collections")

	suite.Require().NoError(err)
	suite.True(perms[domain.PermAccessStorage])
	suite.True(perms[domain.PermAccessBilling], "keys absent from the override keep the role default")
}

func (suite *AccessServiceTestSuite) TestAuthorize() {
	suite.noRules("u-readonly")

	suite.NoError(suite.service.Authorize(suite.ctx, "u-readonly", domain.PermAccessBilling))

	err := suite.service.Authorize(suite.ctx, "u-readonly", domain.PermExportTransactions)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccessServiceTestSuite) TestUpdateAccessRules_RequiresManagePermissions() {
	suite.noRules("u-readonly")

	_, err := suite.service.UpdateAccessRules(suite.ctx, "u-readonly", "u-collections", false, domain.PermissionMap{})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccessRules", mock.Anything, mock.Anything)
}

func (suite *AccessServiceTestSuite) TestUpdateAccessRules_Success() {
	suite.noRules("u-admin")
	overrides := domain.PermissionMap{domain.PermAccessStorage: true, domain.PermissionID("bogus"): true}
	suite.mockRepo.On("SaveAccessRules", mock.Anything, mock.MatchedBy(func(r domain.AccessRules) bool {
		_, hasBogus := r.Overrides["bogus"]
		return r.UserID == "u-collections" && !r.UseDefaults && r.Overrides[domain.PermAccessStorage] && !hasBogus
	})).Return(nil).Once()

	rules, err := suite.service.UpdateAccessRules(suite.ctx, "u-admin", "u-collections", false, overrides)

	suite.Require().NoError(err)
	suite.False(rules.UseDefaults)
	suite.Len(rules.Overrides, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestUpdateAccessRules_UnknownTarget() {
	suite.noRules("u-admin")

	_, err := suite.service.UpdateAccessRules(suite.ctx, "u-admin", "ghost", true, nil)

	suite.ErrorIs(err, apperrors.ErrUnknownUser)
}

func (suite *AccessServiceTestSuite) TestUpdateRoleDefaults_MergesPartialMap() {
	suite.noRules("u-admin")
	suite.mockRepo.On("SaveRoleDefaults", mock.Anything, domain.RoleCollections, mock.MatchedBy(func(p domain.PermissionMap) bool {
		return len(p) == len(domain.PermissionIDs) && p[domain.PermAccessStorage] && p[domain.PermAccessBilling]
	})).Return(nil).Once()

	merged, err := suite.service.UpdateRoleDefaults(suite.ctx, "u-admin", domain.RoleCollections,
		domain.PermissionMap{domain.PermAccessStorage: true})

	suite.Require().NoError(err)
	suite.True(merged[domain.PermAccessStorage])
	suite.False(merged[domain.PermManagePermissions])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestUpdateRoleDefaults_UnknownRole() {
	suite.noRules("u-admin")

	_, err := suite.service.UpdateRoleDefaults(suite.ctx, "u-admin", domain.Role("auditor"), domain.PermissionMap{})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccessServiceTestSuite) TestPreferences_LockedWithoutPermission() {
	suite.noRules("u-readonly")
	suite.mockRepo.On("GetPreferences", mock.Anything, "u-readonly").
		Return(domain.StoredPreferences{domain.PrefBillingSummary: false, domain.PrefStorageSummary: true}, nil).Once()

	prefs, err := suite.service.Preferences(suite.ctx, "u-readonly")

	suite.Require().NoError(err)
	suite.Equal(domain.PreferenceHidden, prefs[domain.PrefBillingSummary])
	suite.Equal(domain.PreferenceShown, prefs[domain.PrefCollectionsSummary])
	suite.Equal(domain.PreferenceLocked, prefs[domain.PrefStorageSummary])
}

func (suite *AccessServiceTestSuite) TestUpdatePreference_Self() {
	suite.noRules("u-readonly")
	suite.mockRepo.On("SavePreference", mock.Anything, "u-readonly", domain.PrefBillingSummary, false).Return(nil).Once()
	suite.mockRepo.On("GetPreferences", mock.Anything, "u-readonly").
		Return(domain.StoredPreferences{domain.PrefBillingSummary: false}, nil).Once()

	prefs, err := suite.service.UpdatePreference(suite.ctx, "u-readonly", "u-readonly", domain.PrefBillingSummary, false)

	suite.Require().NoError(err)
	suite.Equal(domain.PreferenceHidden, prefs[domain.PrefBillingSummary])
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccessServiceTestSuite) TestUpdatePreference_LockedPreferenceRejected() {
	suite.noRules("u-readonly")

	_, err := suite.service.UpdatePreference(suite.ctx, "u-readonly", "u-readonly", domain.PrefStorageSummary, true)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePreference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccessServiceTestSuite) TestUpdatePreference_OtherUserNeedsManager() {
	suite.noRules("u-readonly", "u-collections")

	_, err := suite.service.UpdatePreference(suite.ctx, "u-readonly", "u-collections", domain.PrefBillingSummary, false)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestAccessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessServiceTestSuite))
}
