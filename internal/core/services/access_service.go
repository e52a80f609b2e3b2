package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finops_backoffice/internal/apperrors"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
)

// AccessService resolves permissions and manages the settings page data.
type AccessService struct {
	BaseService
	accessRepo portsrepo.AccessRepositoryFacade
}

// NewAccessService creates a new AccessService.
func NewAccessService(accessRepo portsrepo.AccessRepositoryFacade) *AccessService {
	svc := &AccessService{accessRepo: accessRepo}
	svc.Authorizer = svc
	return svc
}

var _ portssvc.AccessSvcFacade = (*AccessService)(nil)

func errDenied(perm domain.PermissionID) error {
	return fmt.Errorf("%w: missing permission %s", apperrors.ErrForbidden, perm)
}

func (s *AccessService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.accessRepo.ListUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AccessService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.accessRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownUser, userID)
		}
		s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

func (s *AccessService) rulesFor(ctx context.Context, userID string) (*domain.AccessRules, error) {
	rules, err := s.accessRepo.FindAccessRules(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultAccessRules(userID)
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to load access rules", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load access rules for %s: %w", userID, err)
	}
	return rules, nil
}

// EffectivePermissions resolves role defaults overlaid with the user's rules.
func (s *AccessService) EffectivePermissions(ctx context.Context, userID string) (domain.PermissionMap, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	defaults, err := s.accessRepo.GetRoleDefaults(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load role defaults")
		return nil, fmt.Errorf("failed to load role defaults: %w", err)
	}
	rules, err := s.rulesFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.ResolvePermissions(*user, defaults, *rules)
}

func (s *AccessService) GetAccessRules(ctx context.Context, userID string) (*domain.AccessRules, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.rulesFor(ctx, userID)
}

func (s *AccessService) RoleDefaults(ctx context.Context) (domain.RoleDefaults, error) {
	defaults, err := s.accessRepo.GetRoleDefaults(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load role defaults")
		return nil, fmt.Errorf("failed to load role defaults: %w", err)
	}
	return defaults, nil
}

// Preferences resolves every display preference of the user to shown, hidden or locked.
func (s *AccessService) Preferences(ctx context.Context, userID string) (map[domain.Preference]domain.PreferenceState, error) {
	perms, err := s.EffectivePermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	stored, err := s.accessRepo.GetPreferences(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load preferences", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return domain.ResolvePreferences(perms, stored), nil
}

func (s *AccessService) requireManager(ctx context.Context, actorID string) error {
	actorPerms, err := s.EffectivePermissions(ctx, actorID)
	if err != nil {
		return err
	}
	if !domain.CanEditAccessRules(actorPerms) {
		return errDenied(domain.PermManagePermissions)
	}
	return nil
}

// UpdateAccessRules replaces target's rules. Unknown permission ids are dropped.
func (s *AccessService) UpdateAccessRules(ctx context.Context, actorID, targetID string, useDefaults bool, overrides domain.PermissionMap) (*domain.AccessRules, error) {
	if err := s.requireManager(ctx, actorID); err != nil {
		s.LogInfo(ctx, "Access rules update denied", slog.String("actor_id", actorID), slog.String("target_id", targetID))
		return nil, err
	}
	if _, err := s.findUser(ctx, targetID); err != nil {
		return nil, err
	}

	clean := domain.PermissionMap{}
	for p, v := range overrides {
		if _, err := domain.ParsePermissionID(string(p)); err == nil {
			clean[p] = v
		}
	}
	rules := domain.AccessRules{UserID: targetID, UseDefaults: useDefaults, Overrides: clean}
	if err := s.accessRepo.SaveAccessRules(ctx, rules); err != nil {
		s.LogError(ctx, err, "Failed to save access rules", slog.String("target_id", targetID))
		return nil, fmt.Errorf("failed to save access rules: %w", err)
	}

	s.LogInfo(ctx, "Access rules updated",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
		slog.Bool("use_defaults", useDefaults),
		slog.Int("overrides", len(clean)))
	return &rules, nil
}

// UpdateRoleDefaults merges perms into the role's current defaults.
func (s *AccessService) UpdateRoleDefaults(ctx context.Context, actorID string, role domain.Role, perms domain.PermissionMap) (domain.PermissionMap, error) {
	if err := s.requireManager(ctx, actorID); err != nil {
		s.LogInfo(ctx, "Role defaults update denied", slog.String("actor_id", actorID), slog.String("role", string(role)))
		return nil, err
	}
	defaults, err := s.RoleDefaults(ctx)
	if err != nil {
		return nil, err
	}
	base, ok := defaults[role]
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	merged := base.Full()
	for p, v := range perms {
		if _, known := merged[p]; known {
			merged[p] = v
		}
	}
	if err := s.accessRepo.SaveRoleDefaults(ctx, role, merged); err != nil {
		s.LogError(ctx, err, "Failed to save role defaults", slog.String("role", string(role)))
		return nil, fmt.Errorf("failed to save role defaults: %w", err)
	}
	s.LogInfo(ctx, "Role defaults updated", slog.String("actor_id", actorID), slog.String("role", string(role)))
	return merged, nil
}

// UpdatePreference stores a preference for targetID. Users may edit their own preferences;
// editing someone else's requires manage_permissions. A preference whose gating permission
// the target lacks is locked and cannot be changed.
func (s *AccessService) UpdatePreference(ctx context.Context, actorID, targetID string, pref domain.Preference, shown bool) (map[domain.Preference]domain.PreferenceState, error) {
	actorPerms, err := s.EffectivePermissions(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditPreferences(actorID, targetID, actorPerms) {
		return nil, errDenied(domain.PermManagePermissions)
	}

	targetPerms, err := s.EffectivePermissions(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !targetPerms.Allowed(pref.RequiredPermission()) {
		return nil, fmt.Errorf("%w: preference %s is locked", apperrors.ErrForbidden, pref)
	}

	if err := s.accessRepo.SavePreference(ctx, targetID, pref, shown); err != nil {
		s.LogError(ctx, err, "Failed to save preference", slog.String("target_id", targetID), slog.String("preference", string(pref)))
		return nil, fmt.Errorf("failed to save preference: %w", err)
	}
	return s.Preferences(ctx, targetID)
}

// Authorize returns ErrForbidden unless userID's effective permissions include perm.
func (s *AccessService) Authorize(ctx context.Context, userID string, perm domain.PermissionID) error {
	perms, err := s.EffectivePermissions(ctx, userID)
	if err != nil {
		return err
	}
	if !perms.Allowed(perm) {
		return errDenied(perm)
	}
	return nil
}
