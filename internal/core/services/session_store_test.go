package services_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_FreshSessionEnablesAllTriggers(t *testing.T) {
	store := services.NewSessionStore()

	sess := store.Snapshot("u-finance")

	assert.Equal(t, "u-finance", sess.UserID)
	assert.Empty(t, sess.Staged)
	for _, trig := range domain.Triggers {
		assert.True(t, sess.Triggers[trig], "trigger %s", trig)
	}
}

func TestSessionStore_SnapshotIsACopy(t *testing.T) {
	store := services.NewSessionStore()
	_, err := store.Update("u-finance", func(s *domain.Session) error {
		s.SelectOrder("inv-1")
		s.Staged["li-1-1"] = domain.ActionSave
		return nil
	})
	require.NoError(t, err)

	snap := store.Snapshot("u-finance")
	snap.Staged["li-1-2"] = domain.ActionDismiss
	snap.Triggers[domain.TriggerPriceChange] = false

	again := store.Snapshot("u-finance")
	assert.Equal(t, domain.StagedActions{"li-1-1": domain.ActionSave}, again.Staged)
	assert.True(t, again.Triggers[domain.TriggerPriceChange])
}

func TestSessionStore_FailedUpdateIsDiscarded(t *testing.T) {
	store := services.NewSessionStore()
	boom := errors.New("boom")

	sess, err := store.Update("u-finance", func(s *domain.Session) error {
		s.SearchQuery = "acme"
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sess.SearchQuery)
	assert.Empty(t, store.Snapshot("u-finance").SearchQuery)
}

func TestSessionStore_UsersAreIsolated(t *testing.T) {
	store := services.NewSessionStore()
	_, err := store.Update("u-finance", func(s *domain.Session) error {
		s.SearchQuery = "acme"
		return nil
	})
	require.NoError(t, err)

	assert.Empty(t, store.Snapshot("u-ops").SearchQuery)
}
