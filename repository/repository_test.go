package repository

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/models"
	testhelper "github.com/amirphl/Yatagarasu/testing"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepoTest provisions a throwaway database; tests skip when no Postgres
// server is reachable so the suite stays runnable on a bare checkout.
func setupRepoTest(t *testing.T) *testhelper.TestFixtures {
	t.Helper()

	testDB, err := testhelper.SetupTestDB()
	if err != nil {
		t.Skipf("skipping database test: %v", err)
	}
	t.Cleanup(func() {
		if err := testDB.TeardownTestDB(); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	})

	return testhelper.NewTestFixtures(testDB)
}

func TestSalesRepRepository(t *testing.T) {
	fixtures := setupRepoTest(t)
	repo := NewSalesRepRepository(fixtures.DB.DB)
	ctx := testhelper.CreateTestContext()

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)

	t.Run("ByID", func(t *testing.T) {
		found, err := repo.ByID(ctx, rep.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, rep.Email, found.Email)
		assert.Equal(t, rep.UUID, found.UUID)
	})

	t.Run("ByID missing returns nil", func(t *testing.T) {
		found, err := repo.ByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ByEmail", func(t *testing.T) {
		found, err := repo.ByEmail(ctx, rep.Email)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, rep.ID, found.ID)

		missing, err := repo.ByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ByUUID", func(t *testing.T) {
		found, err := repo.ByUUID(ctx, rep.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, rep.ID, found.ID)

		_, err = repo.ByUUID(ctx, "not-a-uuid")
		require.Error(t, err)
	})

	t.Run("UpdateLastLogin", func(t *testing.T) {
		at := utils.UTCNow().Truncate(time.Second)
		require.NoError(t, repo.UpdateLastLogin(ctx, rep.ID, at))

		found, err := repo.ByID(ctx, rep.ID)
		require.NoError(t, err)
		require.NotNil(t, found.LastLoginAt)
		assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
	})

	t.Run("Exists and Count", func(t *testing.T) {
		exists, err := repo.Exists(ctx, models.SalesRepFilter{Email: &rep.Email})
		require.NoError(t, err)
		assert.True(t, exists)

		count, err := repo.Count(ctx, models.SalesRepFilter{IsActive: utils.ToPtr(true)})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))
	})
}

func TestLeadRepository(t *testing.T) {
	fixtures := setupRepoTest(t)
	repo := NewLeadRepository(fixtures.DB.DB)
	ctx := testhelper.CreateTestContext()

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)

	lead, err := fixtures.CreateTestLead(rep.ID)
	require.NoError(t, err)

	t.Run("ByUUID", func(t *testing.T) {
		found, err := repo.ByUUID(ctx, lead.UUID.String())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, lead.ID, found.ID)
		assert.Equal(t, models.StageCold, found.PipelineStage)
	})

	t.Run("ListByRep orders by score ascending", func(t *testing.T) {
		second, err := fixtures.CreateTestLead(rep.ID)
		require.NoError(t, err)
		require.NoError(t, fixtures.DB.DB.Model(second).Update("composite_score", 10).Error)

		leads, err := repo.ListByRep(ctx, rep.ID, models.LeadFilter{}, 0, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(leads), 2)
		assert.Equal(t, second.ID, leads[0].ID, "weakest score comes first")
	})

	t.Run("UpdateStage", func(t *testing.T) {
		require.NoError(t, repo.UpdateStage(ctx, lead.ID, models.StageContacted))

		found, err := repo.ByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StageContacted, found.PipelineStage)
	})

	t.Run("TouchLastContacted is monotonic", func(t *testing.T) {
		newer := utils.UTCNow().Truncate(time.Second)
		require.NoError(t, repo.TouchLastContacted(ctx, lead.ID, newer))

		// An older instant must not roll the timestamp back
		require.NoError(t, repo.TouchLastContacted(ctx, lead.ID, newer.Add(-time.Hour)))

		found, err := repo.ByID(ctx, lead.ID)
		require.NoError(t, err)
		require.NotNil(t, found.LastContactedAt)
		assert.WithinDuration(t, newer, *found.LastContactedAt, time.Second)
	})

	t.Run("ListQueueCandidates returns the whole assigned book", func(t *testing.T) {
		// The lead above was contacted and moved to StageContacted; steps on
		// it still need their lead resolvable when the queue is built.
		candidates, err := repo.ListQueueCandidates(ctx, rep.ID)
		require.NoError(t, err)

		ids := make(map[uint]bool, len(candidates))
		for _, c := range candidates {
			require.NotNil(t, c.AssignedTo)
			assert.Equal(t, rep.ID, *c.AssignedTo)
			ids[c.ID] = true
		}
		assert.True(t, ids[lead.ID], "contacted lead stays referencable for its pending steps")
	})

	t.Run("filter by tag", func(t *testing.T) {
		tagged, err := repo.ByFilter(ctx, models.LeadFilter{Tag: utils.ToPtr("test")}, "", 0, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, tagged)

		none, err := repo.ByFilter(ctx, models.LeadFilter{Tag: utils.ToPtr("no-such-tag")}, "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestCadenceStepRepository(t *testing.T) {
	fixtures := setupRepoTest(t)
	repo := NewCadenceStepRepository(fixtures.DB.DB)
	ctx := testhelper.CreateTestContext()

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)
	lead, err := fixtures.CreateTestLead(rep.ID)
	require.NoError(t, err)

	now := utils.UTCNow()
	first, err := fixtures.CreateTestCadenceStep(lead.ID, rep.ID, 1, now.Add(-48*time.Hour))
	require.NoError(t, err)
	second, err := fixtures.CreateTestCadenceStep(lead.ID, rep.ID, 2, now.Add(-24*time.Hour))
	require.NoError(t, err)
	future, err := fixtures.CreateTestCadenceStep(lead.ID, rep.ID, 3, now.Add(72*time.Hour))
	require.NoError(t, err)

	t.Run("ListByLead in step order", func(t *testing.T) {
		steps, err := repo.ListByLead(ctx, lead.ID)
		require.NoError(t, err)
		require.Len(t, steps, 3)
		assert.Equal(t, 1, steps[0].StepNumber)
		assert.Equal(t, 2, steps[1].StepNumber)
		assert.Equal(t, 3, steps[2].StepNumber)
	})

	t.Run("ListPendingByRep honors scheduled cutoff", func(t *testing.T) {
		steps, err := repo.ListPendingByRep(ctx, rep.ID, now)
		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, first.ID, steps[0].ID, "earliest scheduled first")
		assert.Equal(t, second.ID, steps[1].ID)
	})

	t.Run("MarkCompleted", func(t *testing.T) {
		at := utils.UTCNow()
		require.NoError(t, repo.MarkCompleted(ctx, first.ID, at))

		found, err := repo.ByID(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, found.Terminal())
		require.NotNil(t, found.CompletedAt)

		// Second attempt hits no pending row
		err = repo.MarkCompleted(ctx, first.ID, utils.UTCNow())
		require.Error(t, err)
	})

	t.Run("MarkSkipped", func(t *testing.T) {
		require.NoError(t, repo.MarkSkipped(ctx, second.ID))

		found, err := repo.ByID(ctx, second.ID)
		require.NoError(t, err)
		assert.True(t, found.Skipped)
		assert.True(t, found.Terminal())
	})

	t.Run("SkipPendingForLead clears the remainder", func(t *testing.T) {
		require.NoError(t, repo.SkipPendingForLead(ctx, lead.ID, rep.ID))

		found, err := repo.ByID(ctx, future.ID)
		require.NoError(t, err)
		assert.True(t, found.Skipped)

		pending, err := repo.ListPendingByRep(ctx, rep.ID, now.Add(168*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func TestActivityRepository(t *testing.T) {
	fixtures := setupRepoTest(t)
	repo := NewActivityRepository(fixtures.DB.DB)
	ctx := testhelper.CreateTestContext()

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)
	lead, err := fixtures.CreateTestLead(rep.ID)
	require.NoError(t, err)

	now := utils.UTCNow()
	older, err := fixtures.CreateTestActivity(lead.ID, rep.ID, models.OutcomeNoAnswer, now.Add(-2*time.Hour))
	require.NoError(t, err)
	newer, err := fixtures.CreateTestActivity(lead.ID, rep.ID, models.OutcomeConnected, now.Add(-time.Hour))
	require.NoError(t, err)

	t.Run("ListByLead newest first", func(t *testing.T) {
		activities, err := repo.ListByLead(ctx, lead.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, newer.ID, activities[0].ID)
		assert.Equal(t, older.ID, activities[1].ID)
	})

	t.Run("ListByLead pagination", func(t *testing.T) {
		page, err := repo.ListByLead(ctx, lead.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, older.ID, page[0].ID)
	})

	t.Run("ListCallsByRep respects since cutoff", func(t *testing.T) {
		calls, err := repo.ListCallsByRep(ctx, rep.ID, now.Add(-90*time.Minute))
		require.NoError(t, err)
		require.Len(t, calls, 1)
		assert.Equal(t, newer.ID, calls[0].ID)

		all, err := repo.ListCallsByRep(ctx, rep.ID, now.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Count by outcome", func(t *testing.T) {
		connected := models.OutcomeConnected
		count, err := repo.Count(ctx, models.ActivityFilter{LeadID: &lead.ID, Outcome: &connected})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestSalesRepSessionRepository(t *testing.T) {
	fixtures := setupRepoTest(t)
	repo := NewSalesRepSessionRepository(fixtures.DB.DB)
	ctx := testhelper.CreateTestContext()

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)

	session, err := fixtures.CreateTestSession(rep.ID)
	require.NoError(t, err)

	t.Run("BySessionToken", func(t *testing.T) {
		found, err := repo.BySessionToken(ctx, session.SessionToken)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, session.ID, found.ID)
		require.NotNil(t, found.SalesRep, "session preloads its rep")
		assert.Equal(t, rep.ID, found.SalesRep.ID)

		missing, err := repo.BySessionToken(ctx, "no-such-token")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ByRefreshToken", func(t *testing.T) {
		require.NotNil(t, session.RefreshToken)
		found, err := repo.ByRefreshToken(ctx, *session.RefreshToken)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, session.ID, found.ID)
	})

	t.Run("ListActiveSessionsByRep", func(t *testing.T) {
		sessions, err := repo.ListActiveSessionsByRep(ctx, rep.ID)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, session.ID, sessions[0].ID)
	})

	t.Run("ExpireSession appends an inactive record", func(t *testing.T) {
		require.NoError(t, repo.ExpireSession(ctx, session.ID))

		latest, err := repo.GetLatestByCorrelationID(ctx, session.CorrelationID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.NotEqual(t, session.ID, latest.ID, "expiry is insert-only")
		assert.False(t, utils.IsTrue(latest.IsActive))
		assert.Nil(t, latest.RefreshToken)
	})
}

func TestAuditLogRepository(t *testing.T) {
	fixtures := setupRepoTest(t)
	repo := NewAuditLogRepository(fixtures.DB.DB)
	ctx := testhelper.CreateTestContext()

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)

	_, err = fixtures.CreateTestAuditLog(&rep.ID, models.AuditActionLoginSuccessful, true)
	require.NoError(t, err)
	failed, err := fixtures.CreateTestAuditLog(&rep.ID, models.AuditActionLoginFailed, false)
	require.NoError(t, err)
	_, err = fixtures.CreateTestAuditLog(&rep.ID, models.AuditActionLeadCreated, true)
	require.NoError(t, err)

	t.Run("ListBySalesRep", func(t *testing.T) {
		entries, err := repo.ListBySalesRep(ctx, rep.ID, 0, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("ListByAction", func(t *testing.T) {
		entries, err := repo.ListByAction(ctx, models.AuditActionLoginFailed, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, failed.ID, entries[0].ID)
	})

	t.Run("ListFailedActions", func(t *testing.T) {
		entries, err := repo.ListFailedActions(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IsFailed())
	})
}
