package businessflow

import (
	"testing"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/models"
	"github.com/amirphl/Yatagarasu/outreach"
	"github.com/amirphl/Yatagarasu/repository"
	testhelper "github.com/amirphl/Yatagarasu/testing"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSessionFlowTest provisions a throwaway database and wires a session
// flow over real repositories; tests skip when no Postgres server is reachable.
func setupSessionFlowTest(t *testing.T) (*testhelper.TestFixtures, SessionFlow) {
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

	fixtures := testhelper.NewTestFixtures(testDB)
	flow := NewSessionFlow(
		repository.NewCadenceStepRepository(testDB.DB),
		repository.NewLeadRepository(testDB.DB),
		repository.NewAuditLogRepository(testDB.DB),
		outreach.NewQueueBuilder(outreach.NewTimingModel(outreach.DefaultWindowTable())),
	)
	return fixtures, flow
}

func TestBuildQueueInvalidSessionType(t *testing.T) {
	_, flow := setupSessionFlowTest(t)
	ctx := testhelper.CreateTestContext()

	_, err := flow.BuildQueue(ctx, 1, &dto.BuildQueueRequest{SessionType: "carrier-pigeon"}, NewClientMetadata("127.0.0.1", "test-agent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSessionType)
}

// A pending step on an already-contacted lead must still resolve to that lead
// so call sessions can rank it by timing score; only the fresh-lead bucket is
// restricted to cold uncontacted leads.
func TestBuildQueueResolvesContactedLeadSteps(t *testing.T) {
	fixtures, flow := setupSessionFlowTest(t)
	ctx := testhelper.CreateTestContext()
	leadRepo := repository.NewLeadRepository(fixtures.DB.DB)

	rep, err := fixtures.CreateTestSalesRep()
	require.NoError(t, err)

	now := utils.UTCNow()

	contacted, err := fixtures.CreateTestLead(rep.ID)
	require.NoError(t, err)
	require.NoError(t, leadRepo.UpdateStage(ctx, contacted.ID, models.StageContacted))
	require.NoError(t, leadRepo.TouchLastContacted(ctx, contacted.ID, now.Add(-48*time.Hour)))

	step, err := fixtures.CreateTestCadenceStep(contacted.ID, rep.ID, 2, utils.StartOfDay(now))
	require.NoError(t, err)

	fresh, err := fixtures.CreateTestLead(rep.ID)
	require.NoError(t, err)

	resp, err := flow.BuildQueue(ctx, rep.ID, &dto.BuildQueueRequest{SessionType: "call"}, NewClientMetadata("127.0.0.1", "test-agent"))
	require.NoError(t, err)

	assert.Equal(t, "call", resp.SessionType)
	assert.Equal(t, 0, resp.Counts.Overdue)
	assert.Equal(t, 1, resp.Counts.Today)
	assert.Equal(t, 1, resp.Counts.Uncontacted)
	require.Len(t, resp.Items, 2)

	today := resp.Items[0]
	assert.Equal(t, string(outreach.ReasonToday), today.Reason)
	require.NotNil(t, today.Step)
	assert.Equal(t, step.ID, today.Step.ID)
	require.NotNil(t, today.Lead, "step on a contacted lead still carries its lead")
	assert.Equal(t, contacted.ID, today.Lead.ID)
	require.NotNil(t, today.TimingScore, "call sessions score every resolvable lead")
	assert.GreaterOrEqual(t, *today.TimingScore, 0.0)

	uncontacted := resp.Items[1]
	assert.Equal(t, string(outreach.ReasonUncontacted), uncontacted.Reason)
	require.NotNil(t, uncontacted.Lead)
	assert.Equal(t, fresh.ID, uncontacted.Lead.ID)

	// The contacted lead is step work, not a fresh lead; it must not be
	// queued twice.
	for _, item := range resp.Items {
		if item.Reason == string(outreach.ReasonUncontacted) {
			assert.NotEqual(t, contacted.ID, item.Lead.ID)
		}
	}
}
