package service

import (
	"context"
	"testing"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApprovalService(env *testEnv) IApprovalService {
	return NewApprovalService(env.factory, env.notify, nil)
}

func TestApproveAdd(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")

	res, err := svc.ApproveAdd(context.Background(), admin.Id, &dto.ApproveRequest{WorklogId: log.Id})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(0), res.PendingCount.Total)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Equal(t, entity.StatusApproved, stored.Status)
	assert.Nil(t, stored.EditReason)

	events := env.delivery.sentTo(submitter.Id, dto.EventWorklogApproved)
	require.Len(t, events, 1)
	approvedEvent := events[0].Data.(dto.WorklogApprovedEvent)
	assert.Equal(t, dto.RequestTypeAdd, approvedEvent.Type)
	assert.Equal(t, log.Id, approvedEvent.WorklogId)
}

func TestApproveAddWrongStatusConflicts(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusDraft, "Unit A")

	_, err := svc.ApproveAdd(context.Background(), admin.Id, &dto.ApproveRequest{WorklogId: log.Id})
	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "pending_add", conflictErr.Expected)
	assert.Equal(t, "draft", conflictErr.Actual)
}

func TestRejectAddStoresReason(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")

	res, err := svc.RejectAdd(context.Background(), admin.Id, &dto.RejectRequest{
		WorklogId:    log.Id,
		RejectReason: "missing work order",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Equal(t, entity.StatusRejectedAdd, stored.Status)
	require.NotNil(t, stored.EditReason)
	assert.Equal(t, "missing work order", *stored.EditReason)

	events := env.delivery.sentTo(submitter.Id, dto.EventWorklogRejected)
	require.Len(t, events, 1)
	payload := events[0].Data.(dto.WorklogRejectedEvent)
	assert.Equal(t, log.Id, payload.WorklogId)
	assert.Equal(t, "missing work order", payload.RejectReason)
	assert.Equal(t, int64(1), payload.RejectCount.RejectedAdd)
}

func TestApproveEditCopiesShadowOntoOriginal(t *testing.T) {
	env := newTestEnv()
	approvals := newApprovalService(env)
	history := newHistoryService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	original := env.seedLog(submitter.EmployeeId, entity.StatusApproved, "Unit A")

	require.NoError(t, history.Edit(context.Background(), submitter.Id, &dto.EditWorklogRequest{
		Id: original.Id, Date: "2026-08-25",
		Model: "MX-900", SerialNumber: "SN-9", WorkOrder: "WO-9", PartNumber: "PN-9", OrderNumber: "ON-9",
		Quantity: "12", UnitName: "Unit A", WorkType: "Rework", Minutes: "75", EditReason: "wrong model",
	}))

	shadows, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	require.Len(t, shadows, 1)

	// The verdict targets the shadow row, not the original.
	res, err := approvals.ApproveEdit(context.Background(), admin.Id, &dto.ApproveRequest{WorklogId: shadows[0].Id})
	require.NoError(t, err)
	assert.True(t, res.Success)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), original.Id)
	assert.Equal(t, entity.StatusApproved, stored.Status)
	assert.Equal(t, "MX-900", stored.Model)
	assert.Equal(t, 75, stored.Minutes)
	require.NotNil(t, stored.Quantity)
	assert.Equal(t, 12, *stored.Quantity)
	assert.Nil(t, stored.EditReason)

	gone, _ := env.factory.WorkLogs.FindById(context.Background(), shadows[0].Id)
	assert.Nil(t, gone)
}

func TestRejectEditMarksOriginalAndDiscardsShadow(t *testing.T) {
	env := newTestEnv()
	approvals := newApprovalService(env)
	history := newHistoryService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	original := env.seedLog(submitter.EmployeeId, entity.StatusApproved, "Unit A")

	require.NoError(t, history.Edit(context.Background(), submitter.Id, &dto.EditWorklogRequest{
		Id: original.Id, Date: "2026-08-25",
		Model: "MX-900", SerialNumber: "SN-9", WorkOrder: "WO-9", PartNumber: "PN-9", OrderNumber: "ON-9",
		UnitName: "Unit A", WorkType: "Rework", Minutes: "75", EditReason: "wrong model",
	}))
	shadows, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	require.Len(t, shadows, 1)

	_, err := approvals.RejectEdit(context.Background(), admin.Id, &dto.RejectRequest{
		WorklogId:    shadows[0].Id,
		RejectReason: "not plausible",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), original.Id)
	assert.Equal(t, entity.StatusRejectedEdit, stored.Status)
	require.NotNil(t, stored.EditReason)
	assert.Equal(t, "not plausible", *stored.EditReason)
	// The original keeps its own values; the proposal is discarded.
	assert.Equal(t, "MX-100", stored.Model)

	remaining, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	assert.Empty(t, remaining)
}

func TestApproveDeleteRemovesRow(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusPendingDelete, "Unit A")

	_, err := svc.ApproveDelete(context.Background(), admin.Id, &dto.ApproveRequest{WorklogId: log.Id})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Nil(t, stored)
}

func TestRejectDelete(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusPendingDelete, "Unit A")

	_, err := svc.RejectDelete(context.Background(), admin.Id, &dto.RejectRequest{
		WorklogId:    log.Id,
		RejectReason: "entry is still needed",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Equal(t, entity.StatusRejectedDelete, stored.Status)
}

func TestRejectRequiresReason(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")

	_, err := svc.RejectAdd(context.Background(), admin.Id, &dto.RejectRequest{WorklogId: log.Id, RejectReason: "  "})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestPendingCountScopedToDefaultUnit(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, strptr("Unit A"))
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")
	env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit B")
	env.seedLog(submitter.EmployeeId, entity.StatusPendingDelete, "Unit A")

	counts, err := svc.PendingCount(context.Background(), admin.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.PendingAdd)
	assert.Equal(t, int64(1), counts.PendingDelete)
	assert.Equal(t, int64(2), counts.Total)
}

func TestPendingCountsSumAcrossUnits(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	scoped := env.seedUser("admin001", "Scoped", 2, strptr("Unit A"))
	global := env.seedUser("admin002", "Global", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")
	env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit B")
	env.seedLog(submitter.EmployeeId, entity.StatusPendingDelete, "Unit B")

	scopedCounts, err := svc.PendingCount(context.Background(), scoped.Id)
	require.NoError(t, err)
	globalCounts, err := svc.PendingCount(context.Background(), global.Id)
	require.NoError(t, err)

	assert.Equal(t, int64(1), scopedCounts.Total)
	assert.Equal(t, int64(3), globalCounts.Total)
	assert.Equal(t, int64(2), globalCounts.PendingAdd)
	assert.Equal(t, int64(1), globalCounts.PendingDelete)
}

func TestSaveDefaultUnitRejectsCatchAll(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)

	_, err := svc.SaveDefaultUnit(context.Background(), admin.Id, &dto.SaveDefaultUnitRequest{UnitName: "all"})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSaveDefaultUnit(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)

	res, err := svc.SaveDefaultUnit(context.Background(), admin.Id, &dto.SaveDefaultUnitRequest{UnitName: "Unit B"})
	require.NoError(t, err)
	require.NotNil(t, res.DefaultUnit)
	assert.Equal(t, "Unit B", *res.DefaultUnit)
}

func TestListAdminAttachesSubmitterIdentity(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	admin := env.seedUser("admin001", "Admin", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")

	res, err := svc.ListAdmin(context.Background(), admin.Id, dto.AdminWorklogQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, res.WorkRows, 1)
	assert.Equal(t, "emp001", res.WorkRows[0].EmployeeId)
	assert.Equal(t, "Taro", res.WorkRows[0].EmployeeName)
	assert.Equal(t, "Production", res.WorkRows[0].Department)
}

func TestCountAdmin(t *testing.T) {
	env := newTestEnv()
	svc := newApprovalService(env)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")
	env.seedLog(submitter.EmployeeId, entity.StatusApproved, "Unit A")

	res, err := svc.CountAdmin(context.Background(), dto.AdminWorklogQuery{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Count)
}
