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

func newHistoryService(env *testEnv) IHistoryService {
	return NewHistoryService(env.factory, env.notify, nil)
}

func TestHistoryAddCreatesPendingRow(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	admin := env.seedUser("admin001", "Admin", 2, nil)

	row, err := svc.Add(context.Background(), user.Id, &dto.AddWorklogRequest{
		Date:         "2026-08-20",
		Model:        "MX-100",
		SerialNumber: "SN-1",
		WorkOrder:    "WO-1",
		PartNumber:   "PN-1",
		OrderNumber:  "ON-1",
		Quantity:     "3",
		UnitName:     "Unit A",
		WorkType:     "Assembly",
		Minutes:      "30",
		EditReason:   "forgot to log this",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending_add", row.Status)
	assert.Equal(t, "3", row.Quantity)

	// The watching admin gets a request event with the pending badge.
	events := env.delivery.sentTo(admin.Id, dto.EventWorklogRequest)
	require.Len(t, events, 1)
	payload := events[0].Data.(dto.WorklogRequestEvent)
	assert.Equal(t, dto.RequestTypeAdd, payload.Type)
	assert.Equal(t, int64(1), payload.PendingCount.PendingAdd)
}

func TestHistoryAddRequiresReason(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)

	_, err := svc.Add(context.Background(), user.Id, &dto.AddWorklogRequest{
		Date: "2026-08-20", UnitName: "Unit A", WorkType: "Assembly", Minutes: "30",
		EditReason: "   ",
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestHistoryEditCreatesShadowAndParksOriginal(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	original := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	err := svc.Edit(context.Background(), user.Id, &dto.EditWorklogRequest{
		Id:           original.Id,
		Date:         "2026-08-21",
		Model:        "MX-200",
		SerialNumber: "SN-2",
		WorkOrder:    "WO-2",
		PartNumber:   "PN-2",
		OrderNumber:  "ON-2",
		Quantity:     "N/A",
		UnitName:     "Unit A",
		WorkType:     "Rework",
		Minutes:      "60",
		EditReason:   "wrong minutes",
	})
	require.NoError(t, err)

	stored, err := env.factory.WorkLogs.FindById(context.Background(), original.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingEdit, stored.Status)

	shadows, err := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	require.NoError(t, err)
	require.Len(t, shadows, 1)
	assert.Equal(t, "MX-200", shadows[0].Model)
	assert.Nil(t, shadows[0].Quantity)
	assert.Equal(t, 60, shadows[0].Minutes)
}

func TestHistoryEditLastWriterWins(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	original := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	req := &dto.EditWorklogRequest{
		Id: original.Id, Date: "2026-08-21",
		Model: "first", SerialNumber: "SN", WorkOrder: "WO", PartNumber: "PN", OrderNumber: "ON",
		UnitName: "Unit A", WorkType: "Rework", Minutes: "60", EditReason: "first try",
	}
	require.NoError(t, svc.Edit(context.Background(), user.Id, req))

	req.Model = "second"
	req.EditReason = "second try"
	require.NoError(t, svc.Edit(context.Background(), user.Id, req))

	shadows, err := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	require.NoError(t, err)
	require.Len(t, shadows, 1)
	assert.Equal(t, "second", shadows[0].Model)
}

func TestHistoryEditRejectsForeignRow(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	owner := env.seedUser("emp001", "Taro", 1, nil)
	intruder := env.seedUser("emp002", "Hanako", 1, nil)
	log := env.seedLog(owner.EmployeeId, entity.StatusApproved, "Unit A")

	err := svc.Edit(context.Background(), intruder.Id, &dto.EditWorklogRequest{
		Id: log.Id, Date: "2026-08-21",
		Model: "x", SerialNumber: "x", WorkOrder: "x", PartNumber: "x", OrderNumber: "x",
		UnitName: "Unit A", WorkType: "Rework", Minutes: "60", EditReason: "nope",
	})
	var forbiddenErr *apperrors.ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)
}

func TestHistoryCancelPendingEditRestoresOriginal(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	original := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	require.NoError(t, svc.Edit(context.Background(), user.Id, &dto.EditWorklogRequest{
		Id: original.Id, Date: "2026-08-21",
		Model: "x", SerialNumber: "x", WorkOrder: "x", PartNumber: "x", OrderNumber: "x",
		UnitName: "Unit A", WorkType: "Rework", Minutes: "60", EditReason: "typo",
	}))

	shadows, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	require.Len(t, shadows, 1)

	originalId := original.Id
	err := svc.Cancel(context.Background(), user.Id, &dto.CancelWorklogRequest{
		Id:         shadows[0].Id,
		OriginalId: &originalId,
		Status:     "pending_edit",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), original.Id)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.Nil(t, stored.EditReason)

	remaining, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	assert.Empty(t, remaining)
}

func TestHistoryCancelPendingEditWithoutOriginalId(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	original := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	require.NoError(t, svc.Edit(context.Background(), user.Id, &dto.EditWorklogRequest{
		Id: original.Id, Date: "2026-08-21",
		Model: "x", SerialNumber: "x", WorkOrder: "x", PartNumber: "x", OrderNumber: "x",
		UnitName: "Unit A", WorkType: "Rework", Minutes: "60", EditReason: "typo",
	}))

	shadows, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	require.Len(t, shadows, 1)

	// The shadow carries its own back reference, so the request may omit it.
	err := svc.Cancel(context.Background(), user.Id, &dto.CancelWorklogRequest{
		Id:     shadows[0].Id,
		Status: "pending_edit",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), original.Id)
	assert.Equal(t, entity.StatusDraft, stored.Status)

	remaining, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), original.Id)
	assert.Empty(t, remaining)
}

func TestHistoryCancelPendingAddRemovesRow(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusPendingAdd, "Unit A")

	err := svc.Cancel(context.Background(), user.Id, &dto.CancelWorklogRequest{
		Id: log.Id, Status: "pending_add",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Nil(t, stored)
}

func TestHistoryCancelStatusConflict(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	err := svc.Cancel(context.Background(), user.Id, &dto.CancelWorklogRequest{
		Id: log.Id, Status: "pending_delete",
	})
	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "approved", conflictErr.Actual)
}

func TestHistoryCancelUnknownStatus(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	err := svc.Cancel(context.Background(), user.Id, &dto.CancelWorklogRequest{
		Id: log.Id, Status: "approved",
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestHistoryCancelRejectedAddDeletes(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusRejectedAdd, "Unit A")

	require.NoError(t, svc.CancelRejectedAdd(context.Background(), user.Id, &dto.CancelRejectedRequest{Id: log.Id}))

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Nil(t, stored)
}

func TestHistoryCancelRejectedDeleteRestoresDraft(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusRejectedDelete, "Unit A")

	require.NoError(t, svc.CancelRejectedDelete(context.Background(), user.Id, &dto.CancelRejectedRequest{Id: log.Id}))

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Equal(t, entity.StatusDraft, stored.Status)
}

func TestHistoryResubmitRejectedAdd(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusRejectedAdd, "Unit A")

	err := svc.Resubmit(context.Background(), user.Id, &dto.ResubmitWorklogRequest{
		Id: log.Id, OriginalStatus: "rejected_add", Date: "2026-08-22",
		Model: "MX-300", SerialNumber: "SN", WorkOrder: "WO", PartNumber: "PN", OrderNumber: "ON",
		UnitName: "Unit A", WorkType: "Assembly", Minutes: "90", EditReason: "fixed the minutes",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Equal(t, entity.StatusPendingAdd, stored.Status)
	assert.Equal(t, "MX-300", stored.Model)
	assert.Equal(t, 90, stored.Minutes)
}

func TestHistoryResubmitRejectedEditRecreatesShadow(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusRejectedEdit, "Unit A")

	err := svc.Resubmit(context.Background(), user.Id, &dto.ResubmitWorklogRequest{
		Id: log.Id, OriginalStatus: "rejected_edit", Date: "2026-08-22",
		Model: "MX-300", SerialNumber: "SN", WorkOrder: "WO", PartNumber: "PN", OrderNumber: "ON",
		UnitName: "Unit A", WorkType: "Assembly", Minutes: "90", EditReason: "second attempt",
	})
	require.NoError(t, err)

	stored, _ := env.factory.WorkLogs.FindById(context.Background(), log.Id)
	assert.Equal(t, entity.StatusPendingEdit, stored.Status)

	shadows, _ := env.factory.WorkLogs.FindShadowsOf(context.Background(), log.Id)
	require.Len(t, shadows, 1)
	assert.Equal(t, "MX-300", shadows[0].Model)
}

func TestHistoryResubmitWrongStatusConflicts(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")

	err := svc.Resubmit(context.Background(), user.Id, &dto.ResubmitWorklogRequest{
		Id: log.Id, Date: "2026-08-22",
		Model: "x", SerialNumber: "x", WorkOrder: "x", PartNumber: "x", OrderNumber: "x",
		UnitName: "Unit A", WorkType: "Assembly", Minutes: "90", EditReason: "retry",
	})
	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestHistoryGetHistoryPaginatesOriginals(t *testing.T) {
	env := newTestEnv()
	svc := newHistoryService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)

	original := env.seedLog(user.EmployeeId, entity.StatusApproved, "Unit A")
	require.NoError(t, svc.Edit(context.Background(), user.Id, &dto.EditWorklogRequest{
		Id: original.Id, Date: "2026-08-21",
		Model: "proposed", SerialNumber: "SN", WorkOrder: "WO", PartNumber: "PN", OrderNumber: "ON",
		UnitName: "Unit A", WorkType: "Rework", Minutes: "60", EditReason: "typo",
	}))
	env.seedLog(user.EmployeeId, entity.StatusDraft, "Unit A")

	res, err := svc.GetHistory(context.Background(), user.Id, dto.HistoryQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)

	// Two originals plus the shadow row riding along with its original.
	assert.Equal(t, int64(2), res.Pagination.TotalItems)
	assert.Len(t, res.WorkRows, 3)

	var shadowSeen bool
	for _, row := range res.WorkRows {
		if row.OriginalId != nil {
			shadowSeen = true
			assert.Equal(t, original.Id, *row.OriginalId)
		}
	}
	assert.True(t, shadowSeen)
}
