package service

import (
	"context"
	"testing"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchingAdmins(t *testing.T) {
	everything := &entity.User{Name: "watches all"}
	unitA := &entity.User{Name: "unit a only", DefaultUnit: strptr("Unit A")}
	unitB := &entity.User{Name: "unit b only", DefaultUnit: strptr("Unit B")}
	admins := []*entity.User{everything, unitA, unitB}

	tests := []struct {
		name     string
		unitName string
		want     []string
	}{
		{name: "unit a request", unitName: "Unit A", want: []string{"watches all", "unit a only"}},
		{name: "unit b request", unitName: "Unit B", want: []string{"watches all", "unit b only"}},
		{name: "unwatched unit", unitName: "Unit C", want: []string{"watches all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WatchingAdmins(admins, tt.unitName)
			names := make([]string, 0, len(got))
			for _, admin := range got {
				names = append(names, admin.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestNotifyWorklogRequestFanOut(t *testing.T) {
	env := newTestEnv()
	watcher := env.seedUser("admin001", "Watcher", 2, strptr("Unit A"))
	elsewhere := env.seedUser("admin002", "Elsewhere", 2, strptr("Unit B"))
	broad := env.seedUser("admin003", "Broad", 2, nil)
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	log := env.seedLog(submitter.EmployeeId, entity.StatusPendingAdd, "Unit A")

	env.notify.NotifyWorklogRequest(context.Background(), submitter, log.Id, "Unit A", dto.RequestTypeAdd)

	events := env.delivery.sentTo(watcher.Id, dto.EventWorklogRequest)
	require.Len(t, events, 1)
	payload := events[0].Data.(dto.WorklogRequestEvent)
	assert.Equal(t, log.Id, payload.WorklogId)
	assert.Equal(t, "Unit A", payload.UnitName)
	assert.Equal(t, dto.RequestTypeAdd, payload.Type)
	assert.Equal(t, "Taro", payload.EmployeeName)
	assert.Equal(t, int64(1), payload.PendingCount.PendingAdd)

	assert.Len(t, env.delivery.sentTo(broad.Id, dto.EventWorklogRequest), 1)
	assert.Empty(t, env.delivery.sentTo(elsewhere.Id, dto.EventWorklogRequest))
	assert.Empty(t, env.delivery.sentTo(submitter.Id, dto.EventWorklogRequest))
}

func TestNotifyRejectedIncludesRejectedCounts(t *testing.T) {
	env := newTestEnv()
	submitter := env.seedUser("emp001", "Taro", 1, nil)
	rejected := env.seedLog(submitter.EmployeeId, entity.StatusRejectedAdd, "Unit A")
	env.seedLog(submitter.EmployeeId, entity.StatusRejectedEdit, "Unit A")

	env.notify.NotifyRejected(context.Background(), submitter, rejected.Id, "Unit A", dto.RequestTypeEdit, "wrong unit")

	events := env.delivery.sentTo(submitter.Id, dto.EventWorklogRejected)
	require.Len(t, events, 1)
	payload := events[0].Data.(dto.WorklogRejectedEvent)
	assert.Equal(t, rejected.Id, payload.WorklogId)
	assert.Equal(t, "wrong unit", payload.RejectReason)
	assert.Equal(t, int64(1), payload.RejectCount.RejectedAdd)
	assert.Equal(t, int64(1), payload.RejectCount.RejectedEdit)
}
