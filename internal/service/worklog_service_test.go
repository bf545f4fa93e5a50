package service

import (
	"context"
	"testing"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/dto"
	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorklogService(env *testEnv) IWorklogService {
	return NewWorklogService(env.factory, nil, time.Minute)
}

func TestSaveDailyReplacesDraftRows(t *testing.T) {
	env := newTestEnv()
	svc := newWorklogService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	ctx := context.Background()

	first := validRow()
	second := validRow()
	second.Id = 2
	second.Model = "MX-200"
	_, err := svc.SaveDaily(ctx, user.Id, &dto.SaveWorklogRequest{
		WorkDate: "2026-08-20",
		WorkRows: []dto.WorkRow{first, second},
	})
	require.NoError(t, err)

	// A second save for the same day replaces the drafts outright.
	replacement := validRow()
	replacement.Model = "MX-300"
	_, err = svc.SaveDaily(ctx, user.Id, &dto.SaveWorklogRequest{
		WorkDate: "2026-08-20",
		WorkRows: []dto.WorkRow{replacement},
	})
	require.NoError(t, err)

	day, err := svc.GetDaily(ctx, user.Id, "2026-08-20")
	require.NoError(t, err)
	require.Len(t, day.WorkRows, 1)
	assert.Equal(t, "MX-300", day.WorkRows[0].Model)
}

func TestSaveDailyKeepsSubmittedRows(t *testing.T) {
	env := newTestEnv()
	svc := newWorklogService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	submitted := env.seedLog(user.EmployeeId, entity.StatusPendingAdd, "Unit A")
	ctx := context.Background()

	_, err := svc.SaveDaily(ctx, user.Id, &dto.SaveWorklogRequest{
		WorkDate: "2026-08-20",
		WorkRows: []dto.WorkRow{validRow()},
	})
	require.NoError(t, err)

	// The pending row shares the date but is not a draft, so it survives.
	stored, _ := env.factory.WorkLogs.FindById(ctx, submitted.Id)
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPendingAdd, stored.Status)

	day, err := svc.GetDaily(ctx, user.Id, "2026-08-20")
	require.NoError(t, err)
	assert.Len(t, day.WorkRows, 2)
}

func TestSaveDailyValidatesRows(t *testing.T) {
	env := newTestEnv()
	svc := newWorklogService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)

	bad := validRow()
	bad.Minutes = "0"
	_, err := svc.SaveDaily(context.Background(), user.Id, &dto.SaveWorklogRequest{
		WorkDate: "2026-08-20",
		WorkRows: []dto.WorkRow{bad},
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSaveDailyRejectsBadDate(t *testing.T) {
	env := newTestEnv()
	svc := newWorklogService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)

	_, err := svc.SaveDaily(context.Background(), user.Id, &dto.SaveWorklogRequest{
		WorkDate: "20/08/2026",
		WorkRows: []dto.WorkRow{validRow()},
	})
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSaveDailyUnknownUser(t *testing.T) {
	env := newTestEnv()
	svc := newWorklogService(env)

	_, err := svc.SaveDaily(context.Background(), uuid.New(), &dto.SaveWorklogRequest{
		WorkDate: "2026-08-20",
		WorkRows: []dto.WorkRow{validRow()},
	})
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestGetDailyFormatsQuantity(t *testing.T) {
	env := newTestEnv()
	svc := newWorklogService(env)
	user := env.seedUser("emp001", "Taro", 1, nil)
	ctx := context.Background()

	noQuantity := validRow()
	noQuantity.Quantity = "N/A"
	_, err := svc.SaveDaily(ctx, user.Id, &dto.SaveWorklogRequest{
		WorkDate: "2026-08-20",
		WorkRows: []dto.WorkRow{noQuantity},
	})
	require.NoError(t, err)

	day, err := svc.GetDaily(ctx, user.Id, "2026-08-20")
	require.NoError(t, err)
	require.Len(t, day.WorkRows, 1)
	assert.Equal(t, "", day.WorkRows[0].Quantity)
	assert.Equal(t, "30", day.WorkRows[0].Minutes)
	assert.Equal(t, "draft", day.WorkRows[0].Status)
}

func TestUnitOptionsCacheInvalidation(t *testing.T) {
	env := newTestEnv()
	worklogs := newWorklogService(env)
	units := NewUnitService(env.factory, nil, worklogs)
	ctx := context.Background()

	_, err := units.CreateUnit(ctx, &dto.UnitNameRequest{Name: "Unit A"})
	require.NoError(t, err)

	options, err := worklogs.UnitOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 1)

	// The admin mutation flushes the cache, so the new unit shows up
	// immediately instead of waiting out the TTL.
	_, err = units.CreateUnit(ctx, &dto.UnitNameRequest{Name: "Unit B"})
	require.NoError(t, err)

	options, err = worklogs.UnitOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, options, 2)
}
