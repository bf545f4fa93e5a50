package service

import (
	"context"
	"time"

	"github.com/Fusion-Mind-co/worklog-system/internal/entity"
	"github.com/Fusion-Mind-co/worklog-system/internal/repository/memory"

	"github.com/google/uuid"
)

// sentEvent records one delivery attempt made through the fake hub.
type sentEvent struct {
	UserID    uuid.UUID
	EventType string
	Data      interface{}
}

type fakeDelivery struct {
	events []sentEvent
}

func (d *fakeDelivery) Send(userID uuid.UUID, eventType string, data interface{}) error {
	d.events = append(d.events, sentEvent{UserID: userID, EventType: eventType, Data: data})
	return nil
}

func (d *fakeDelivery) sentTo(userID uuid.UUID, eventType string) []sentEvent {
	var out []sentEvent
	for _, e := range d.events {
		if e.UserID == userID && e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type testEnv struct {
	factory  *memory.Factory
	delivery *fakeDelivery
	notify   INotificationService
}

func newTestEnv() *testEnv {
	factory := memory.NewFactory()
	delivery := &fakeDelivery{}
	notify := NewNotificationService(factory, delivery, nopLogger{})
	return &testEnv{factory: factory, delivery: delivery, notify: notify}
}

func (e *testEnv) seedUser(employeeId, name string, roleLevel int, defaultUnit *string) *entity.User {
	user := &entity.User{
		Id:             uuid.New(),
		EmployeeId:     employeeId,
		Name:           name,
		DepartmentName: "Production",
		Position:       "Operator",
		RoleLevel:      roleLevel,
		DefaultUnit:    defaultUnit,
		CreatedAt:      time.Now(),
	}
	_ = e.factory.Users.Create(context.Background(), user)
	return user
}

func (e *testEnv) seedLog(employeeId string, status entity.WorkStatus, unitName string) *entity.WorkLog {
	log := &entity.WorkLog{
		Id:         uuid.New(),
		EmployeeId: employeeId,
		Date:       time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Model:      "MX-100",
		UnitName:   unitName,
		WorkType:   "Assembly",
		Minutes:    45,
		Status:     status,
	}
	_ = e.factory.WorkLogs.Create(context.Background(), log)
	return log
}

func strptr(s string) *string { return &s }
