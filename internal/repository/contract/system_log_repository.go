package contract

import "context"

type SystemLogRepository interface {
	Create(ctx context.Context, eventType, actor string, payload []byte) error
}
