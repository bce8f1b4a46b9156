package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-hrm/internal/events"
	"go-hrm/internal/salarystructure"
)

// ConsumeEmployeeLifecycle seeds a zero-wage salary structure for every
// freshly created employee, so payroll officers start from a record
// instead of a 404.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	structureService salarystructure.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// A replayed event must never clobber a structure someone has
		// already configured.
		if _, err := structureService.StructureForEmployee(ctx, event.EmployeeID); err == nil {
			log.Warn("salary structure already exists for event, skipping",
				zap.String("employee_id", event.EmployeeID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = structureService.Upsert(ctx, salarystructure.UpsertStructureRequest{
			EmployeeID: event.EmployeeID,
			Wage:       "0",
		})
		if err != nil {
			log.Error("create default salary structure failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default salary structure created from employee_created event",
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
