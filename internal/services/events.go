package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/eslamalii/user-management-api/internal/logger"
	"github.com/eslamalii/user-management-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// publish marshals and writes a user lifecycle event. Publishing is
// best-effort: failures are logged and never fail the operation.
func publish(ctx context.Context, writer KafkaWriter, event models.UserEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: data,
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "event", event.Type, "err", err)
	}
}
