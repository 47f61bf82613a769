package appointment

import (
	"context"
	"encoding/json"
	"fmt"

	"slotbook/models"
	"slotbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisAppointmentRepo stores the serialized collection under a single fixed
// key. A missing key is an empty schedule; a malformed payload degrades to an
// empty schedule with a logged diagnostic rather than an error.
type RedisAppointmentRepo struct {
	client *redis.Client
	key    string
}

func NewRedisAppointmentRepo(client *redis.Client, key string) *RedisAppointmentRepo {
	return &RedisAppointmentRepo{client: client, key: key}
}

func (r *RedisAppointmentRepo) LoadAll(ctx context.Context) ([]models.Appointment, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule key %q: %w", r.key, err)
	}
	return decodeStored(r.key, []byte(data)), nil
}

// decodeStored parses a persisted payload. Stored data is fail-open: a
// payload that does not parse degrades to an empty collection, and records
// whose range is invalid are dropped, each with a logged diagnostic.
func decodeStored(key string, data []byte) []models.Appointment {
	logger := utils.GetLogger()

	var stored []models.Appointment
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("malformed schedule payload, starting from an empty collection",
			zap.String("key", key), zap.Error(err))
		return nil
	}

	appts := make([]models.Appointment, 0, len(stored))
	for _, a := range stored {
		if _, err := models.NewInterval(a.Start, a.End); err != nil {
			logger.Warn("skipping stored appointment with invalid range",
				zap.String("id", a.ID), zap.Time("start", a.Start), zap.Time("end", a.End))
			continue
		}
		appts = append(appts, a)
	}
	return appts
}

func (r *RedisAppointmentRepo) SaveAll(ctx context.Context, appts []models.Appointment) error {
	if appts == nil {
		appts = []models.Appointment{}
	}
	data, err := json.Marshal(appts)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write schedule key %q: %w", r.key, err)
	}
	return nil
}
