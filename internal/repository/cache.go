package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// summaryCacheKey - ключ сводной статистики. Любая запись оповещения его удаляет.
	summaryCacheKey = "stats:summary"
	// summaryGenerationKey растет при каждой инвалидации, сводка кешируется только при неизменном поколении
	summaryGenerationKey = "stats:gen"
)

func invalidateSummary(ctx context.Context, redisClient *redis.Client) error {
	_, err := redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, summaryGenerationKey)
		pipe.Del(ctx, summaryCacheKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}
