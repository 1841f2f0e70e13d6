package session

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles report generation per session
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{rdb: GetRedisClient()}
}

// RateLimitConfig defines rate limit rules
type RateLimitConfig struct {
	MaxReports   int
	ReportWindow time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxReports:   3,
		ReportWindow: time.Minute,
	}
}

// CheckReportRateLimit reports whether a session may generate another report
func (rl *RateLimiter) CheckReportRateLimit(sessionID string, config RateLimitConfig) (bool, error) {
	if rl == nil || rl.rdb == nil {
		return false, fmt.Errorf("Redis client not available")
	}

	key := fmt.Sprintf("rate:report:%s", sessionID)

	count, err := rl.rdb.Get(GetContext(), key).Int()
	if err == redis.Nil {
		return true, nil
	} else if err != nil {
		return false, err
	}

	return count < config.MaxReports, nil
}

// RecordReport counts a generated report against the session's window
func (rl *RateLimiter) RecordReport(sessionID string, config RateLimitConfig) error {
	if rl == nil || rl.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	key := fmt.Sprintf("rate:report:%s", sessionID)

	count, err := rl.rdb.Incr(GetContext(), key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		rl.rdb.Expire(GetContext(), key, config.ReportWindow)
	}
	return nil
}
