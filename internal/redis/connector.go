package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/vitae/internal/logger"
)

// ConnectOptions defines the Redis client and its startup retry behavior.
type ConnectOptions struct {
	Addr         string        // Redis address (ex: "localhost:6379")
	User         string        // Optional username
	Password     string        // Optional password
	DB           int           // Redis DB number
	DialTimeout  time.Duration // Redis dial timeout
	ReadTimeout  time.Duration // Redis read timeout
	WriteTimeout time.Duration // Redis write timeout
	PoolSize     int           // Redis connection pool size

	Retry RetryPolicy
}

// RetryPolicy controls how long startup waits for Redis.
type RetryPolicy struct {
	Total         time.Duration // total time allowed for connection attempts (ex: 30s)
	Initial       time.Duration // first wait between attempts, doubled each time (ex: 2s)
	MaxWait       time.Duration // cap for the wait between attempts (ex: 10s)
	PingTimeout   time.Duration // timeout for each ping attempt (ex: 5s)
	WarnThreshold int           // attempts logged as warnings before escalating to errors
}

func (p RetryPolicy) validate() error {
	switch {
	case p.Total <= 0:
		return fmt.Errorf("retry total must be > 0, got %v", p.Total)
	case p.Initial <= 0:
		return fmt.Errorf("retry initial wait must be > 0, got %v", p.Initial)
	case p.MaxWait <= 0:
		return fmt.Errorf("retry max wait must be > 0, got %v", p.MaxWait)
	case p.PingTimeout <= 0:
		return fmt.Errorf("ping timeout must be > 0, got %v", p.PingTimeout)
	case p.WarnThreshold < 0:
		return fmt.Errorf("warn threshold must be >= 0, got %d", p.WarnThreshold)
	}
	return nil
}

// next doubles wait up to MaxWait.
func (p RetryPolicy) next(wait time.Duration) time.Duration {
	wait *= 2
	if wait > p.MaxWait {
		return p.MaxWait
	}
	return wait
}

// Connect creates a Redis client and pings it with exponential backoff
// until it answers, ctx is cancelled, or Retry.Total elapses.
// The client is closed when no attempt succeeds.
func Connect(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.Retry.validate(); err != nil {
		log.Error("invalid redis retry policy", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitReady(ctx, client, opts.Addr, opts.Retry, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitReady(ctx context.Context, client *redis.Client, addr string, p RetryPolicy, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, p.Total)
	defer cancel()

	log.Info("connecting to redis",
		logger.String("addr", addr),
		logger.Duration("timeout", p.Total))

	start := time.Now()
	wait := p.Initial
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, p.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.String("addr", addr),
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis", logger.String("addr", addr))
			}
			return nil
		}

		fields := []zap.Field{
			logger.String("addr", addr),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", wait),
			logger.Error(err),
		}
		if attempt <= p.WarnThreshold {
			log.Warn("redis connection failed, retrying", fields...)
		} else {
			log.Error("redis still unavailable - connection attempts failing", fields...)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable - failed to connect after timeout",
				logger.String("addr", addr),
				logger.Int("attempts", attempt),
				logger.Duration("timeout", p.Total),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				addr, attempt, p.Total, err)
		case <-timer.C:
		}
		wait = p.next(wait)
	}
}
