package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/vitae/internal/logger"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		Total:         300 * time.Millisecond,
		Initial:       20 * time.Millisecond,
		MaxWait:       50 * time.Millisecond,
		PingTimeout:   50 * time.Millisecond,
		WarnThreshold: 1,
	}
}

func TestRetryPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *RetryPolicy)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *RetryPolicy) {}},
		{name: "zero total", mutate: func(p *RetryPolicy) { p.Total = 0 }, wantErr: true},
		{name: "zero initial", mutate: func(p *RetryPolicy) { p.Initial = 0 }, wantErr: true},
		{name: "zero max wait", mutate: func(p *RetryPolicy) { p.MaxWait = 0 }, wantErr: true},
		{name: "zero ping timeout", mutate: func(p *RetryPolicy) { p.PingTimeout = 0 }, wantErr: true},
		{name: "negative threshold", mutate: func(p *RetryPolicy) { p.WarnThreshold = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fastPolicy()
			tt.mutate(&p)
			if err := p.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicyNextCaps(t *testing.T) {
	p := fastPolicy()
	assert.Equal(t, 40*time.Millisecond, p.next(20*time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, p.next(40*time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, p.next(50*time.Millisecond))
}

func TestConnectSucceeds(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), ConnectOptions{Addr: mr.Addr(), Retry: fastPolicy()}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestConnectGivesUp(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := Connect(context.Background(), ConnectOptions{
		Addr:        addr,
		DialTimeout: 20 * time.Millisecond,
		Retry:       fastPolicy(),
	}, logger.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unavailable at "+addr)
	assert.Less(t, time.Since(start), 5*time.Second)
}
