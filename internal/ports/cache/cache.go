package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrMiss is returned by Get when the key is absent or invalidated.
var ErrMiss = errors.New("cache miss")

// RecordCache stores single records as JSON.
//
// Invalidate leaves a short-lived tombstone under each key, and Set only writes
// keys that hold nothing, so a reader that loaded a record before a mutation
// cannot put the old version back.
type RecordCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

func UserKey(id uint) string { return fmt.Sprintf("blog:user:%d", id) }

func PostKey(id uint) string { return fmt.Sprintf("blog:post:%d", id) }

// Disabled is used when no cache backend is configured; every Get misses.
type Disabled struct{}

func (Disabled) Get(context.Context, string, any) error      { return ErrMiss }
func (Disabled) Set(context.Context, string, any) error      { return nil }
func (Disabled) Invalidate(context.Context, ...string) error { return nil }
