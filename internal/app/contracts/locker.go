package contracts

import (
	"context"
	"time"
)

// LockerService serializes critical sections across instances. TryLock
// returns the ownership value required to release the lock.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
