package bgjobs

import (
	"sync"
	"sync/atomic"
)

// PoolLocker hands out one lock per pool name. Draws advance pool state, so
// draws and reconfiguration of the same pool both take the exclusive lock.
type PoolLocker struct {
	mu sync.Mutex
	m  map[string]*PoolLock
}

func NewPoolLocker() *PoolLocker {
	return &PoolLocker{
		m: make(map[string]*PoolLock),
	}
}

// Get returns a lock for the pool.
func (l *PoolLocker) Get(name string) *PoolLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.m[name]
	if !ok {
		lock = newPoolLock()
		l.m[name] = lock
	}
	return lock
}

// Delete marks the pool lock as deleted and forgets it. Holders of the old
// lock can check Deleted after locking.
func (l *PoolLocker) Delete(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lock, ok := l.m[name]; ok {
		lock.Deleted.Store(true)
		delete(l.m, name)
	}
}

type PoolLock struct {
	mu sync.RWMutex

	Deleted atomic.Bool
}

func newPoolLock() *PoolLock {
	return &PoolLock{}
}

func (l *PoolLock) ExclusiveLock() func() {
	l.mu.Lock()
	return l.mu.Unlock
}

func (l *PoolLock) SharedLock() func() {
	l.mu.RLock()
	return l.mu.RUnlock
}
