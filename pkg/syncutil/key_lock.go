// Package syncutil provides synchronization helpers.
package syncutil

import "sync"

// KeyLock is a set of mutexes addressed by key. Entries are dropped once no
// goroutine holds or waits for them, so the set stays bounded by the number
// of keys in use.
type KeyLock struct {
	locks map[string]*keyMutex
	guard sync.Mutex
}

type keyMutex struct {
	mu   sync.Mutex
	refs int
}

func NewKeyLock() *KeyLock {
	return &KeyLock{
		locks: map[string]*keyMutex{},
	}
}

// Lock blocks until the lock for key is held and returns the function that
// releases it.
func (l *KeyLock) Lock(key string) func() {
	l.guard.Lock()

	km, ok := l.locks[key]
	if !ok {
		km = &keyMutex{}
		l.locks[key] = km
	}

	km.refs++
	l.guard.Unlock()

	km.mu.Lock()

	return func() {
		km.mu.Unlock()

		l.guard.Lock()
		defer l.guard.Unlock()

		km.refs--
		if km.refs == 0 {
			delete(l.locks, key)
		}
	}
}

// Len returns the number of keys currently held or waited on.
func (l *KeyLock) Len() int {
	l.guard.Lock()
	defer l.guard.Unlock()

	return len(l.locks)
}
