package auction

import (
	"sync"

	"dutch_market/internal/domain/value"
)

// keyedMutex эксклюзивная секция на каждый индекс аукциона.
// Аукционы не удаляются, поэтому мьютексы тоже не удаляются: вызывающий
// берёт блокировку только для индекса, который есть в реестре.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[value.AuctionIndex]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[value.AuctionIndex]*sync.Mutex)}
}

func (k *keyedMutex) Lock(index value.AuctionIndex) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[index]
	if !ok {
		m = &sync.Mutex{}
		k.locks[index] = m
	}
	k.mu.Unlock()

	m.Lock()

	return m.Unlock
}

func (k *keyedMutex) len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.locks)
}
