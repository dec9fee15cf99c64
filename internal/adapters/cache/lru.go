package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU keeps the most recently used expected scores in memory.
type LRU struct {
	scores *lru.Cache[int, float64]
}

func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[int, float64](size)
	if err != nil {
		return nil, fmt.Errorf("new score cache of size %d: %w", size, err)
	}
	return &LRU{scores: c}, nil
}

func (l *LRU) Get(target int) (float64, bool) {
	return l.scores.Get(target)
}

func (l *LRU) Add(target int, score float64) {
	l.scores.Add(target, score)
}

// Len reports how many targets are cached.
func (l *LRU) Len() int {
	return l.scores.Len()
}
