package ordering

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/novapath/trident/internal/bank"
)

// DefaultCacheSize bounds the number of orderings kept in memory.
const DefaultCacheSize = 256

// Cache memoizes derived orderings by seed for one bank. Identifiers that
// share a seed share an ordering; orderings are immutable so nothing
// mutable is shared.
type Cache struct {
	bank  *bank.Bank
	lru   *lru.Cache[int64, *Ordering]
	group singleflight.Group
}

// NewCache returns a cache over b holding at most size orderings. A
// non-positive size uses DefaultCacheSize.
func NewCache(b *bank.Bank, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[int64, *Ordering](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Cache{bank: b, lru: c}
}

// Get returns the ordering for seed, deriving it on a miss. Concurrent
// misses for the same seed derive once.
func (c *Cache) Get(seed int64) *Ordering {
	if o, ok := c.lru.Get(seed); ok {
		return o
	}
	v, _, _ := c.group.Do(strconv.FormatInt(seed, 10), func() (any, error) {
		if o, ok := c.lru.Get(seed); ok {
			return o, nil
		}
		o := Derive(c.bank, seed)
		c.lru.Add(seed, o)
		return o, nil
	})
	return v.(*Ordering)
}

// Len returns the number of cached orderings.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Bank returns the bank the cache derives from.
func (c *Cache) Bank() *bank.Bank {
	return c.bank
}
