package domain

// Bucket is one (key, count) pair of an aggregation.
type Bucket[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// Counts is the result of grouping records by key. Keys keep first-seen
// order, which carries no meaning; consumers order explicitly.
type Counts[K comparable] struct {
	order  []K
	counts map[K]int
}

// Aggregate groups records by key and counts members. keyFn returns false for
// records whose key cannot be derived (e.g. an invalid timestamp); those
// records are left out of every bucket.
func Aggregate[K comparable](records []SightingRecord, keyFn func(SightingRecord) (K, bool)) *Counts[K] {
	c := &Counts[K]{counts: make(map[K]int)}
	for _, r := range records {
		k, ok := keyFn(r)
		if !ok {
			continue
		}
		c.add(k)
	}
	return c
}

func (c *Counts[K]) add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// Get returns the count for k, zero when unseen.
func (c *Counts[K]) Get(k K) int {
	return c.counts[k]
}

// Len returns the number of distinct keys.
func (c *Counts[K]) Len() int {
	return len(c.order)
}

// Keys returns the keys in first-seen order.
func (c *Counts[K]) Keys() []K {
	out := make([]K, len(c.order))
	copy(out, c.order)
	return out
}

// Buckets returns every observed key with its count, first-seen order.
func (c *Counts[K]) Buckets() []Bucket[K] {
	out := make([]Bucket[K], len(c.order))
	for i, k := range c.order {
		out[i] = Bucket[K]{Key: k, Count: c.counts[k]}
	}
	return out
}

// Ordered reads the counts back through a canonical domain. Every domain key
// appears, at zero when unseen; keys outside the domain are dropped.
func (c *Counts[K]) Ordered(domain []K) []Bucket[K] {
	out := make([]Bucket[K], len(domain))
	for i, k := range domain {
		out[i] = Bucket[K]{Key: k, Count: c.counts[k]}
	}
	return out
}

// Total returns the sum of all counts.
func (c *Counts[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Max returns the largest count, zero when empty.
func (c *Counts[K]) Max() int {
	m := 0
	for _, n := range c.counts {
		if n > m {
			m = n
		}
	}
	return m
}

// Nested is a two-level aggregation: outer key -> inner key -> count.
type Nested[K1, K2 comparable] struct {
	order []K1
	inner map[K1]*Counts[K2]
}

// AggregateNested groups by outer key, then by inner key within each group.
// A record missing either key is skipped.
func AggregateNested[K1, K2 comparable](
	records []SightingRecord,
	outerFn func(SightingRecord) (K1, bool),
	innerFn func(SightingRecord) (K2, bool),
) *Nested[K1, K2] {
	n := &Nested[K1, K2]{inner: make(map[K1]*Counts[K2])}
	for _, r := range records {
		k1, ok := outerFn(r)
		if !ok {
			continue
		}
		k2, ok := innerFn(r)
		if !ok {
			continue
		}
		c, ok := n.inner[k1]
		if !ok {
			c = &Counts[K2]{counts: make(map[K2]int)}
			n.inner[k1] = c
			n.order = append(n.order, k1)
		}
		c.add(k2)
	}
	return n
}

// Outer returns the outer keys in first-seen order.
func (n *Nested[K1, K2]) Outer() []K1 {
	out := make([]K1, len(n.order))
	copy(out, n.order)
	return out
}

// Get returns the count at (k1, k2), zero when unseen.
func (n *Nested[K1, K2]) Get(k1 K1, k2 K2) int {
	c, ok := n.inner[k1]
	if !ok {
		return 0
	}
	return c.Get(k2)
}

// Total returns the sum over every cell.
func (n *Nested[K1, K2]) Total() int {
	total := 0
	for _, c := range n.inner {
		total += c.Total()
	}
	return total
}

// Max returns the largest single cell count.
func (n *Nested[K1, K2]) Max() int {
	m := 0
	for _, c := range n.inner {
		if v := c.Max(); v > m {
			m = v
		}
	}
	return m
}
