package blockfall

import "math/rand/v2"

// bagStream decorrelates the bag generator from other generators seeded
// with the same run seed.
const bagStream = 0x7ba6_5eed_0000_0007

// Bag deals shape ids using the 7-bag system: every refill appends one
// shuffled copy of all seven shapes, so each run of seven consecutive draws
// from a refill boundary contains every shape exactly once.
type Bag struct {
	rng     *rand.Rand
	queue   []Shape
	refills int
}

// NewBag creates a bag whose generator is seeded once with seed and reused
// for every refill.
func NewBag(seed int64) *Bag {
	return &Bag{
		rng:   rand.New(rand.NewPCG(uint64(seed), bagStream)),
		queue: make([]Shape, 0, ShapeCount),
	}
}

// Refill appends a uniformly random permutation of all shapes to the queue.
func (b *Bag) Refill() {
	var perm [ShapeCount]Shape
	for i := range perm {
		perm[i] = Shape(i)
	}
	b.rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	b.queue = append(b.queue, perm[:]...)
	b.refills++
}

// Next removes and returns the front of the queue, refilling first if empty.
func (b *Bag) Next() Shape {
	if len(b.queue) == 0 {
		b.Refill()
	}
	s := b.queue[0]
	b.queue = b.queue[1:]
	return s
}

// Len returns the number of queued shapes.
func (b *Bag) Len() int {
	return len(b.queue)
}

// Refills returns how many times the bag has been refilled.
func (b *Bag) Refills() int {
	return b.refills
}
