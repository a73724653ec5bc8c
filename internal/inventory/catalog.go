package inventory

import (
	"errors"
	"fmt"
	"sync"

	"railbooking/internal/models"
)

var (
	ErrTrainNotFound = errors.New("train not found")
	ErrSoldOut       = errors.New("no seats available")
	ErrUnknownClass  = errors.New("train does not carry this class")
)

// Catalog holds the fixed train list and arbitrates seat counts. Each train
// carries its own lock so bookings on different trains never contend.
type Catalog struct {
	trains map[string]*trainEntry
	order  []string
}

type trainEntry struct {
	mu       sync.Mutex
	train    models.Train
	allotted map[string]int // seeded capacity per class, the Release ceiling
}

// NewCatalog seeds a catalog from static train definitions.
func NewCatalog(trains []models.Train) *Catalog {
	c := &Catalog{trains: make(map[string]*trainEntry, len(trains))}
	for _, t := range trains {
		entry := &trainEntry{
			train:    t.Clone(),
			allotted: make(map[string]int, len(t.Seats)),
		}
		for class, n := range t.Seats {
			entry.allotted[class] = n
		}
		c.trains[t.TrainNo] = entry
		c.order = append(c.order, t.TrainNo)
	}
	return c
}

// Find returns a copy of the train; callers cannot mutate seat counts through it.
func (c *Catalog) Find(trainNo string) (models.Train, error) {
	entry, ok := c.trains[trainNo]
	if !ok {
		return models.Train{}, fmt.Errorf("%w: %s", ErrTrainNotFound, trainNo)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.train.Clone(), nil
}

// List returns the catalog in seed order.
func (c *Catalog) List() []models.Train {
	out := make([]models.Train, 0, len(c.order))
	for _, trainNo := range c.order {
		entry := c.trains[trainNo]
		entry.mu.Lock()
		out = append(out, entry.train.Clone())
		entry.mu.Unlock()
	}
	return out
}

// Reserve decrements one seat for the class, failing with ErrSoldOut and no
// mutation when none remain. Check and decrement happen under the train lock.
func (c *Catalog) Reserve(trainNo, classCode string) error {
	entry, ok := c.trains[trainNo]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTrainNotFound, trainNo)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	seats, ok := entry.train.Seats[classCode]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnknownClass, classCode, trainNo)
	}
	if seats <= 0 {
		return fmt.Errorf("%w: class %s on train %s", ErrSoldOut, classCode, trainNo)
	}
	entry.train.Seats[classCode] = seats - 1
	return nil
}

// Release returns one seat to the class. The count is capped at the seeded
// allotment; a release that would exceed it is dropped.
func (c *Catalog) Release(trainNo, classCode string) error {
	entry, ok := c.trains[trainNo]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTrainNotFound, trainNo)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	seats, ok := entry.train.Seats[classCode]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnknownClass, classCode, trainNo)
	}
	if seats >= entry.allotted[classCode] {
		return fmt.Errorf("release would exceed allotment for class %s on train %s", classCode, trainNo)
	}
	entry.train.Seats[classCode] = seats + 1
	return nil
}

// Allotted returns the seeded capacity for a train and class.
func (c *Catalog) Allotted(trainNo, classCode string) (int, error) {
	entry, ok := c.trains[trainNo]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTrainNotFound, trainNo)
	}
	return entry.allotted[classCode], nil
}
