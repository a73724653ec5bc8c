package inventory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railbooking/internal/inventory"
	"railbooking/internal/models"
)

func testCatalog() *inventory.Catalog {
	return inventory.NewCatalog([]models.Train{
		{TrainNo: "T101", Name: "Express A", From: "Delhi", To: "Mumbai",
			Departure: "09:00", Arrival: "18:00",
			Seats: map[string]int{"SL": 10, "3A": 8, "2A": 1}},
	})
}

func TestFindReturnsCopy(t *testing.T) {
	c := testCatalog()

	train, err := c.Find("T101")
	require.NoError(t, err)
	train.Seats["SL"] = 0

	again, err := c.Find("T101")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Seats["SL"], "mutating a Find result must not touch the catalog")
}

func TestFindUnknownTrain(t *testing.T) {
	c := testCatalog()
	_, err := c.Find("T999")
	assert.ErrorIs(t, err, inventory.ErrTrainNotFound)
}

func TestReserveDecrementsUntilSoldOut(t *testing.T) {
	c := testCatalog()

	require.NoError(t, c.Reserve("T101", "2A"))

	train, _ := c.Find("T101")
	assert.Equal(t, 0, train.Seats["2A"])

	err := c.Reserve("T101", "2A")
	assert.ErrorIs(t, err, inventory.ErrSoldOut)

	// Failed reserve must not mutate.
	train, _ = c.Find("T101")
	assert.Equal(t, 0, train.Seats["2A"])
}

func TestReserveUnknownClass(t *testing.T) {
	c := testCatalog()
	err := c.Reserve("T101", "1A")
	assert.ErrorIs(t, err, inventory.ErrUnknownClass)
}

func TestReleaseCapsAtAllotment(t *testing.T) {
	c := testCatalog()

	require.NoError(t, c.Reserve("T101", "SL"))
	require.NoError(t, c.Release("T101", "SL"))

	train, _ := c.Find("T101")
	assert.Equal(t, 10, train.Seats["SL"])

	// A release above the seeded allotment is rejected.
	err := c.Release("T101", "SL")
	assert.Error(t, err)
	train, _ = c.Find("T101")
	assert.Equal(t, 10, train.Seats["SL"])
}

func TestConcurrentReservationsOfLastSeat(t *testing.T) {
	c := testCatalog() // 2A has exactly one seat

	const contenders = 16
	var wg sync.WaitGroup
	results := make(chan error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- c.Reserve("T101", "2A")
		}()
	}
	wg.Wait()
	close(results)

	successes, soldOut := 0, 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, inventory.ErrSoldOut)
			soldOut++
		}
	}

	assert.Equal(t, 1, successes, "exactly one contender wins the last seat")
	assert.Equal(t, contenders-1, soldOut)

	train, _ := c.Find("T101")
	assert.Equal(t, 0, train.Seats["2A"], "seat count never goes negative")
}

func TestListPreservesSeedOrder(t *testing.T) {
	c := inventory.NewCatalog(inventory.SeedTrains())
	trains := c.List()
	require.Len(t, trains, 13)
	assert.Equal(t, "T101", trains[0].TrainNo)
	assert.Equal(t, "UP110", trains[12].TrainNo)
}
