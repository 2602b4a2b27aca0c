package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailable(t *testing.T) {
	assert.Equal(t, 7, Available(10, 3))
	assert.Equal(t, 0, Available(5, 5))
	assert.Equal(t, 10, Available(10, 0))
}

func TestAvailable_NegativeUnderOverReservation(t *testing.T) {
	// Over-reserved stock surfaces as a negative availability, no clamping.
	assert.Equal(t, -2, Available(3, 5))
	assert.Equal(t, -5, Available(0, 5))
}

func TestIsLowOrOutOfStock(t *testing.T) {
	assert.True(t, IsLowOrOutOfStock(0, 0))
	assert.True(t, IsLowOrOutOfStock(5, 5))
	assert.True(t, IsLowOrOutOfStock(3, 5))
	assert.False(t, IsLowOrOutOfStock(6, 5))
}

func TestIsOverReserved(t *testing.T) {
	assert.False(t, IsOverReserved(10, 10))
	assert.False(t, IsOverReserved(10, 3))
	assert.True(t, IsOverReserved(10, 11))
	assert.True(t, IsOverReserved(0, 1))
}
