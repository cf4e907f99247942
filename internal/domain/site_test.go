package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarousel_Wraps(t *testing.T) {
	t.Parallel()

	c := Carousel{Size: 3}

	c = c.Prev()
	assert.Equal(t, 2, c.Current, "prev from first wraps to last")

	c = c.Next()
	assert.Equal(t, 0, c.Current, "next from last wraps to first")

	c = c.Next().Next()
	assert.Equal(t, 2, c.Current)
	assert.Equal(t, []int{-200, -100, 0}, c.Offsets())
}

func TestCarousel_GoTo(t *testing.T) {
	t.Parallel()

	c := Carousel{Size: 4}

	got, err := c.GoTo(3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Current)

	_, err = c.GoTo(4)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = c.GoTo(-1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCarousel_EmptyIsStable(t *testing.T) {
	t.Parallel()

	c := Carousel{}
	assert.Equal(t, c, c.Next())
	assert.Equal(t, c, c.Prev())
	assert.Empty(t, c.Offsets())
}

func TestPlan_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Basic Plan", PlanBasic.Label())
	assert.Equal(t, "Premium Plan", PlanPremium.Label())
	assert.True(t, PlanBasic.IsValid())
	assert.False(t, Plan("gold").IsValid())
}
