package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCount(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 4: 8, 6: 14, 9: 27, 10: 31}
	for n, want := range cases {
		assert.Equal(t, want, DefaultCount(n), "n=%d", n)
	}
}

func TestRandom_PlaceSkipsStartAndGoal(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g, err := Populate(5, NewRandom(seed, 40))
		require.NoError(t, err)
		assert.False(t, g.Start().HasCollectible, "seed %d", seed)
		assert.False(t, g.Goal().HasCollectible, "seed %d", seed)
		assert.LessOrEqual(t, g.CollectibleCount(), 40)
	}
}

func TestRandom_SeedIsDeterministic(t *testing.T) {
	a, err := Populate(8, NewRandom(99, 0))
	require.NoError(t, err)
	b, err := Populate(8, NewRandom(99, 0))
	require.NoError(t, err)
	assert.Equal(t, Render(a), Render(b))
	assert.LessOrEqual(t, a.CollectibleCount(), DefaultCount(8))
	assert.Positive(t, a.CollectibleCount())
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]string{
		".M.",
		"..M",
		"...",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Size())

	g, err := Populate(3, l)
	require.NoError(t, err)
	assert.True(t, g.Cell(0, 1).HasCollectible)
	assert.True(t, g.Cell(1, 2).HasCollectible)
	assert.Equal(t, 2, g.CollectibleCount())
	assert.Equal(t, []string{".M.", "..M", "..."}, Render(g))
}

func TestParseLayout_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows []string
	}{
		{"Empty", nil},
		{"Ragged", []string{"..", "."}},
		{"NotSquare", []string{"...", "..."}},
		{"BadChar", []string{".X", ".."}},
		{"MushroomOnStart", []string{"M.", ".."}},
		{"MushroomOnGoal", []string{"..", ".M"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout(tc.rows)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestLayout_SizeMismatch(t *testing.T) {
	l, err := ParseLayout([]string{"..", ".."})
	require.NoError(t, err)
	_, err = Populate(3, l)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}
