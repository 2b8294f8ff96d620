package trail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailAddKeepsOrderAndUniqueness(t *testing.T) {
	var tr Trail
	assert.True(t, tr.Add(Position{3, 5}))
	assert.True(t, tr.Add(Position{1, 0}))
	assert.True(t, tr.Add(Position{1, -2}))
	assert.False(t, tr.Add(Position{1, 0}))

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []Position{{1, -2}, {1, 0}, {3, 5}}, tr.Positions())
}

func TestTrailRemove(t *testing.T) {
	tr := New(Position{0, 0}, Position{2, 2})

	assert.True(t, tr.Remove(Position{0, 0}))
	assert.False(t, tr.Remove(Position{0, 0}))
	assert.False(t, tr.Contains(Position{0, 0}))
	assert.True(t, tr.Contains(Position{2, 2}))
	assert.Equal(t, 1, tr.Len())
}

func TestTrailCloneIsIndependent(t *testing.T) {
	tr := New(Position{1, 1})
	c := tr.Clone()
	c.Add(Position{2, 2})
	c.Remove(Position{1, 1})

	assert.Equal(t, []Position{{1, 1}}, tr.Positions())
	assert.False(t, tr.Equal(c))
}

func TestTrailString(t *testing.T) {
	assert.Equal(t, "()", Trail{}.String())
	assert.Equal(t, "((1 0) (2 2) (3 -5))", New(Position{3, -5}, Position{2, 2}, Position{1, 0}).String())
}

func TestPositionCompare(t *testing.T) {
	assert.Equal(t, -1, Position{0, 9}.Compare(Position{1, 0}))
	assert.Equal(t, 1, Position{1, 1}.Compare(Position{1, 0}))
	assert.Equal(t, 0, Position{4, 4}.Compare(Position{4, 4}))
}

func TestTrailStringRoundTrip(t *testing.T) {
	trails := []Trail{
		{},
		New(Position{0, 0}),
		New(Position{1, 0}, Position{2, 2}, Position{3, 5}),
		New(Position{-7, 12}, Position{31, -31}, Position{0, 1}, Position{0, -1}),
	}
	for _, tr := range trails {
		t.Run(tr.String(), func(t *testing.T) {
			got, err := Parse(tr.String())
			require.NoError(t, err)
			assert.True(t, tr.Equal(got), "got %s", got)
		})
	}
}
