package weightset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStar(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		for _, w := range []bool{false, true} {
			s, err := B{}.Star(w)
			require.NoError(t, err)
			assert.True(t, s)
		}
		_, err := F2{}.Star(true)
		assert.ErrorIs(t, err, ErrStar)
	})

	t.Run("integers", func(t *testing.T) {
		s, err := Z{}.Star(0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), s)
		_, err = Z{}.Star(2)
		assert.ErrorIs(t, err, ErrStar)
		_, err = N{}.Star(1)
		assert.ErrorIs(t, err, ErrStar)
	})

	t.Run("tropical", func(t *testing.T) {
		s, err := ZMin{}.Star(4)
		require.NoError(t, err)
		assert.Equal(t, int64(0), s)
		_, err = ZMin{}.Star(-1)
		assert.ErrorIs(t, err, ErrStar)

		s, err = ZMax{}.Star(-4)
		require.NoError(t, err)
		assert.Equal(t, int64(0), s)
		_, err = ZMax{}.Star(1)
		assert.ErrorIs(t, err, ErrStar)
	})

	t.Run("rationals", func(t *testing.T) {
		tests := []struct {
			w    Rational
			want Rational
		}{
			{NewRational(1, 2), NewRational(2, 1)},
			{NewRational(-1, 2), NewRational(2, 3)},
			{NewRational(0, 5), NewRational(1, 1)},
		}
		for _, tt := range tests {
			s, err := Q{}.Star(tt.w)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s, Q{}.Format(tt.w))
		}
		_, err := Q{}.Star(NewRational(3, 3))
		assert.ErrorIs(t, err, ErrStar)
	})

	t.Run("reals", func(t *testing.T) {
		s, err := R{}.Star(0.5)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, s, 1e-12)
		_, err = R{}.Star(-1)
		assert.ErrorIs(t, err, ErrStar)
	})
}

func TestRational(t *testing.T) {
	q := Q{}
	assert.Equal(t, Rational{-1, 2}, NewRational(2, -4))
	assert.Equal(t, Rational{0, 1}, NewRational(0, -7))
	assert.Panics(t, func() { NewRational(3, 0) })
	assert.Panics(t, func() { NewRational(0, 0) })
	assert.Equal(t, NewRational(5, 6), q.Add(NewRational(1, 2), NewRational(1, 3)))
	assert.Equal(t, NewRational(1, 6), q.Mul(NewRational(1, 2), NewRational(1, 3)))
	assert.True(t, q.IsZero(q.Add(NewRational(1, 2), NewRational(-1, 2))))
	assert.True(t, q.LessThan(NewRational(1, 3), NewRational(1, 2)))
	assert.Equal(t, NewRational(1, 2), q.Abs(NewRational(-1, 2)))
	assert.Equal(t, "-1/2", q.Format(NewRational(-1, 2)))
	assert.Equal(t, "3", q.Format(NewRational(6, 2)))
	assert.Equal(t, q.Hash(NewRational(2, 4)), q.Hash(NewRational(1, 2)))
}

func TestTropical(t *testing.T) {
	z := ZMin{}
	assert.True(t, z.IsZero(z.Zero()))
	assert.Equal(t, int64(3), z.Add(3, 7))
	assert.Equal(t, int64(10), z.Mul(3, 7))
	assert.Equal(t, Infinity, z.Mul(3, Infinity))
	assert.True(t, z.LessThan(Infinity, 3))
	assert.Equal(t, "oo", z.Format(Infinity))

	m := ZMax{}
	assert.Equal(t, int64(7), m.Add(3, 7))
	assert.Equal(t, MinusInfinity, m.Mul(MinusInfinity, 7))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		got  StarStatus
		want StarStatus
	}{
		{"B", B{}.StarStatus(), Starrable},
		{"F2", F2{}.StarStatus(), NonStarrable},
		{"N", N{}.StarStatus(), NonStarrable},
		{"Z", Z{}.StarStatus(), NonStarrable},
		{"ZMin", ZMin{}.StarStatus(), Tops},
		{"ZMax", ZMax{}.StarStatus(), Tops},
		{"Q", Q{}.StarStatus(), Absval},
		{"R", R{}.StarStatus(), Absval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got, tt.got.String())
		})
	}

	assert.True(t, IsBoolean[bool](B{}))
	assert.True(t, IsBoolean[bool](&B{}))
	assert.False(t, IsBoolean[bool](F2{}))
	assert.False(t, IsBoolean[int64](Z{}))
}
