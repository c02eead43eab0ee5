package pagination

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
		want        Params
	}{
		{"empty", "", "", Params{1, 10}},
		{"numeric strings", "3", "25", Params{3, 25}},
		{"padded", " 2 ", " 5", Params{2, 5}},
		{"non numeric", "abc", "x1", Params{1, 10}},
		{"negative", "-4", "-10", Params{1, 10}},
		{"zero", "0", "0", Params{1, 10}},
		{"float", "1.5", "2.5", Params{1, 10}},
		{"clamped", "1", "1000", Params{1, MaxLimit}},
		{"huge page", "922337203685477582", "10", Params{math.MaxInt/10 + 1, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.page, tc.limit))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{1, 10}.Offset())
	assert.Equal(t, 20, Params{3, 10}.Offset())
	assert.Equal(t, 45, Params{10, 5}.Offset())
}

func TestTotalPagesIsCeil(t *testing.T) {
	for total := int64(0); total <= 120; total++ {
		for limit := 1; limit <= 25; limit++ {
			want := int(math.Ceil(float64(total) / float64(limit)))
			assert.Equal(t, want, TotalPages(total, limit), "total=%d limit=%d", total, limit)
		}
	}
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestNewFlags(t *testing.T) {
	for total := int64(0); total <= 40; total++ {
		for page := 1; page <= 6; page++ {
			p := New([]int{}, total, Params{Page: page, Limit: 10})
			assert.Equal(t, page < p.TotalPages, p.HasNext)
			if total == 0 {
				assert.False(t, p.HasNext)
				assert.False(t, p.HasPrev)
			} else {
				assert.Equal(t, page > 1, p.HasPrev)
			}
		}
	}
}

func TestNewLastPageScenario(t *testing.T) {
	rows := []int{21, 22, 23, 24, 25}
	p := New(rows, 25, Params{Page: 3, Limit: 10})

	assert.Len(t, p.Data, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewOutOfRangePage(t *testing.T) {
	p := New[int](nil, 15, Params{Page: 100, Limit: 10})

	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
	assert.Equal(t, int64(15), p.Total)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestEnvelopeJSON(t *testing.T) {
	p := New[string](nil, 0, Parse("1", "10"))

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, []any{}, decoded["data"])
	for _, key := range []string{"total", "page", "limit", "totalPages"} {
		_, isNumber := decoded[key].(float64)
		assert.True(t, isNumber, "%s should serialize as a number", key)
	}
	assert.Equal(t, false, decoded["hasNext"])
	assert.Equal(t, false, decoded["hasPrev"])
}

func TestHugePageOffsetStaysPositive(t *testing.T) {
	for _, limit := range []string{"1", "10", "100"} {
		p := Parse("9223372036854775807", limit)
		assert.GreaterOrEqual(t, p.Offset(), 0, "limit=%s", limit)
	}
}
