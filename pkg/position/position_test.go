package position

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteSearch is the reference: smallest index whose position strictly
// exceeds offset, or len(positions) when none exists.
func bruteSearch(offset float64, positions []float64) int {
	for i, p := range positions {
		if p > offset {
			return i
		}
	}
	return len(positions)
}

func TestBinarySearch_Basic(t *testing.T) {
	positions := []float64{0, 20, 40, 60, 80}

	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{"zero offset", 0, 1},
		{"inside first row", 10, 1},
		{"exact boundary", 40, 3},
		{"between rows", 45, 3},
		{"bottom edge", 50, 3},
		{"past last row start", 95, 5},
		{"negative", -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BinarySearch(tt.offset, positions, 0, len(positions))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, bruteSearch(tt.offset, positions), got)
		})
	}
}

func TestBinarySearch_EmptyTable(t *testing.T) {
	assert.Equal(t, -1, BinarySearch(10, nil, 0, 0))
	assert.Equal(t, -1, BinarySearch(10, []float64{}, 0, 0))
}

func TestBinarySearch_DegenerateSlice(t *testing.T) {
	positions := []float64{0, 20, 40}
	assert.Equal(t, 2, BinarySearch(10, positions, 2, 2))
	assert.Equal(t, 0, BinarySearch(10, positions, 0, 0))
}

func TestBinarySearch_TiesResolveLow(t *testing.T) {
	// Zero-height rows produce equal adjacent offsets; the lowest index
	// whose position exceeds the offset wins.
	positions := []float64{0, 20, 20, 20, 40}
	assert.Equal(t, 1, BinarySearch(10, positions, 0, len(positions)))
	assert.Equal(t, 4, BinarySearch(20, positions, 0, len(positions)))
}

func TestBinarySearch_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(50) + 1
		positions := make([]float64, n)
		var acc float64
		for i := range positions {
			positions[i] = acc
			acc += float64(rng.Intn(30)) // zero heights allowed
		}
		for q := 0; q < 20; q++ {
			offset := float64(rng.Intn(int(acc+10))) - 5
			want := bruteSearch(offset, positions)
			got := BinarySearch(offset, positions, 0, len(positions))
			require.Equal(t, want, got, "positions=%v offset=%v", positions, offset)
		}
	}
}

func TestExponentialSearch_MatchesBinarySearch(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(80) + 1
		positions := make([]float64, n)
		var acc float64
		for i := range positions {
			positions[i] = acc
			acc += float64(rng.Intn(25) + 1)
		}
		for q := 0; q < 20; q++ {
			offset := float64(rng.Intn(int(acc)+10) + 1)
			want := BinarySearch(offset, positions, 0, len(positions))

			// Any starting index still below the queried offset must
			// agree with the plain binary search; that is the only
			// situation the exponential strategy runs in.
			for from := 0; from < n; from++ {
				if positions[from] >= offset {
					break
				}
				got := ExponentialSearch(offset, positions, from)
				require.Equal(t, want, got,
					"positions=%v offset=%v from=%d", positions, offset, from)
			}
		}
	}
}

func TestExponentialSearch_ProbeLandsOnEqualPosition(t *testing.T) {
	// The doubling probe can land exactly on a row boundary. The probe must
	// keep moving past positions equal to the offset, or the bounded window
	// excludes the strictly-greater answer.
	positions := []float64{0, 10, 20}
	assert.Equal(t, 2, ExponentialSearch(10, positions, 0))
	assert.Equal(t,
		BinarySearch(10, positions, 0, len(positions)),
		ExponentialSearch(10, positions, 0))

	// Same shape further out: the boundary value sits mid-table.
	longer := []float64{0, 15, 30, 45, 60, 75, 90}
	for from := 0; from < 3; from++ {
		assert.Equal(t, 4, ExponentialSearch(45, longer, from), "from=%d", from)
	}
}

func TestExponentialSearch_EmptyTable(t *testing.T) {
	assert.Equal(t, -1, ExponentialSearch(10, nil, 0))
}

func TestTable_Search(t *testing.T) {
	table := NewTable([]float64{0, 20, 40, 60, 80})

	assert.Equal(t, 1, table.Search(0))
	assert.Equal(t, 3, table.Search(45))
	assert.Equal(t, 3, table.Search(50))
	assert.Equal(t, 5, table.Search(95))
}

func TestTable_SearchEmpty(t *testing.T) {
	var table Table
	assert.Equal(t, -1, table.Search(10))
	assert.Equal(t, -1, table.IndexOf(10))
}

func TestTable_SearchEstimatedRegion(t *testing.T) {
	// Offsets past index 2 are estimates; queries beyond the measured
	// frontier use the exponential strategy and must still agree with a
	// plain binary search over the same values.
	positions := []float64{0, 20, 40, 62, 85, 110, 130}
	table := Table{Positions: positions, LastMeasured: 2}

	for offset := float64(0); offset < 140; offset += 7 {
		want := BinarySearch(offset, positions, 0, len(positions))
		assert.Equal(t, want, table.Search(offset), "offset=%v", offset)
	}
}

func TestTable_IndexOf(t *testing.T) {
	table := NewTable([]float64{0, 20, 40, 60, 80})

	tests := []struct {
		offset float64
		want   int
	}{
		{0, 0},
		{19, 0},
		{20, 1},
		{45, 2},
		{95, 4},  // clamped to the last row
		{500, 4}, // far past the content
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.IndexOf(tt.offset), "offset=%v", tt.offset)
	}
}

func TestTable_OffsetOf(t *testing.T) {
	table := NewTable([]float64{0, 20, 40})

	assert.Equal(t, 0.0, table.OffsetOf(-1))
	assert.Equal(t, 20.0, table.OffsetOf(1))
	assert.Equal(t, 40.0, table.OffsetOf(10))

	var empty Table
	assert.Equal(t, 0.0, empty.OffsetOf(3))
}
