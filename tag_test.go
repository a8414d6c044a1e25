package tagalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagPacking(t *testing.T) {
	tests := []struct {
		name string
		tag  tag
		want uint64
	}{
		{"free_prev_free", tag{size: 28}, 28},
		{"busy_prev_free", tag{size: 28, busy: true}, 29},
		{"free_prev_busy", tag{size: 28, prevBusy: true}, 30},
		{"busy_prev_busy", tag{size: 28, busy: true, prevBusy: true}, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, packTag(tt.tag))
			assert.Equal(t, tt.tag, unpackTag(tt.want))
		})
	}
}

func TestUnpackMasksFlags(t *testing.T) {
	// Size decoding must strip both flag bits no matter their values.
	for w := uint64(0); w < 4; w++ {
		assert.Equal(t, 256, unpackTag(256|w).size, "word=%d", 256|w)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct{ in, want int }{
		{1, 4}, {2, 4}, {3, 4}, {4, 4}, {5, 8}, {100, 100}, {101, 104},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, alignUp(tt.in), "alignUp(%d)", tt.in)
	}
}
