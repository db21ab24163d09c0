package chain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStreamDeterminism(t *testing.T) {
	a := NewHashStream(42)
	b := NewHashStream(42)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.Next(), b.Next(), "position %d", i)
	}
}

func TestHashStreamSeedsDiffer(t *testing.T) {
	a := NewHashStream(0)
	b := NewHashStream(1)
	same := true
	for i := 0; i < 8; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSkipForHash(t *testing.T) {
	type args struct {
		hash uint64
		i    uint64
	}
	tests := []struct {
		name string
		args args
		want uint64
	}{
		{"zero hash skips to genesis", args{0, 100}, 100},
		{"hash 1 is unbounded, capped", args{1, 100}, 100},
		{"max hash earns one", args{math.MaxUint64, 100}, 1},
		{"half range earns one", args{math.MaxUint64/2 + 1, 100}, 1},
		{"half range less one earns two", args{math.MaxUint64 / 2, 100}, 2},
		{"cap binds before the quotient", args{3, 5}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkipForHash(tt.args.hash, tt.args.i); got != tt.want {
				t.Errorf("SkipForHash() = %v, want %v", got, tt.want)
			}
		})
	}
}
