package topo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRFC6962ProofLen(t *testing.T) {
	type args struct {
		n  uint64
		to uint64
	}
	tests := []struct {
		name string
		args args
		want uint64
	}{
		{"singleton", args{1, 0}, 0},
		{"pair left", args{2, 0}, 1},
		{"pair right", args{2, 1}, 1},

		//	        ^
		//	       / \
		//	      /\  \
		//	     /  \  \
		//	    /    \  \
		//	   /\    /\  \
		//	  0  1  2  3  4
		{"n=5 to=0", args{5, 0}, 3},
		{"n=5 to=3", args{5, 3}, 3},
		{"n=5 to=4", args{5, 4}, 1},

		{"n=7 to=6", args{7, 6}, 2},
		{"n=6 to=4", args{6, 4}, 2},
		{"n=6 to=5", args{6, 5}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RFC6962ProofLen(tt.args.n, tt.args.to); got != tt.want {
				t.Errorf("RFC6962ProofLen() = %v, want %v", got, tt.want)
			}
		})
	}
}

// For a perfect tree every proof is the full height.
func TestRFC6962PowerOfTwoSymmetry(t *testing.T) {
	for _, k := range []uint64{1, 2, 3, 4, 6, 10} {
		n := uint64(1) << k
		for to := uint64(0); to < n; to++ {
			if got := RFC6962ProofLen(n, to); got != k {
				t.Fatalf("RFC6962ProofLen(%d, %d) = %v, want %v", n, to, got, k)
			}
		}
	}
}

func TestReverseRFC6962ProofLen(t *testing.T) {
	for n := uint64(1); n < 100; n++ {
		for to := uint64(0); to < n; to++ {
			assert.Equal(t, RFC6962ProofLen(n, n-1-to), ReverseRFC6962ProofLen(n, to),
				"n=%d to=%d", n, to)
		}
	}
}

func TestArrayProofLen(t *testing.T) {
	// The built tree hangs trailing singletons one level lower than the
	// closed form, so n=5 differs from RFC6962ProofLen only at to=4.
	want := []uint64{3, 3, 3, 3, 2}
	for to, w := range want {
		assert.Equal(t, w, ArrayProofLen(5, uint64(to)), "to=%d", to)
	}

	// on perfect trees the two conventions agree everywhere
	for _, k := range []uint64{1, 2, 3, 4, 7} {
		n := uint64(1) << k
		for to := uint64(0); to < n; to++ {
			assert.Equal(t, RFC6962ProofLen(n, to), ArrayProofLen(n, to),
				"n=%d to=%d", n, to)
		}
	}
}

func TestOracleDeterminism(t *testing.T) {
	for _, id := range IDs() {
		t.Run(string(id), func(t *testing.T) {
			oracle, err := New(id)
			if err != nil {
				t.Fatal(err)
			}
			for _, n := range []uint64{1, 2, 5, 33, 200} {
				for to := uint64(0); to < n; to += 3 {
					first := oracle.ProofLen(n, to)
					assert.Equal(t, first, oracle.ProofLen(n, to),
						fmt.Sprintf("%s n=%d to=%d", id, n, to))
				}
			}
		})
	}
}

func TestNewUnknownOracle(t *testing.T) {
	_, err := New(ID("escher"))
	assert.ErrorIs(t, err, ErrUnknownOracle)
}
