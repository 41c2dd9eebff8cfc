package ploidy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CenterForMedicalGeneticsGhent/relernn/internal/variants"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, Result{Haploid: true, Samples: 12}, Classify([]int8{-1, -1, -1}, 12))
	assert.Equal(t, Result{Haploid: false, Samples: 24}, Classify([]int8{-1, 0, -1}, 12))
	assert.Equal(t, Result{Haploid: false, Samples: 24}, Classify([]int8{1}, 12))
}

func TestFirstSampleHaploid(t *testing.T) {
	g := variants.NewGenotypes(3, 4, 2)
	for v := 0; v < 3; v++ {
		for s := 0; s < 4; s++ {
			g.Set(v, s, 0, int8((v+s)%2))
			g.Set(v, s, 1, variants.Missing)
		}
	}
	r, err := FirstSample{}.Detect(g)
	require.NoError(t, err)
	assert.True(t, r.Haploid)
	assert.Equal(t, 4, r.Samples)
	assert.Equal(t, "haploid", r.String())
}

func TestFirstSampleDiploid(t *testing.T) {
	g := variants.NewGenotypes(3, 4, 2)
	g.Set(2, 0, 1, 1)
	r, err := FirstSample{}.Detect(g)
	require.NoError(t, err)
	assert.False(t, r.Haploid)
	assert.Equal(t, 8, r.Samples)
}

func TestFirstSampleSingleSlot(t *testing.T) {
	r, err := FirstSample{}.Detect(variants.NewGenotypes(2, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, Result{Haploid: true, Samples: 5}, r)
}

func TestFirstSampleEmpty(t *testing.T) {
	_, err := FirstSample{}.Detect(variants.NewGenotypes(0, 5, 2))
	assert.Error(t, err)
}
