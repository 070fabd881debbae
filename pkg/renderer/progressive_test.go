package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesForPass(t *testing.T) {
	tests := []struct {
		name     string
		passes   int
		samples  int
		expected []int
	}{
		{"single pass", 1, 50, []int{50}},
		{"two passes", 2, 50, []int{1, 50}},
		{"even split", 5, 9, []int{1, 3, 5, 7, 9}},
		{"uneven split", 4, 50, []int{1, 17, 33, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for pass := 1; pass <= tt.passes; pass++ {
				got = append(got, samplesForPass(pass, tt.passes, tt.samples))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderProgressive_AccumulatesPasses(t *testing.T) {
	config := smallConfig()
	rt, err := NewRaytracer(litScene(), config, nil)
	require.NoError(t, err)

	passChan, errChan := rt.RenderProgressive(context.Background(), 3)

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	require.NoError(t, <-errChan)

	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, i+1, result.PassNumber)
		assert.Equal(t, i == 2, result.IsLast)
		require.NotNil(t, result.Frame)
		assert.Len(t, result.Frame.Pixels, config.Width*config.Height)
	}
	assert.Equal(t, 1.0, results[0].Stats.AverageSamples)
	assert.Equal(t, float64(config.SamplesPerPixel), results[2].Stats.AverageSamples)
}

func TestRenderProgressive_ClampsPassesToSamples(t *testing.T) {
	config := smallConfig()
	config.SamplesPerPixel = 2
	rt, err := NewRaytracer(litScene(), config, nil)
	require.NoError(t, err)

	passChan, errChan := rt.RenderProgressive(context.Background(), 10)
	count := 0
	for range passChan {
		count++
	}
	assert.NoError(t, <-errChan)
	assert.Equal(t, 2, count)
}

func TestRenderProgressive_Cancelled(t *testing.T) {
	rt, err := NewRaytracer(litScene(), smallConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := rt.RenderProgressive(ctx, 4)
	for range passChan {
		t.Fatal("no pass should complete after cancellation")
	}
	assert.ErrorIs(t, <-errChan, context.Canceled)
}
