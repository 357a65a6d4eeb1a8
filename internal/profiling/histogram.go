package profiling

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// histogram buckets values into equal-width bins over [min, max]. The
// top edge is widened one ULP so the maximum lands in the last bucket.
func histogram(values []float64, min, max float64) []HistogramBucket {
	if len(values) == 0 {
		return nil
	}

	if min == max {
		return []HistogramBucket{{Low: min, High: max, Count: len(values)}}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	dividers := make([]float64, histogramBuckets+1)
	width := (max - min) / float64(histogramBuckets)
	for i := range dividers {
		dividers[i] = min + width*float64(i)
	}
	dividers[histogramBuckets] = math.Nextafter(max, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	buckets := make([]HistogramBucket, histogramBuckets)
	for i := range buckets {
		high := min + width*float64(i+1)
		if i == histogramBuckets-1 {
			high = max
		}
		buckets[i] = HistogramBucket{
			Low:   min + width*float64(i),
			High:  high,
			Count: int(counts[i]),
		}
	}
	return buckets
}
