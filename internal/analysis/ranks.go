package analysis

import "sort"

// midRanks converts values to 1-based ranks, with tied values receiving the
// average rank of their tie block.
func midRanks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, val := range data {
		pairs[i] = pair{value: val, index: i}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)

	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}

		groupSize := j - i
		avgRank := float64(i+1) + float64(groupSize-1)/2.0

		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}

		i = j
	}

	return ranks
}

// tieBlocks returns the size of every tie block in data (blocks of size 1
// included; they contribute nothing to the tie correction).
func tieBlocks(data []float64) []int {
	n := len(data)
	if n == 0 {
		return nil
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	var blocks []int
	i := 0
	for i < n {
		j := i + 1
		for j < n && sorted[j] == sorted[i] {
			j++
		}
		blocks = append(blocks, j-i)
		i = j
	}
	return blocks
}
