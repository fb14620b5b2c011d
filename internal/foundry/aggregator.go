package foundry

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// BoundaryUsage is one histogram row: how many node records reference a
// boundary id, and that boundary's name.
type BoundaryUsage struct {
	Boundary uint32
	Count    int
	Name     string
}

// BoundaryUsageHistogram counts node records per boundary id, ascending by
// id, each joined to its boundary name. An id with no name is an error.
func (f *Foundry) BoundaryUsageHistogram() ([]BoundaryUsage, error) {
	nodes, err := f.Node()
	if err != nil {
		return nil, err
	}
	ids, err := BoundaryIDsOf(nodes)
	if err != nil {
		return nil, err
	}

	counts := CountIDs(ids)
	rows := make([]BoundaryUsage, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, BoundaryUsage{Boundary: id, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Boundary < rows[j].Boundary })

	for i := range rows {
		name, err := f.boundaryNames.Lookup(int(rows[i].Boundary))
		if err != nil {
			return nil, fmt.Errorf("boundary %d used by %d nodes: %w", rows[i].Boundary, rows[i].Count, err)
		}
		rows[i].Name = name
	}
	return rows, nil
}

// CountIDs returns the frequency of every distinct id.
func CountIDs(ids []uint32) map[uint32]int {
	// 1. Split into worker chunks
	numWorkers := runtime.NumCPU()
	if numWorkers > len(ids) {
		numWorkers = len(ids)
	}
	if numWorkers == 0 {
		return map[uint32]int{}
	}
	chunkSize := len(ids) / numWorkers

	// 2. Partial counts per worker
	results := make(chan map[uint32]int, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(ids)
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			partial := make(map[uint32]int)
			for _, id := range ids[s:e] {
				partial[id]++
			}
			results <- partial
		}(start, end)
	}
	go func() { wg.Wait(); close(results) }()

	// 3. Merge
	counts := make(map[uint32]int)
	for p := range results {
		for id, n := range p {
			counts[id] += n
		}
	}
	return counts
}

// FormatBoundaryUsage renders rows as " id : count : name " lines.
func FormatBoundaryUsage(rows []BoundaryUsage) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf(" %4d : %6d : %s ", r.Boundary, r.Count, r.Name)
	}
	return strings.Join(lines, "\n")
}
