package models

import "time"

// Result is the measurement record for one image. It is built once and not
// modified afterwards.
type Result struct {
	Source      string
	Template    string
	MaskMode    string
	Rule        string
	DX          int
	DY          int
	NPerm       int
	WindowsUsed int64
	BinsNonZero int
	H           float64
	C           float64
	D           float64
	DStar       float64
	ProcessTime time.Duration
	Err         error
}

// Degenerate reports a successful run in which no window was accepted, so H
// and C carry no information.
func (r Result) Degenerate() bool {
	return r.Err == nil && r.WindowsUsed == 0
}

// BatchStats summarizes a batch of results.
type BatchStats struct {
	Total       int
	Succeeded   int
	Failed      int
	Degenerate  int
	AverageTime time.Duration
}

// Summarize counts outcomes across results.
func Summarize(results []Result) BatchStats {
	stats := BatchStats{Total: len(results)}

	var totalTime time.Duration
	for _, r := range results {
		if r.Err != nil {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		if r.Degenerate() {
			stats.Degenerate++
		}
		totalTime += r.ProcessTime
	}

	if stats.Succeeded > 0 {
		stats.AverageTime = totalTime / time.Duration(stats.Succeeded)
	}
	return stats
}
