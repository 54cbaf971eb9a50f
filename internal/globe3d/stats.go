package globe3d

import (
	"sort"
	"sync"
)

// Category classifies what a primary ray saw.
type Category uint8

const (
	Space     Category = iota // ray missed everything
	DaySide                   // hit the earth with N·L > 0
	NightSide                 // hit the earth with N·L <= 0
	CloudRim                  // hit only the cloud shell
	numCategories
)

func (c Category) String() string {
	switch c {
	case Space:
		return "space"
	case DaySide:
		return "day"
	case NightSide:
		return "night"
	case CloudRim:
		return "cloud-rim"
	}
	return "unknown"
}

// PixelCounts holds pixel counts per category.
type PixelCounts [numCategories]int

func (p *PixelCounts) add(o PixelCounts) {
	for i := range p {
		p[i] += o[i]
	}
}

// Total is the number of pixels counted.
func (p PixelCounts) Total() int {
	n := 0
	for _, v := range p {
		n += v
	}
	return n
}

// RenderStats accumulates per-frame pixel counts over a run.
type RenderStats struct {
	mu     sync.Mutex
	frames int
	stars  int
	counts PixelCounts
}

func (s *RenderStats) record(c PixelCounts, stars int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.stars += stars
	s.counts.add(c)
}

// Snapshot returns the frames rendered, stars drawn and pixel counts so far.
func (s *RenderStats) Snapshot() (frames, stars int, counts PixelCounts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames, s.stars, s.counts
}

// Log writes a summary line per category through the debug logger.
func (s *RenderStats) Log() {
	frames, stars, counts := s.Snapshot()
	total := counts.Total()
	DebugLog("Frames: %d, stars drawn: %d, pixels: %d", frames, stars, total)
	if total == 0 {
		return
	}
	order := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		order = append(order, c)
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	for _, c := range order {
		DebugLog("Pixel type %s: %d (%.2f%%)", c, counts[c], 100*float64(counts[c])/float64(total))
	}
}
