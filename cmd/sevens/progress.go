package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/lox/sevens/internal/statistics"
)

// ProgressMonitor shows batch progress as a fixed-width row of dots.
type ProgressMonitor struct {
	mu          sync.Mutex
	out         io.Writer
	totalGames  int
	dotsPrinted int
	startTime   time.Time
}

// NewProgressMonitor creates a progress monitor writing to out.
func NewProgressMonitor(out io.Writer) *ProgressMonitor {
	return &ProgressMonitor{out: out}
}

// OnBatchStart prints the batch header and resets the dot count.
func (m *ProgressMonitor) OnBatchStart(games, players int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalGames = games
	m.dotsPrinted = 0
	m.startTime = time.Now()

	fmt.Fprintf(m.out, "Simulating %d games (%d players): ", games, players)
}

// OnGameComplete prints any dots the batch has earned since the last
// completion. 40 dots fit an 80-char terminal next to the header.
func (m *ProgressMonitor) OnGameComplete(completed int, result statistics.GameResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.totalGames
	if total == 0 {
		total = 1
	}

	pct := completed * 100 / total
	if pct > 100 {
		pct = 100
	}
	targetDots := pct * 40 / 100

	for i := m.dotsPrinted; i < targetDots; i++ {
		fmt.Fprint(m.out, ".")
		m.dotsPrinted++
	}
}

// OnBatchComplete fills the remaining dots and prints the closing rate line.
func (m *ProgressMonitor) OnBatchComplete(stats *statistics.Statistics) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := m.dotsPrinted; i < 40; i++ {
		fmt.Fprint(m.out, ".")
		m.dotsPrinted++
	}

	duration := time.Since(m.startTime)
	gamesPerSec := float64(stats.Games) / duration.Seconds()
	fmt.Fprintf(m.out, " ✓ %d games in %.1fs (%.0f/sec)\n", stats.Games, duration.Seconds(), gamesPerSec)
}
