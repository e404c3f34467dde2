package simulator

import "github.com/lox/sevens/internal/statistics"

// GameMonitor receives notifications about simulation progress.
type GameMonitor interface {
	// OnBatchStart is called before the first game runs.
	OnBatchStart(games, players int)

	// OnGameComplete is called after each game completes. completed
	// counts finished games, which in parallel runs is not the order
	// the games were seeded in.
	OnGameComplete(completed int, result statistics.GameResult)

	// OnBatchComplete is called once the whole batch has run.
	OnBatchComplete(stats *statistics.Statistics)
}

// NullGameMonitor is a no-op implementation.
type NullGameMonitor struct{}

func (NullGameMonitor) OnBatchStart(int, int)                     {}
func (NullGameMonitor) OnGameComplete(int, statistics.GameResult) {}
func (NullGameMonitor) OnBatchComplete(*statistics.Statistics)    {}

// MultiGameMonitor fans out notifications to multiple monitors.
type MultiGameMonitor struct {
	monitors []GameMonitor
}

// NewMultiGameMonitor builds a composite monitor, automatically pruning nil
// entries and returning a NullGameMonitor when no monitors are provided.
func NewMultiGameMonitor(monitors ...GameMonitor) GameMonitor {
	filtered := make([]GameMonitor, 0, len(monitors))
	for _, monitor := range monitors {
		if monitor != nil {
			filtered = append(filtered, monitor)
		}
	}

	switch len(filtered) {
	case 0:
		return NullGameMonitor{}
	case 1:
		return filtered[0]
	default:
		return MultiGameMonitor{monitors: filtered}
	}
}

func (m MultiGameMonitor) OnBatchStart(games, players int) {
	for _, monitor := range m.monitors {
		monitor.OnBatchStart(games, players)
	}
}

func (m MultiGameMonitor) OnGameComplete(completed int, result statistics.GameResult) {
	for _, monitor := range m.monitors {
		monitor.OnGameComplete(completed, result)
	}
}

func (m MultiGameMonitor) OnBatchComplete(stats *statistics.Statistics) {
	for _, monitor := range m.monitors {
		monitor.OnBatchComplete(stats)
	}
}
