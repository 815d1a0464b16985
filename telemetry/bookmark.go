package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFeedingFrenzy   BookmarkType = "feeding_frenzy"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkLeadChange      BookmarkType = "lead_change"
	BookmarkLastSurvivor    BookmarkType = "last_survivor"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a match.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentFishPeak int // peak fish count in recent history
	leader         int // slot with the higher score, -1 when tied
	survivorMarked bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		leader:      -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Feeding frenzy: meals > 2x rolling average
		if b := bd.checkFeedingFrenzy(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Population crash: dropped >30% from recent peak
		if b := bd.checkPopulationCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if b := bd.checkLeadChange(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkLastSurvivor(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Update history
	bd.addToHistory(stats)

	if stats.FishCount > bd.recentFishPeak {
		bd.recentFishPeak = stats.FishCount
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFeedingFrenzy(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Eaten + h.Absorbed
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	meals := stats.Eaten + stats.Absorbed
	if float64(meals) > avg*2.0 && meals >= 5 {
		return &Bookmark{
			Type:        BookmarkFeedingFrenzy,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d meals is %.1fx average (%.1f)", meals, float64(meals)/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentFishPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.FishCount)/float64(bd.recentFishPeak)
	if dropPercent > 0.30 && stats.FishCount < bd.recentFishPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentFishPeak
		bd.recentFishPeak = stats.FishCount

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Fish crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.FishCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkLeadChange(stats WindowStats) *Bookmark {
	leader := -1
	switch {
	case stats.P1Score > stats.P2Score:
		leader = 0
	case stats.P2Score > stats.P1Score:
		leader = 1
	}

	// Ties keep the previous leader on record
	if leader < 0 || leader == bd.leader {
		return nil
	}
	previous := bd.leader
	bd.leader = leader
	if previous < 0 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkLeadChange,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Player %d takes the lead %d-%d", leader+1, max(stats.P1Score, stats.P2Score), min(stats.P1Score, stats.P2Score)),
	}
}

func (bd *BookmarkDetector) checkLastSurvivor(stats WindowStats) *Bookmark {
	if bd.survivorMarked || stats.P1Dead == stats.P2Dead {
		return nil
	}
	bd.survivorMarked = true

	survivor := 1
	if stats.P1Dead {
		survivor = 2
	}
	return &Bookmark{
		Type:        BookmarkLastSurvivor,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Player %d is the last one swimming", survivor),
	}
}
