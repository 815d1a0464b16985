package ui

import "github.com/pthm-cable/bigfish/telemetry"

// windowStats unwraps panel data. Anything other than WindowStats reads as zero.
func windowStats(data any) telemetry.WindowStats {
	switch s := data.(type) {
	case telemetry.WindowStats:
		return s
	case *telemetry.WindowStats:
		if s != nil {
			return *s
		}
	}
	return telemetry.WindowStats{}
}

// modeShare returns the fraction of fish in a mode.
func modeShare(count, total int) float32 {
	if total <= 0 {
		return 0
	}
	return float32(count) / float32(total)
}

// MatchStatsSections describes the last completed stats window.
func MatchStatsSections() []SectionDescriptor {
	count := func(get func(telemetry.WindowStats) int) func(any) float32 {
		return func(d any) float32 { return float32(get(windowStats(d))) }
	}
	value := func(get func(telemetry.WindowStats) float64) func(any) float32 {
		return func(d any) float32 { return float32(get(windowStats(d))) }
	}

	return []SectionDescriptor{
		{
			ID:    "window",
			Title: "Last Window",
			Fields: []FieldDescriptor{
				{ID: "fish", Label: "Fish", Widget: WidgetText, Format: "%.0f",
					Getter: count(func(s telemetry.WindowStats) int { return s.FishCount })},
				{ID: "spawned", Label: "Spawned", Widget: WidgetText, Format: "%.0f",
					Getter: count(func(s telemetry.WindowStats) int { return s.Spawned })},
				{ID: "eaten", Label: "Eaten", Widget: WidgetText, Format: "%.0f",
					Getter: count(func(s telemetry.WindowStats) int { return s.Eaten })},
				{ID: "absorbed", Label: "Absorbed", Widget: WidgetText, Format: "%.0f",
					Getter: count(func(s telemetry.WindowStats) int { return s.Absorbed })},
				{ID: "despawned", Label: "Despawned", Widget: WidgetText, Format: "%.0f",
					Getter: count(func(s telemetry.WindowStats) int { return s.Despawned })},
				{ID: "lifetime", Label: "Lifetime", Widget: WidgetText, Format: "%.1fs",
					Getter: value(func(s telemetry.WindowStats) float64 { return s.MeanLifetimeSec })},
			},
		},
		{
			ID:    "sizes",
			Title: "Fish Sizes",
			Visible: func(d any) bool {
				return windowStats(d).FishCount > 0
			},
			Fields: []FieldDescriptor{
				{ID: "size_mean", Label: "Mean", Widget: WidgetText, Format: "%.1f",
					Getter: value(func(s telemetry.WindowStats) float64 { return s.FishSizeMean })},
				{ID: "size_p10", Label: "P10", Widget: WidgetText, Format: "%.1f",
					Getter: value(func(s telemetry.WindowStats) float64 { return s.FishSizeP10 })},
				{ID: "size_p90", Label: "P90", Widget: WidgetText, Format: "%.1f",
					Getter: value(func(s telemetry.WindowStats) float64 { return s.FishSizeP90 })},
			},
		},
		{
			ID:    "modes",
			Title: "Behavior",
			Fields: []FieldDescriptor{
				{ID: "patrolling", Label: "Patrol", Widget: WidgetBar, Format: "%.2f", Range: DefaultRange(),
					Getter: func(d any) float32 { s := windowStats(d); return modeShare(s.Patrolling, s.FishCount) }},
				{ID: "pursuing", Label: "Pursue", Widget: WidgetBar, Format: "%.2f", Range: DefaultRange(),
					Getter: func(d any) float32 { s := windowStats(d); return modeShare(s.Pursuing, s.FishCount) }},
				{ID: "fleeing", Label: "Flee", Widget: WidgetBar, Format: "%.2f", Range: DefaultRange(),
					Getter: func(d any) float32 { s := windowStats(d); return modeShare(s.Fleeing, s.FishCount) }},
			},
		},
	}
}
