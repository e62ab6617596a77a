package risk

// projectStep classifies a project whose earliest open deadline is at most
// MaxDays away: the first cutoff the completion percentage falls below wins.
type projectStep struct {
	MaxDays int
	Cutoffs []projectCutoff
	Else    Level
}

type projectCutoff struct {
	Below int
	Level Level
}

var projectLadder = []projectStep{
	{MaxDays: 1, Cutoffs: []projectCutoff{{80, LevelCritical}, {90, LevelHigh}}, Else: LevelMedium},
	{MaxDays: 3, Cutoffs: []projectCutoff{{60, LevelHigh}, {80, LevelMedium}}, Else: LevelLow},
	{MaxDays: 7, Cutoffs: []projectCutoff{{40, LevelMedium}}, Else: LevelLow},
	{MaxDays: 14, Cutoffs: []projectCutoff{{20, LevelMedium}}, Else: LevelLow},
}

// ProjectLevel rates a whole project from its completion percentage and the
// days until its earliest open deadline. Overdue is always critical.
func ProjectLevel(completionPct, daysRemaining int) Level {
	if daysRemaining < 0 {
		return LevelCritical
	}
	for _, step := range projectLadder {
		if daysRemaining > step.MaxDays {
			continue
		}
		for _, c := range step.Cutoffs {
			if completionPct < c.Below {
				return c.Level
			}
		}
		return step.Else
	}
	return LevelLow
}
