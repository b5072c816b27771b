package game

const (
	// XPPerCorrect is awarded for every correct answer.
	XPPerCorrect = 10
	// XPPerLevel is the linear XP step between two levels.
	XPPerLevel = 100
)

// Progress is a player's experience state.
type Progress struct {
	XP       int
	Level    int
	Accuracy float64

	// Attempt counters. Records written before the counters existed carry
	// zeros here; their counts are reconstructed from XP and Accuracy.
	TotalAttempts   int
	CorrectAttempts int
}

// NewProgress returns the state of a freshly created account.
func NewProgress() Progress {
	return Progress{Level: 1}
}

// XPForLevel is the XP at which level reaches the given value.
func XPForLevel(level int) int {
	return XPPerLevel * (level - 1)
}

// XPForNextLevel is the XP at which the player leaves the given level.
func XPForNextLevel(level int) int {
	return XPPerLevel * level
}

// ApplyOutcome returns p updated with one answer. XP and Level never
// decrease; Accuracy is recomputed from the attempt counts.
func ApplyOutcome(p Progress, correct bool) Progress {
	total, right := p.attempts()

	if correct {
		p.XP += XPPerCorrect
		right++
	}
	total++

	p.TotalAttempts = total
	p.CorrectAttempts = right
	p.Accuracy = accuracy(right, total)

	for p.XP >= XPForNextLevel(p.Level) {
		p.Level++
	}
	return p
}

// attempts returns the stored counters, or for legacy records the counts
// derived as xp/10 attempts with floor(accuracy*attempts) correct. The
// derivation only sees correct answers through XP, so it undercounts
// wrong ones.
func (p Progress) attempts() (total, correct int) {
	if p.TotalAttempts > 0 || p.CorrectAttempts > 0 {
		return p.TotalAttempts, p.CorrectAttempts
	}
	total = p.XP / XPPerCorrect
	correct = int(p.Accuracy * float64(total))
	return total, correct
}

func accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// LevelsGained reports how many levels separate before and after.
func LevelsGained(before, after Progress) int {
	return after.Level - before.Level
}
