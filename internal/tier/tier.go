// Package tier maps solved.ac tier ranks (0-30) to display names and
// rating thresholds.
package tier

// names indexes tier rank → display name.
var names = [31]string{
	"Unrated",
	"Bronze V", "Bronze IV", "Bronze III", "Bronze II", "Bronze I",
	"Silver V", "Silver IV", "Silver III", "Silver II", "Silver I",
	"Gold V", "Gold IV", "Gold III", "Gold II", "Gold I",
	"Platinum V", "Platinum IV", "Platinum III", "Platinum II", "Platinum I",
	"Diamond V", "Diamond IV", "Diamond III", "Diamond II", "Diamond I",
	"Ruby V", "Ruby IV", "Ruby III", "Ruby II", "Ruby I",
}

// thresholds holds the minimum rating for each tier rank.
var thresholds = [31]int{
	0, 30, 60, 90, 120, 150,
	200, 300, 400, 500, 650,
	800, 950, 1100, 1250, 1400,
	1600, 1750, 1900, 2000, 2100,
	2200, 2300, 2400, 2500, 2600,
	2700, 2800, 2850, 2900, 2950,
}

// Max is the highest tier rank.
const Max = 30

// Name returns the display name for a tier rank.
// Out-of-range ranks return "Unknown".
func Name(rank int) string {
	if rank < 0 || rank >= len(names) {
		return "Unknown"
	}
	return names[rank]
}

// Threshold returns the minimum rating for a tier rank.
// Ranks above Max are clamped to the top threshold.
func Threshold(rank int) int {
	if rank < 0 {
		return 0
	}
	if rank >= len(thresholds) {
		return thresholds[Max]
	}
	return thresholds[rank]
}

// Progress returns how far a rating has advanced from the current tier's
// threshold toward the next one, as a percentage clamped to [0, 100].
func Progress(rating, rank int) float64 {
	cur := Threshold(rank)
	next := Threshold(rank + 1)
	if next == cur {
		return 100
	}
	p := float64(rating-cur) / float64(next-cur) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
