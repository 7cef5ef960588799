package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/talentscout/screening/internal/model"
)

const maxPointsPerAnswer = 3

// Score buckets each answer by trimmed character length and converts the
// point total to a 0-100 percentage. Length is a coarse proxy for effort,
// not content quality.
func Score(answers []model.TechnicalAnswer) int {
	if len(answers) == 0 {
		return 0
	}

	points := 0
	for _, a := range answers {
		switch n := utf8.RuneCountInString(strings.TrimSpace(a.Answer)); {
		case n > 100:
			points += 3
		case n > 50:
			points += 2
		case n > 20:
			points += 1
		}
	}

	percent := float64(points) / float64(maxPointsPerAnswer*len(answers)) * 100
	return int(math.Round(percent))
}
