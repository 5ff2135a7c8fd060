package quiz

// Grade is the band a final percentage falls into.
type Grade int

const (
	GradeKeepPracticing Grade = iota // below 50%
	GradeGood                        // 50% to 69%
	GradeExcellent                   // 70% and above
)

func (g Grade) String() string {
	switch g {
	case GradeExcellent:
		return "excellent"
	case GradeGood:
		return "good"
	}
	return "keep-practicing"
}

// Message is the encouragement shown with the final score.
func (g Grade) Message() string {
	switch g {
	case GradeExcellent:
		return "Excellent travail! Vous maîtrisez bien ce sujet."
	case GradeGood:
		return "Bon effort! Continuez à réviser pour vous améliorer."
	}
	return "Ne vous découragez pas! Révisez le résumé et réessayez."
}

// GradeFor maps a percentage to its band.
func GradeFor(percentage int) Grade {
	switch {
	case percentage >= 70:
		return GradeExcellent
	case percentage >= 50:
		return GradeGood
	}
	return GradeKeepPracticing
}

// Percentage returns 100*score/total rounded half up, in integer
// arithmetic so exact halves are stable: 1/8 is 13, 2/3 is 67.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}

// QuestionResult is one line of the final report.
type QuestionResult struct {
	Number   int
	Question string
	Chosen   *int
	Correct  int
	IsRight  bool
}

// Report is the terminal summary of a quiz session.
type Report struct {
	Score      int
	Total      int
	Percentage int
	Grade      Grade
	Results    []QuestionResult
}

// BuildReport summarizes the session. Unanswered questions count as wrong.
func BuildReport(s State) Report {
	total := len(s.Questions)
	results := make([]QuestionResult, total)
	for i, q := range s.Questions {
		var chosen *int
		if i < len(s.Answers) {
			chosen = s.Answers[i]
		}
		results[i] = QuestionResult{
			Number:   i + 1,
			Question: q.Question,
			Chosen:   chosen,
			Correct:  q.CorrectIndex,
			IsRight:  chosen != nil && *chosen == q.CorrectIndex,
		}
	}

	pct := Percentage(s.Score, total)
	return Report{
		Score:      s.Score,
		Total:      total,
		Percentage: pct,
		Grade:      GradeFor(pct),
		Results:    results,
	}
}
