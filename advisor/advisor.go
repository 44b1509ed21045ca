// Package advisor is the contract with the AI content generator:
// free-text advice from a transaction summary, lesson content with a
// multiple-choice quiz per topic, and a short news digest. The content
// itself is opaque to the core; the only semantic the progression engine
// depends on is the quiz score, since LEARNING quests complete only at
// a perfect score.
package advisor

import (
	"context"

	"github.com/rustyeddy/moneyverse/ledger"
)

// QuizOptionCount is the fixed number of choices per question.
const QuizOptionCount = 4

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswerIndex"`
}

// Lesson is generated content for one quest topic plus its quiz.
type Lesson struct {
	Topic   string         `json:"topic"`
	Content string         `json:"content"`
	Quiz    []QuizQuestion `json:"quiz"`
}

// Score counts correct answers. Unanswered or out-of-range entries
// count as wrong.
func (l Lesson) Score(answers []int) int {
	score := 0
	for i, q := range l.Quiz {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			score++
		}
	}
	return score
}

// Passed reports a perfect score, the bar for completing a LEARNING
// quest.
func (l Lesson) Passed(answers []int) bool {
	return len(l.Quiz) > 0 && l.Score(answers) == len(l.Quiz)
}

type NewsItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Tag     string `json:"tag"`
}

// Generator produces the three content kinds. Implementations wrap an
// external text-generation API; failures degrade to the Static
// fallback rather than blocking the caller.
type Generator interface {
	Advice(ctx context.Context, txs []ledger.Transaction) (string, error)
	Lesson(ctx context.Context, topic string) (Lesson, error)
	News(ctx context.Context) ([]NewsItem, error)
}
