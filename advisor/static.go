package advisor

import (
	"context"

	"github.com/rustyeddy/moneyverse/ledger"
)

// Static is the offline fallback generator: canned content so the
// learning flow keeps working when the provider is unreachable or no
// API key is configured.
type Static struct{}

func (Static) Advice(_ context.Context, txs []ledger.Transaction) (string, error) {
	if len(txs) == 0 {
		return "Start by logging a few transactions so your spending has a shape to look at.", nil
	}
	return "Review your biggest expense category this week and ask whether each entry was a need or a want.", nil
}

func (Static) Lesson(_ context.Context, topic string) (Lesson, error) {
	return Lesson{
		Topic: topic,
		Content: "Budgeting means deciding where your money goes before it goes there. " +
			"A simple split: 50% needs, 30% wants, 20% savings. Track what you spend, " +
			"compare it to the plan, and adjust the plan - not the tracking.",
		Quiz: []QuizQuestion{
			{
				Question:      "In the 50/30/20 rule, what does the 20 stand for?",
				Options:       []string{"Wants", "Needs", "Savings", "Taxes"},
				CorrectAnswer: 2,
			},
			{
				Question:      "What should you do first when a budget stops matching reality?",
				Options:       []string{"Stop tracking", "Adjust the plan", "Ignore small expenses", "Borrow money"},
				CorrectAnswer: 1,
			},
			{
				Question:      "Which habit builds savings fastest?",
				Options:       []string{"Paying yourself first", "Waiting for leftovers", "Spending then saving", "Skipping the budget"},
				CorrectAnswer: 0,
			},
		},
	}, nil
}

func (Static) News(_ context.Context) ([]NewsItem, error) {
	return []NewsItem{
		{ID: "offline-1", Title: "Markets move in cycles", Summary: "Prices rise and fall in waves; long-term savers ride them out.", Tag: "BASICS"},
		{ID: "offline-2", Title: "Compound interest never sleeps", Summary: "Money you save early earns on its earnings.", Tag: "SAVING"},
		{ID: "offline-3", Title: "Diversification spreads risk", Summary: "Owning different assets softens any single one falling.", Tag: "INVESTING"},
	}, nil
}
