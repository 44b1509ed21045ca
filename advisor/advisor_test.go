package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson() Lesson {
	return Lesson{
		Topic: "Budgeting",
		Quiz: []QuizQuestion{
			{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
			{Question: "q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
			{Question: "q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3},
		},
	}
}

func TestLessonScore(t *testing.T) {
	t.Parallel()

	l := lesson()
	assert.Equal(t, 3, l.Score([]int{1, 0, 3}))
	assert.Equal(t, 2, l.Score([]int{1, 0, 2}))
	assert.Equal(t, 1, l.Score([]int{1}), "missing answers count as wrong")
	assert.Equal(t, 0, l.Score(nil))
}

func TestLessonPassedRequiresPerfectScore(t *testing.T) {
	t.Parallel()

	l := lesson()
	assert.True(t, l.Passed([]int{1, 0, 3}))
	assert.False(t, l.Passed([]int{1, 0, 2}))
	assert.False(t, Lesson{}.Passed(nil), "empty quiz never passes")
}

func TestStaticGenerator(t *testing.T) {
	t.Parallel()

	var g Generator = Static{}
	ctx := context.Background()

	advice, err := g.Advice(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, advice)

	l, err := g.Lesson(ctx, "Investing")
	require.NoError(t, err)
	assert.Equal(t, "Investing", l.Topic)
	require.NotEmpty(t, l.Quiz)
	for _, q := range l.Quiz {
		assert.Len(t, q.Options, QuizOptionCount)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, len(q.Options))
	}

	news, err := g.News(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, news)
}
