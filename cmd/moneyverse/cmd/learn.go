package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Lessons, advice and news from the content generator",
}

var learnLessonCmd = &cobra.Command{
	Use:   "lesson <quest-id>",
	Short: "Take the lesson for a LEARNING quest and sit its quiz",
	Long: `Fetches lesson content for the quest's topic, shows the quiz, and
reads answers from stdin (one option number per line). A perfect score
completes the quest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		var topic string
		for _, q := range a.Quests() {
			if q.ID == args[0] {
				topic = q.Title
			}
		}
		if topic == "" {
			return fmt.Errorf("quest %s is not unlocked", args[0])
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		lesson, err := a.Generator().Lesson(ctx, topic)
		if err != nil {
			return err
		}

		fmt.Println(lesson.Content)
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		answers := make([]int, 0, len(lesson.Quiz))
		for i, q := range lesson.Quiz {
			fmt.Printf("%d. %s\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Printf("   %d) %s\n", j+1, opt)
			}
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				n = 0
			}
			answers = append(answers, n-1)
		}

		passed, rw, err := a.SubmitQuiz(args[0], lesson, answers)
		if err != nil {
			return err
		}
		if !passed {
			fmt.Printf("Score: %d/%d. You need 100%% to pass - try again.\n",
				lesson.Score(answers), len(lesson.Quiz))
			return nil
		}
		fmt.Println("Perfect score!")
		announce(rw)
		return nil
	},
}

var learnAdviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Get advice based on your transaction history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		advice, err := a.Generator().Advice(ctx, a.Transactions())
		if err != nil {
			return err
		}
		fmt.Println(advice)
		return nil
	},
}

var learnNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show a short finance news digest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, cleanup, err := openApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		items, err := a.Generator().News(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("[%s] %s - %s\n", it.Tag, it.Title, it.Summary)
		}
		return nil
	},
}

func init() {
	learnCmd.AddCommand(learnLessonCmd, learnAdviceCmd, learnNewsCmd)
	rootCmd.AddCommand(learnCmd)
}
