// Package catalog is the static quest and badge table. Templates form a
// forest: every template has at most one prerequisite, and roots (no
// prerequisite) make up the initial quest set for a new user.
package catalog

// QuestCategory groups quests by the part of the app they exercise.
type QuestCategory string

const (
	Learning  QuestCategory = "LEARNING"
	Finance   QuestCategory = "FINANCE"
	Investing QuestCategory = "INVESTING"
)

// ActionPath tells the front end where to send the user to work on a quest.
type ActionPath string

const (
	PathBudget ActionPath = "budget"
	PathInvest ActionPath = "invest"
	PathGoals  ActionPath = "goals"
)

// QuestTemplate is an immutable catalog entry. PrerequisiteID is empty
// for root quests.
type QuestTemplate struct {
	ID             string
	Title          string
	Description    string
	XPReward       int
	Category       QuestCategory
	PrerequisiteID string
	ActionPath     ActionPath
}

// Badge is a permanent achievement. Unlocked state lives on the user
// profile, never here.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

// Well-known quest ids the ledger and progression wiring completes
// automatically.
const (
	QuestBudgeting101    = "1"
	QuestFirstInvestment = "2"
	QuestExpenseLogger   = "3"
	QuestGoalSetter      = "6"
	QuestDiversification = "9"
	QuestIncomeTracker   = "11"
	QuestCategoryPro     = "12"
	QuestWealthBuilder   = "15"
)

// Well-known badge ids.
const (
	BadgeNewbie       = "1"
	BadgeSaver        = "2"
	BadgeInvestor     = "3"
	BadgeScholar      = "4"
	BadgeGoalGetter   = "5"
	BadgeStreakMaster = "6"
	BadgeBigSpender   = "7"
	BadgeDiamondHands = "8"
)

var templates = []QuestTemplate{
	// Root quests, available from the first session.
	{ID: "1", Title: "Budgeting 101", Description: "Learn why the 50/30/20 rule matters.", XPReward: 500, Category: Learning},
	{ID: "2", Title: "First Investment", Description: "Buy your first asset in the simulator.", XPReward: 300, Category: Investing, ActionPath: PathInvest},
	{ID: "3", Title: "Expense Logger", Description: "Log your first real expense.", XPReward: 100, Category: Finance, ActionPath: PathBudget},

	// Learning track.
	{ID: "4", Title: "Needs vs. Wants", Description: "Master the art of prioritizing spending.", XPReward: 200, Category: Learning, PrerequisiteID: "1"},
	{ID: "5", Title: "The Savings Mindset", Description: "Pay yourself first. Learn how.", XPReward: 250, Category: Learning, PrerequisiteID: "4"},
	{ID: "6", Title: "Goal Setter", Description: "Create a Savings Goal in the Goals tab.", XPReward: 400, Category: Finance, PrerequisiteID: "5", ActionPath: PathGoals},

	// Investing track.
	{ID: "7", Title: "Crypto Basics", Description: "Understand the blockchain revolution.", XPReward: 200, Category: Learning, PrerequisiteID: "2"},
	{ID: "8", Title: "Risk Management", Description: "High reward comes with high risk.", XPReward: 300, Category: Learning, PrerequisiteID: "7"},
	{ID: "9", Title: "Diversification", Description: "Own at least 2 different assets.", XPReward: 500, Category: Investing, PrerequisiteID: "8", ActionPath: PathInvest},
	{ID: "10", Title: "Market Cycles", Description: "Learn about Bulls and Bears.", XPReward: 250, Category: Learning, PrerequisiteID: "9"},

	// Finance track.
	{ID: "11", Title: "Income Tracker", Description: "Log a source of Income (Allowance/Job).", XPReward: 150, Category: Finance, PrerequisiteID: "3", ActionPath: PathBudget},
	{ID: "12", Title: "Category Pro", Description: "Add a custom category in Budget.", XPReward: 200, Category: Finance, PrerequisiteID: "11", ActionPath: PathBudget},
	{ID: "13", Title: "Inflation 101", Description: "Why does money lose value over time?", XPReward: 300, Category: Learning, PrerequisiteID: "12"},

	// Advanced.
	{ID: "14", Title: "Compound Interest", Description: "The 8th wonder of the world.", XPReward: 600, Category: Learning, PrerequisiteID: "13"},
	{ID: "15", Title: "Wealth Builder", Description: "Reach a Net Worth of 500 (Real or Sim).", XPReward: 1000, Category: Finance, PrerequisiteID: "14"},
}

var badges = []Badge{
	{ID: "1", Name: "Newbie", Description: "Joined the MoneyVerse", Icon: "👋"},
	{ID: "2", Name: "Saver", Description: "Saved your first $100", Icon: "🐷"},
	{ID: "3", Name: "Investor", Description: "Bought your first asset", Icon: "📈"},
	{ID: "4", Name: "Scholar", Description: "Completed 5 lessons", Icon: "🎓"},
	{ID: "5", Name: "Goal Getter", Description: "Completed a savings goal", Icon: "🏆"},
	{ID: "6", Name: "Streak Master", Description: "7 day login streak", Icon: "🔥"},
	{ID: "7", Name: "Big Spender", Description: "Logged 50 transactions", Icon: "💸"},
	{ID: "8", Name: "Diamond Hands", Description: "Held crypto for 1 month", Icon: "💎"},
}

// Templates returns all quest templates in catalog order.
func Templates() []QuestTemplate {
	out := make([]QuestTemplate, len(templates))
	copy(out, templates)
	return out
}

// Roots returns the templates with no prerequisite.
func Roots() []QuestTemplate {
	var out []QuestTemplate
	for _, t := range templates {
		if t.PrerequisiteID == "" {
			out = append(out, t)
		}
	}
	return out
}

// TemplateByID looks up a template. ok is false for unknown ids.
func TemplateByID(id string) (QuestTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return QuestTemplate{}, false
}

// Badges returns the full badge table.
func Badges() []Badge {
	out := make([]Badge, len(badges))
	copy(out, badges)
	return out
}

// BadgeByID looks up a badge. ok is false for unknown ids.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
