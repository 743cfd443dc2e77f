package game

const (
	budgetReward = 50

	// TotalBudget is the amount every allocation must sum to exactly.
	TotalBudget = 50000
)

// BudgetCategory is one line of the production budget with its sensible
// spending range.
type BudgetCategory struct {
	Name      string
	Min       int
	Max       int
	Allocated int
}

// Budget is the producer game: split the total across categories so that
// every line stays within its range and the sum lands exactly on target.
type Budget struct {
	Project    string
	Categories []BudgetCategory
}

func newBudget() *Budget {
	return &Budget{
		Project: "You're producing an indie short film. Allocate your budget wisely to make the best film possible.",
		Categories: []BudgetCategory{
			{Name: "Camera & Equipment", Min: 8000, Max: 12000},
			{Name: "Cast & Crew", Min: 15000, Max: 20000},
			{Name: "Location & Permits", Min: 5000, Max: 8000},
			{Name: "Post-Production", Min: 10000, Max: 15000},
			{Name: "Contingency", Min: 2000, Max: 5000},
		},
	}
}

// InRange reports whether the category's allocation sits inside its
// sensible spending range.
func (c BudgetCategory) InRange() bool {
	return c.Allocated >= c.Min && c.Allocated <= c.Max
}

// Allocated returns the sum currently committed across all categories.
func (b *Budget) Allocated() int {
	total := 0
	for _, c := range b.Categories {
		total += c.Allocated
	}
	return total
}

// Remaining returns the unallocated portion of the total; negative when
// over budget.
func (b *Budget) Remaining() int {
	return TotalBudget - b.Allocated()
}

// balanced requires every category in range and the full total spent.
func (b *Budget) balanced() bool {
	for _, c := range b.Categories {
		if !c.InRange() {
			return false
		}
	}
	return b.Allocated() == TotalBudget
}

func (b *Budget) reset() {
	for i := range b.Categories {
		b.Categories[i].Allocated = 0
	}
}

// Allocate commits an amount to one category (negative amounts are
// clamped to zero) and checks the win condition. Returns true when the
// round was won.
func (s *Session) Allocate(name string, amount int) bool {
	b := s.Budget
	if b == nil {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	for i := range b.Categories {
		if b.Categories[i].Name == name {
			b.Categories[i].Allocated = amount
		}
	}
	if !b.balanced() {
		return false
	}
	s.Score += budgetReward
	s.Level++
	b.reset()
	return true
}
