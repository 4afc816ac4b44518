package core

// CategoryAmount is an amount summed over one category.
type CategoryAmount struct {
	Category Category
	Total    Money
}

// Summary is the dashboard view of a user's spending: the current
// calendar month, the current day, and the per-category breakdown.
// Categories without expenses are absent from ByCategory.
type Summary struct {
	MonthTotal Money
	TodayTotal Money
	ByCategory []CategoryAmount
}
