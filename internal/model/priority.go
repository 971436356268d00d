package model

import "sort"

// Weight ранжирует приоритеты для сортировки: high идет первым,
// все нераспознанное приравнивается к none
func Weight(p Priority) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// LessTasks - канонический порядок списков: вес приоритета по возрастанию,
// среди равных - сначала новые
func LessTasks(a, b Task) bool {
	wa, wb := Weight(a.Priority), Weight(b.Priority)
	if wa != wb {
		return wa < wb
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// SortTasks стабильно сортирует задачи по LessTasks
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return LessTasks(tasks[i], tasks[j])
	})
}
