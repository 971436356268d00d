package model

// statusSets - упорядоченный набор статусов для каждого типа задачи.
// Первый элемент набора - статус по умолчанию. Проверяется только
// принадлежность к набору, графа переходов нет.
var statusSets = map[TaskType][]string{
	TypeRecord:      {"pending", "archived"},
	TypeRequirement: {"pending_evaluation", "decomposed", "rejected"},
	TypeTask:        {"todo", "on_hold", "cancelled", "completed"},
	TypeIssue:       {"reported", "reproduced", "fixing", "resolved", "closed"},
}

func ValidType(t TaskType) bool {
	_, ok := statusSets[t]
	return ok
}

// AvailableStatuses возвращает упорядоченный набор статусов типа.
// Для неизвестного типа набор пуст.
func AvailableStatuses(t TaskType) []string {
	set, ok := statusSets[t]
	if !ok {
		return nil
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}

func DefaultStatus(t TaskType) string {
	set := statusSets[t]
	if len(set) == 0 {
		return ""
	}
	return set[0]
}

func ValidStatus(t TaskType, status string) bool {
	for _, s := range statusSets[t] {
		if s == status {
			return true
		}
	}
	return false
}
