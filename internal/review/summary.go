package review

import (
	"fmt"
	"strings"

	"github.com/mlipin/todoplanner/internal/model"
)

const (
	maxSummaryItems    = 10
	maxItemDescription = 100
)

// Summary - детерминированная выжимка дневной активности владельца,
// основа и для промпта, и для запасного отчета
type Summary struct {
	Date       string
	Count      int
	ByType     map[string]int
	ByPriority map[string]int
	Items      []SummaryItem
}

type SummaryItem struct {
	Title       string
	Type        string
	Priority    string
	Description string
}

func buildSummary(tasks []model.Task, date string) Summary {
	s := Summary{
		Date:       date,
		Count:      len(tasks),
		ByType:     make(map[string]int),
		ByPriority: make(map[string]int),
	}

	for _, t := range tasks {
		s.ByType[typeLabel(t.Type)]++
		s.ByPriority[priorityLabel(t.Priority)]++
	}

	for _, t := range tasks {
		if len(s.Items) == maxSummaryItems {
			break
		}
		s.Items = append(s.Items, SummaryItem{
			Title:       t.Title,
			Type:        typeLabel(t.Type),
			Priority:    priorityLabel(t.Priority),
			Description: truncate(t.Description, maxItemDescription),
		})
	}
	return s
}

func (s Summary) itemLines() string {
	if len(s.Items) == 0 {
		return "none"
	}

	lines := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s)", item.Title, item.Type, item.Priority))
	}
	return strings.Join(lines, "\n")
}

func typeLabel(t model.TaskType) string {
	switch t {
	case model.TypeRecord:
		return "Record"
	case model.TypeRequirement:
		return "Requirement"
	case model.TypeTask:
		return "Task"
	case model.TypeIssue:
		return "Issue"
	default:
		return string(t)
	}
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "High"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityLow:
		return "Low"
	default:
		return "None"
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
