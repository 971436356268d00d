package review

import (
	"fmt"
	"strings"
)

// Заголовки пяти разделов отчета. По ним же чинится форматирование
// ответа генератора.
var sectionHeaders = []string{
	"Efficiency",
	"Highlights",
	"Risks",
	"Suggestions",
	"Mood",
}

func reviewTitle(date string) string {
	return "Daily review – " + date
}

func buildPrompt(s Summary) string {
	var b strings.Builder

	b.WriteString("You are a professional personal productivity analyst. Based on the following\n")
	b.WriteString("task activity, write a concise daily review report (strictly within 300 characters).\n\n")

	b.WriteString("## Data summary\n")
	fmt.Fprintf(&b, "Date: %s\n", s.Date)
	fmt.Fprintf(&b, "New tasks: %d\n", s.Count)
	fmt.Fprintf(&b, "Type distribution: %v\n", s.ByType)
	fmt.Fprintf(&b, "Priority distribution: %v\n\n", s.ByPriority)

	b.WriteString("### New task details:\n")
	b.WriteString(s.itemLines())
	b.WriteString("\n\n")

	b.WriteString("## Report requirements\n")
	b.WriteString("Analyze along these 5 dimensions, 2-3 sentences each:\n")
	b.WriteString("1. **Efficiency**: how productive the task creation was\n")
	b.WriteString("2. **Highlights**: the main achievements and progress of the day\n")
	b.WriteString("3. **Risks**: problems or risks that deserve attention\n")
	b.WriteString("4. **Suggestions**: concrete improvements for tomorrow\n")
	b.WriteString("5. **Mood**: the working state inferred from the task pattern\n\n")
	b.WriteString("Use a warm, professional tone and provide practical insight. ")
	b.WriteString("Strictly stay within 300 characters.\n")

	return b.String()
}

// formatReview чинит ответы без переносов строк: каждому известному
// заголовку раздела должен предшествовать перенос
func formatReview(content string) string {
	if strings.Count(content, "\n") >= 4 {
		return content
	}
	for _, h := range sectionHeaders {
		content = strings.ReplaceAll(content, "**"+h, "\n**"+h)
	}
	return content
}

// fallbackReport строится только из счетчиков выжимки - без внешних вызовов
func fallbackReport(s Summary) string {
	pace := "steady"
	if s.Count > 5 {
		pace = "quite active"
	}

	risks := "The current workload looks manageable; keep the present pace."
	if s.Count > 10 {
		risks = "Quite a few tasks were added; mind the priorities when planning."
	}

	return fmt.Sprintf(`**Daily review – %s**

**Efficiency**
%d new tasks were recorded today. The task handling pace was %s.

**Highlights**
New tasks were captured and organized, keeping up a solid task management habit.

**Risks**
%s

**Suggestions**
Tomorrow, follow up on how these tasks progress and adjust the focus where needed.

**Mood**
The task pattern suggests an engaged, proactive working state. Keep it up.

Note: the AI analysis service was unavailable; this is a basic generated report.`,
		s.Date, s.Count, pace, risks)
}

// reminderReport - детерминированный отчет для владельца без активности за день
func reminderReport(date string) string {
	return fmt.Sprintf(`**Daily review – %s**

**Activity overview**
No task activity was recorded today; the system found no new or updated tasks.

**Friendly reminder**
To keep your work and life organized, consider:
- recording at least 1-2 important tasks or ideas every day
- reviewing and updating the status of existing tasks regularly
- using the task types (record, requirement, task, issue) to categorize your work

**Suggested actions**
Tomorrow you could:
- write down a summary of today's work or what you learned
- plan tomorrow's key tasks and goals
- tidy up pending items and ideas

**Keep the habit**
Using the planner daily keeps life ordered and work efficient!

Automatically generated reminder.`, date)
}
