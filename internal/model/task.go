package model

import "time"

type TaskType string

const (
	TypeRecord      TaskType = "record"
	TypeRequirement TaskType = "requirement"
	TypeTask        TaskType = "task"
	TypeIssue       TaskType = "issue"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

const MaxTitleLen = 200

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        TaskType  `json:"todo_type"`
	Status      string    `json:"status"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"` // Легаси-флаг готовности, живет отдельно от Status
	OwnerID     int64     `json:"owner_id"`
	ParentID    *int64    `json:"parent_id,omitempty"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskRef - усеченная форма задачи для внешних потребителей ссылок
// (чат показывает их сгруппированными по типу)
type TaskRef struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Type        TaskType  `json:"todo_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t Task) Ref() TaskRef {
	return TaskRef{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt,
	}
}

type TaskFilter struct {
	Completed   *bool
	Search      string
	Type        *TaskType
	OwnerID     *int64
	ShowDeleted *bool
}

type QuickTemplate struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	TitleTemplate string    `json:"title"`
	DescTemplate  string    `json:"description"`
	Type          TaskType  `json:"todo_type"`
	Priority      Priority  `json:"priority"`
	OwnerID       int64     `json:"owner_id"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Identity - уже аутентифицированный вызывающий: кто он и есть ли у него
// расширенные (админские) права. Сама аутентификация происходит снаружи.
type Identity struct {
	UserID   int64
	Username string
	Nickname string
	Elevated bool
}

// Owner - аккаунт, который владеет задачами и получает ежедневные отчеты
type Owner struct {
	ID       int64
	Username string
	Nickname string
	IsActive bool
	IsAdmin  bool
}

// DisplayName предпочитает никнейм, иначе имя аккаунта
func (o Owner) DisplayName() string {
	if o.Nickname != "" {
		return o.Nickname
	}
	return o.Username
}
