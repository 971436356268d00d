package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service - внутрипроцессный планировщик фоновых задач. Регистрация
// идемпотентна по id задачи, поэтому повторная инициализация процесса
// не плодит дубликатов.
type Service struct {
	logger *zap.Logger
	now    func() time.Time
	tick   time.Duration

	mu      sync.Mutex
	jobs    map[string]*job
	started bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

type job struct {
	id     string
	name   string
	hour   int
	minute int
	fn     func()
	next   time.Time
}

func New(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
		now:    time.Now,
		tick:   30 * time.Second,
		jobs:   make(map[string]*job),
		stop:   make(chan struct{}),
	}
}

// Register ставит ежедневную задачу на hour:minute. Повторная регистрация
// того же id заменяет существующую задачу.
func (s *Service) Register(id, name string, hour, minute int, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		s.logger.Info("Replacing scheduled job", zap.String("job_id", id))
	}
	s.jobs[id] = &job{
		id:     id,
		name:   name,
		hour:   hour,
		minute: minute,
		fn:     fn,
		next:   nextAfter(s.now(), hour, minute),
	}

	s.logger.Info("Scheduled job registered",
		zap.String("job_id", id),
		zap.String("name", name),
		zap.Int("hour", hour),
		zap.Int("minute", minute),
	)
}

// Start запускает единственную горутину планировщика. Повторный Start - no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.logger.Warn("Scheduler already started, ignoring")
		return
	}
	s.started = true

	s.logger.Info("Starting scheduler", zap.Int("jobs", len(s.jobs)))
	s.wg.Add(1)
	go s.run()
}

func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler...")
	close(s.stop)
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

func (s *Service) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.fireDue()
		}
	}
}

func (s *Service) fireDue() {
	now := s.now()

	s.mu.Lock()
	var due []*job
	for _, j := range s.jobs {
		if !now.Before(j.next) {
			due = append(due, j)
			j.next = nextAfter(now, j.hour, j.minute)
		}
	}
	s.mu.Unlock()

	for _, j := range due {
		s.logger.Info("Firing scheduled job", zap.String("job_id", j.id), zap.String("name", j.name))
		j.fn()
	}
}

// nextAfter - ближайшее hh:mm строго после now
func nextAfter(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
