// Package audit пишет журнал изменений графиков и профилей в плоские файлы.
// Запись ведется по принципу best effort: сбой журнала логируется,
// но никогда не отменяет бизнес-транзакцию.
package audit

import (
	"fmt"
	"os"
	"sync"
	"time"

	"hr-schedule-api/internal/models"

	"github.com/sirupsen/logrus"
)

type ChangeLog struct {
	scheduleFile string
	profileFile  string
	mu           sync.Mutex
	logger       *logrus.Logger
}

func NewChangeLog(scheduleFile, profileFile string, logger *logrus.Logger) *ChangeLog {
	return &ChangeLog{
		scheduleFile: scheduleFile,
		profileFile:  profileFile,
		logger:       logger,
	}
}

// ScheduleChange фиксирует изменение в календаре сотрудника
func (c *ChangeLog) ScheduleChange(requestID string, author, target *models.User, dateOrRange, action, details string) {
	line := fmt.Sprintf(
		"[%s] [%s] Author: %s (ID: %d) | Employee: %s (ID: %d) | Date: %s | Action: %s | Details: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		requestID,
		author.Email, author.ID,
		target.Email, target.ID,
		dateOrRange, action, details,
	)
	c.append(c.scheduleFile, line)
}

// ProfileChange фиксирует изменение профиля или подразделения сотрудника
func (c *ChangeLog) ProfileChange(requestID string, author, target *models.User, action, details string) {
	line := fmt.Sprintf(
		"[%s] [%s] Author: %s (ID: %d) | Employee: %s (ID: %d) | Action: %s | Details: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		requestID,
		author.Email, author.ID,
		target.Email, target.ID,
		action, details,
	)
	c.append(c.profileFile, line)
}

func (c *ChangeLog) append(path, line string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		c.logger.WithError(err).WithField("file", path).Warn("Failed to open change log")
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		c.logger.WithError(err).WithField("file", path).Warn("Failed to write change log")
	}
}
