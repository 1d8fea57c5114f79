package history

import (
	"fmt"
	"slices"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FileName is the history database name inside a workspace directory.
const FileName = "history.db"

// Manager records asked questions and their answers.
type Manager struct {
	db *gorm.DB
}

// Entry is one question/answer pair.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Question string
	Topic    string `gorm:"index"`
	Answer   string
}

// Open opens (creating if needed) the sqlite database at dbFilePath.
func Open(dbFilePath string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Manager{db: db}, nil
}

// Close releases the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores a question with the plain-text answer it received.
func (m *Manager) Record(question, topic, answer string) (*Entry, error) {
	entry := Entry{
		Question: question,
		Topic:    topic,
		Answer:   answer,
	}
	if result := m.db.Create(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// Recent returns up to limit entries, oldest first.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Order("created_at desc").Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	slices.Reverse(entries)
	return entries, nil
}

// CountByTopic returns how many entries were answered by each topic.
func (m *Manager) CountByTopic() (map[string]int64, error) {
	type row struct {
		Topic string
		N     int64
	}
	var rows []row
	result := m.db.Model(&Entry{}).Select("topic, count(*) as n").Group("topic").Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Topic] = r.N
	}
	return out, nil
}

// Clear deletes every entry.
func (m *Manager) Clear() error {
	return m.db.Where("1 = 1").Delete(&Entry{}).Error
}
