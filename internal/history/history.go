package history

import (
	"time"

	"gorm.io/gorm"
)

// Entry is one generated piece of content, kept so past messages can be
// copied again later. This is the only state that survives a restart.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `json:"kind"` // "whatsapp" or "instagram"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Add(kind, content string) error {
	return r.db.Create(&Entry{Kind: kind, Content: content}).Error
}

// List returns entries newest first, at most limit (50 when zero).
func (r *Repo) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Entry
	err := r.db.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *Repo) Clear() error {
	return r.db.Where("1 = 1").Delete(&Entry{}).Error
}
