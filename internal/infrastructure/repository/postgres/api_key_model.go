package postgres

import "time"

type apiKeyTableModel struct {
	ID         string     `db:"id"`
	KeyHash    string     `db:"key_hash"`
	Label      string     `db:"label"`
	CreatedAt  time.Time  `db:"created_at"`
	LastUsedAt *time.Time `db:"last_used_at"`
}
