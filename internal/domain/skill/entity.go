package skill

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindHard = "hard"
	KindSoft = "soft"
)

func ValidKind(kind string) bool {
	return kind == KindHard || kind == KindSoft
}

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

type UserSkill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	Kind      string
	CreatedAt time.Time
}
