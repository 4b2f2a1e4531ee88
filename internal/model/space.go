package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskSpace is a shared group of members with a common penalty bank.
// PenaltyBank is denominated in Currency and never goes negative.
type TaskSpace struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	PenaltyBank decimal.Decimal `gorm:"type:decimal(15,2)"`
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Members []SpaceMember `gorm:"foreignKey:SpaceID"`
}

// SpaceMember relates a user to a space. The auto-increment primary key
// preserves join order, so membership listings are append-ordered.
type SpaceMember struct {
	ID        uint   `gorm:"primaryKey"`
	SpaceID   string `gorm:"index:idx_space_user,unique"`
	UserID    string `gorm:"index:idx_space_user,unique"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

// MemberIDs returns the member user ids in join order.
func (s *TaskSpace) MemberIDs() []string {
	ids := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}
