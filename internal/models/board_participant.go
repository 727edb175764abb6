package models

import "time"

type BoardRole string

const (
	RoleOwner  BoardRole = "owner"
	RoleWriter BoardRole = "writer"
	RoleReader BoardRole = "reader"
)

// BoardParticipant links a user to a board with a role. The board creator is
// inserted as the single owner; roster updates never touch the owner row.
type BoardParticipant struct {
	BoardID   uint64    `gorm:"primarykey" json:"board_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Role      BoardRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
