package models

import (
	"strings"
	"time"
)

// Bulb represents the bulbs table.
// A bulb is keyed by (UserEmail, BulbID); BulbID is supplied by the caller.
// LastSeen is read but never written by the service.
type Bulb struct {
	ID          uint      `gorm:"primaryKey"`
	UserEmail   string    `gorm:"column:user_email;not null"`
	BulbID      string    `gorm:"column:bulb_id;not null"`
	BulbName    string    `gorm:"column:bulb_name;not null"`
	RoomName    *string   `gorm:"column:room_name"`
	IsSimulated *bool     `gorm:"column:is_simulated"`
	AddedAt     time.Time `gorm:"column:added_at;->"`
	LastSeen    time.Time `gorm:"column:last_seen;->"`
}

// TableName specifies the table name for Bulb model
func (Bulb) TableName() string {
	return "bulbs"
}

// Simulated reports the stored flag, treating NULL as a real device.
func (b Bulb) Simulated() bool {
	return b.IsSimulated != nil && *b.IsSimulated
}

// BulbResponse is the shape returned by the list endpoint.
type BulbResponse struct {
	BulbID      string    `json:"bulb_id"`
	BulbName    string    `json:"bulb_name"`
	RoomName    *string   `json:"room_name"`
	AddedAt     time.Time `json:"added_at"`
	LastSeen    time.Time `json:"last_seen"`
	IsSimulated bool      `json:"is_simulated"`
}

// ToResponse converts a stored bulb into its list representation.
func (b Bulb) ToResponse() BulbResponse {
	return BulbResponse{
		BulbID:      b.BulbID,
		BulbName:    b.BulbName,
		RoomName:    b.RoomName,
		AddedAt:     b.AddedAt,
		LastSeen:    b.LastSeen,
		IsSimulated: b.Simulated(),
	}
}

// BulbPatch carries the optional fields of an update.
// A nil field is left unchanged.
type BulbPatch struct {
	BulbName *string
	RoomName *string
}

// NewBulbPatch trims the supplied values and keeps only those that are
// non-empty afterwards, so a blank field never clears a column.
func NewBulbPatch(bulbName, roomName *string) BulbPatch {
	return BulbPatch{
		BulbName: trimmedOrNil(bulbName),
		RoomName: trimmedOrNil(roomName),
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Empty reports whether the patch would change nothing.
func (p BulbPatch) Empty() bool {
	return p.BulbName == nil && p.RoomName == nil
}

// Columns returns only the columns that were supplied, keyed by column name.
func (p BulbPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 2)
	if p.BulbName != nil {
		cols["bulb_name"] = *p.BulbName
	}
	if p.RoomName != nil {
		cols["room_name"] = *p.RoomName
	}
	return cols
}
