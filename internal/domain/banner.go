package domain

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional block shown on the storefront. Countdown is the
// number of seconds the banner stays visible once shown; zero disables the timer.
type Banner struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Link        string    `json:"link"`
	Visible     bool      `json:"visible" gorm:"not null;default:false"`
	Countdown   int       `json:"countdown" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasTimer reports whether the banner should be running a countdown.
func (b *Banner) HasTimer() bool {
	return b.Visible && b.Countdown > 0
}
