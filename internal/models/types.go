package models

import (
	"time"

	"gorm.io/datatypes"
)

// Game lifecycle status constants. StatusManual marks a result entered by an
// operator rather than an import; for the state machine it behaves exactly
// like StatusPublished.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusManual    = "manual"
)

// History mode constants record the provenance of a published result.
const (
	ModeAuto   = "auto"
	ModeManual = "manual"
)

// Game corresponds to the games table. TodayResult/YesterdayResult are a
// denormalized two-day cache of the tail of GameResultHistory.
type Game struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null;unique" json:"name"`
	Code            string    `gorm:"type:varchar(50);not null;unique" json:"code"`
	ScheduledTime   string    `gorm:"type:varchar(10);not null" json:"scheduled_time"`
	Enabled         bool      `gorm:"default:true;not null" json:"enabled"`
	TodayResult     *int      `json:"today_result"`
	YesterdayResult *int      `json:"yesterday_result"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GameResultHistory corresponds to the game_results_history table, the
// durable per-day ledger. Upserts are keyed on (game_id, result_date);
// the last write for a given day wins.
type GameResultHistory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID      uint      `gorm:"not null;uniqueIndex:idx_game_result_date" json:"game_id"`
	ResultDate  time.Time `gorm:"type:date;not null;uniqueIndex:idx_game_result_date" json:"result_date"`
	Result      int       `gorm:"not null" json:"result"`
	Mode        string    `gorm:"type:varchar(20);not null;default:'auto'" json:"mode"`
	Note        string    `gorm:"type:varchar(512)" json:"note"`
	PublishedAt time.Time `json:"published_at"`
}

// Profile corresponds to the profiles table, one row per authenticated user.
type Profile struct {
	UserID         string     `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	Email          string     `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName      string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName       string     `gorm:"type:varchar(100)" json:"last_name"`
	Role           string     `gorm:"type:varchar(50);not null;default:'user';index" json:"role"`
	IsActive       bool       `gorm:"default:true;not null" json:"is_active"`
	PublicUsername *string    `gorm:"type:varchar(100);unique" json:"public_username"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at"`
}

// UserPermission corresponds to the user_permissions grant table. A grant is
// active when ExpiresAt is nil or in the future.
type UserPermission struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_permission" json:"user_id"`
	Permission string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_permission" json:"permission"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// GameAssignment links a non-admin user to a game shown on their public page.
type GameAssignment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_game" json:"user_id"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_user_game" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrationBackup holds a full snapshot of every game's mutable result
// fields taken before a rollover. Restored flips to true on undo; a backup
// can be restored exactly once.
type MigrationBackup struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Snapshot  datatypes.JSON `gorm:"type:json;not null" json:"snapshot"`
	Restored  bool           `gorm:"default:false;not null" json:"restored"`
	CreatedAt time.Time      `json:"created_at"`
}

// GameSnapshot is one entry inside MigrationBackup.Snapshot.
type GameSnapshot struct {
	GameID          uint   `json:"game_id"`
	TodayResult     *int   `json:"today_result"`
	YesterdayResult *int   `json:"yesterday_result"`
	Status          string `json:"status"`
}

// WebsiteConfig is the singleton site-metadata row.
type WebsiteConfig struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteName        string    `gorm:"type:varchar(255);not null" json:"site_name"`
	Tagline         string    `gorm:"type:varchar(512)" json:"tagline"`
	MetaDescription string    `gorm:"type:varchar(512)" json:"meta_description"`
	ContactText     string    `gorm:"type:text" json:"contact_text"`
	MarqueeText     string    `gorm:"type:text" json:"marquee_text"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ThemeSettings is the singleton active-theme row. Palette holds colors and
// typography as JSON and is patched key-wise on update.
type ThemeSettings struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ActiveTheme string         `gorm:"type:varchar(100);not null;default:'classic'" json:"active_theme"`
	Palette     datatypes.JSON `gorm:"type:json" json:"palette"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PageSection stores per-page visibility toggles for named sections.
type PageSection struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Page      string         `gorm:"type:varchar(100);not null;unique" json:"page"`
	Sections  datatypes.JSON `gorm:"type:json" json:"sections"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CustomCSS holds optional raw CSS fragments injected by the website builder.
type CustomCSS struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;unique" json:"name"`
	CSS       string    `gorm:"type:text;not null" json:"css"`
	Enabled   bool      `gorm:"default:true;not null" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTodayResult reports whether the game currently carries a result for
// today (published or manual).
func (g *Game) HasTodayResult() bool {
	return g.TodayResult != nil && (g.Status == StatusPublished || g.Status == StatusManual)
}

// StatCard represents a single statistics card for the admin dashboard.
type StatCard struct {
	Value    int64  `json:"value"`
	SubValue int64  `json:"sub_value,omitempty"`
	Label    string `json:"label"`
}

// DashboardStatsResponse is the API response for dashboard statistics.
type DashboardStatsResponse struct {
	Games          StatCard `json:"games"`
	PublishedToday StatCard `json:"published_today"`
	PendingToday   StatCard `json:"pending_today"`
	ActiveUsers    StatCard `json:"active_users"`
}

// ResultEvent is the realtime payload published on every result mutation.
type ResultEvent struct {
	GameID      uint      `json:"game_id"`
	GameCode    string    `json:"game_code"`
	TodayResult *int      `json:"today_result"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}
