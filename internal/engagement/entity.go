// AngelaMos | 2026
// entity.go

package engagement

import (
	"strings"
	"time"
)

type Room string

const (
	RoomTemples Room = "temples"
	RoomWeapons Room = "weapons"
	RoomFossils Room = "fossils"
	RoomGame    Room = "game"
)

var Rooms = []Room{RoomTemples, RoomWeapons, RoomFossils, RoomGame}

func ParseRoom(s string) (Room, bool) {
	for _, r := range Rooms {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

func roomNames() string {
	names := make([]string, len(Rooms))
	for i, r := range Rooms {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

type Visit struct {
	ID          int64     `db:"id"           json:"id"`
	UserID      int64     `db:"user_id"      json:"user_id"`
	RoomVisited string    `db:"room_visited" json:"room_visited"`
	VisitedAt   time.Time `db:"visited_at"   json:"visited_at"`
}

type HighScore struct {
	ID         int64     `db:"id"          json:"id"`
	UserID     int64     `db:"user_id"     json:"user_id"`
	Score      int       `db:"score"       json:"score"`
	GameMode   string    `db:"game_mode"   json:"game_mode"`
	AchievedAt time.Time `db:"achieved_at" json:"achieved_at"`
}

type Feedback struct {
	ID          int64     `db:"id"           json:"id"`
	UserID      int64     `db:"user_id"      json:"user_id"`
	Rating      int       `db:"rating"       json:"rating"`
	Message     string    `db:"message"      json:"message"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

type RoomCount struct {
	Room   string `db:"room_visited"`
	Visits int    `db:"visits"`
}

// VisitStats.AverageVisitDuration is a fixed placeholder in minutes: 5 when
// any visit exists, else 0. Visits carry no end time to derive it from.
type VisitStats struct {
	RoomStatistics       map[string]int `json:"room_statistics"`
	TotalVisits          int            `json:"total_visits"`
	UniqueUsers          int            `json:"unique_users"`
	AverageVisitDuration int            `json:"average_visit_duration"`
}
