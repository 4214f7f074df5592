// AngelaMos | 2026
// entity.go

package catalog

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type Kind string

const (
	KindTemples Kind = "temples"
	KindWeapons Kind = "weapons"
	KindFossils Kind = "fossils"
)

var Kinds = []Kind{KindTemples, KindWeapons, KindFossils}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Item is satisfied by the three catalog record types. JSON tags match the
// seed and mirror file format.
type Item interface {
	Temple | Weapon | Fossil
	Key() int64
}

type Temple struct {
	ID                     int64     `db:"id"                      json:"id"`
	Name                   string    `db:"name"                    json:"name"`
	Dynasty                string    `db:"dynasty"                 json:"dynasty"`
	Builder                string    `db:"builder"                 json:"builder"`
	TimePeriod             string    `db:"time_period"             json:"time_period"`
	HistoricalSignificance string    `db:"historical_significance" json:"historical_significance"`
	WeaponUsed             string    `db:"weapon_used"             json:"weapon_used"`
	StaticImageURL         string    `db:"static_image_url"        json:"static_image_url"`
	Model3DEmbed           *string   `db:"model_3d_embed"          json:"model_3d_embed"`
	AudioStoryURL          string    `db:"audio_story_url"         json:"audio_story_url"`
	CreatedAt              time.Time `db:"created_at"              json:"-"`
}

func (t Temple) Key() int64 { return t.ID }

type Weapon struct {
	ID             int64      `db:"id"              json:"id"`
	Name           string     `db:"name"            json:"name"`
	DynastyContext StringList `db:"dynasty_context" json:"dynasty_context"`
	Type           string     `db:"type"            json:"type"`
	Description    string     `db:"description"     json:"description"`
	ImageURL       string     `db:"image_url"       json:"image_url"`
	Model3DEmbed   *string    `db:"model_3d_embed"  json:"model_3d_embed"`
	AudioStoryURL  string     `db:"audio_story_url" json:"audio_story_url"`
	CreatedAt      time.Time  `db:"created_at"      json:"-"`
}

func (w Weapon) Key() int64 { return w.ID }

// Fossil records which admin last wrote it in UpdatedBy. The column is
// nulled when that account is deleted.
type Fossil struct {
	ID             int64     `db:"id"              json:"id"`
	Name           string    `db:"name"            json:"name"`
	FossilType     string    `db:"fossil_type"     json:"fossil_type"`
	Era            string    `db:"era"             json:"era"`
	AgeInYears     string    `db:"age_in_years"    json:"age_in_years"`
	Description    string    `db:"description"     json:"description"`
	OriginLocation string    `db:"origin_location" json:"origin_location"`
	ImageURL       string    `db:"image_url"       json:"image_url"`
	Model3DEmbed   *string   `db:"model_3d_embed"  json:"model_3d_embed"`
	AudioStoryURL  string    `db:"audio_story_url" json:"audio_story_url"`
	CreatedAt      time.Time `db:"created_at"      json:"-"`
	UpdatedBy      *int64    `db:"updated_by"      json:"-"`
}

func (f Fossil) Key() int64 { return f.ID }

// StringList is a multi-valued field stored as a JSON array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}
