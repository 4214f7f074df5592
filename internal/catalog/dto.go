// AngelaMos | 2026
// dto.go

package catalog

type CreateTempleRequest struct {
	Name                   string  `json:"name"                    validate:"required,max=255"`
	Dynasty                string  `json:"dynasty"                 validate:"required,max=255"`
	Builder                string  `json:"builder"                 validate:"required,max=255"`
	TimePeriod             string  `json:"time_period"             validate:"required,max=255"`
	HistoricalSignificance string  `json:"historical_significance" validate:"required"`
	WeaponUsed             string  `json:"weapon_used"             validate:"required,max=255"`
	StaticImageURL         string  `json:"static_image_url"        validate:"required,max=500"`
	Model3DEmbed           *string `json:"model_3d_embed"          validate:"omitempty,max=500"`
	AudioStoryURL          string  `json:"audio_story_url"         validate:"required,max=500"`
}

type UpdateTempleRequest struct {
	Name                   *string `json:"name"                    validate:"omitempty,min=1,max=255"`
	Dynasty                *string `json:"dynasty"                 validate:"omitempty,min=1,max=255"`
	Builder                *string `json:"builder"                 validate:"omitempty,min=1,max=255"`
	TimePeriod             *string `json:"time_period"             validate:"omitempty,min=1,max=255"`
	HistoricalSignificance *string `json:"historical_significance" validate:"omitempty,min=1"`
	WeaponUsed             *string `json:"weapon_used"             validate:"omitempty,min=1,max=255"`
	StaticImageURL         *string `json:"static_image_url"        validate:"omitempty,min=1,max=500"`
	Model3DEmbed           *string `json:"model_3d_embed"          validate:"omitempty,max=500"`
	AudioStoryURL          *string `json:"audio_story_url"         validate:"omitempty,min=1,max=500"`
}

func (r CreateTempleRequest) toEntity(int64) Temple {
	return Temple{
		Name:                   r.Name,
		Dynasty:                r.Dynasty,
		Builder:                r.Builder,
		TimePeriod:             r.TimePeriod,
		HistoricalSignificance: r.HistoricalSignificance,
		WeaponUsed:             r.WeaponUsed,
		StaticImageURL:         r.StaticImageURL,
		Model3DEmbed:           r.Model3DEmbed,
		AudioStoryURL:          r.AudioStoryURL,
	}
}

func (r UpdateTempleRequest) apply(t *Temple, _ int64) {
	set(&t.Name, r.Name)
	set(&t.Dynasty, r.Dynasty)
	set(&t.Builder, r.Builder)
	set(&t.TimePeriod, r.TimePeriod)
	set(&t.HistoricalSignificance, r.HistoricalSignificance)
	set(&t.WeaponUsed, r.WeaponUsed)
	set(&t.StaticImageURL, r.StaticImageURL)
	setOptional(&t.Model3DEmbed, r.Model3DEmbed)
	set(&t.AudioStoryURL, r.AudioStoryURL)
}

type CreateWeaponRequest struct {
	Name           string   `json:"name"            validate:"required,max=255"`
	DynastyContext []string `json:"dynasty_context" validate:"dive,max=255"`
	Type           string   `json:"type"            validate:"required,max=100"`
	Description    string   `json:"description"     validate:"required"`
	ImageURL       string   `json:"image_url"       validate:"required,max=500"`
	Model3DEmbed   *string  `json:"model_3d_embed"  validate:"omitempty,max=500"`
	AudioStoryURL  string   `json:"audio_story_url" validate:"required,max=500"`
}

type UpdateWeaponRequest struct {
	Name           *string  `json:"name"            validate:"omitempty,min=1,max=255"`
	DynastyContext []string `json:"dynasty_context" validate:"omitempty,dive,max=255"`
	Type           *string  `json:"type"            validate:"omitempty,min=1,max=100"`
	Description    *string  `json:"description"     validate:"omitempty,min=1"`
	ImageURL       *string  `json:"image_url"       validate:"omitempty,min=1,max=500"`
	Model3DEmbed   *string  `json:"model_3d_embed"  validate:"omitempty,max=500"`
	AudioStoryURL  *string  `json:"audio_story_url" validate:"omitempty,min=1,max=500"`
}

func (r CreateWeaponRequest) toEntity(int64) Weapon {
	dynasties := StringList(r.DynastyContext)
	if dynasties == nil {
		dynasties = StringList{}
	}
	return Weapon{
		Name:           r.Name,
		DynastyContext: dynasties,
		Type:           r.Type,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		Model3DEmbed:   r.Model3DEmbed,
		AudioStoryURL:  r.AudioStoryURL,
	}
}

func (r UpdateWeaponRequest) apply(w *Weapon, _ int64) {
	set(&w.Name, r.Name)
	if r.DynastyContext != nil {
		w.DynastyContext = StringList(r.DynastyContext)
	}
	set(&w.Type, r.Type)
	set(&w.Description, r.Description)
	set(&w.ImageURL, r.ImageURL)
	setOptional(&w.Model3DEmbed, r.Model3DEmbed)
	set(&w.AudioStoryURL, r.AudioStoryURL)
}

type CreateFossilRequest struct {
	Name           string  `json:"name"            validate:"required,max=255"`
	FossilType     string  `json:"fossil_type"     validate:"required,max=100"`
	Era            string  `json:"era"             validate:"required,max=100"`
	AgeInYears     string  `json:"age_in_years"    validate:"required,max=100"`
	Description    string  `json:"description"     validate:"required"`
	OriginLocation string  `json:"origin_location" validate:"required,max=255"`
	ImageURL       string  `json:"image_url"       validate:"required,max=500"`
	Model3DEmbed   *string `json:"model_3d_embed"  validate:"omitempty,max=500"`
	AudioStoryURL  string  `json:"audio_story_url" validate:"required,max=500"`
}

type UpdateFossilRequest struct {
	Name           *string `json:"name"            validate:"omitempty,min=1,max=255"`
	FossilType     *string `json:"fossil_type"     validate:"omitempty,min=1,max=100"`
	Era            *string `json:"era"             validate:"omitempty,min=1,max=100"`
	AgeInYears     *string `json:"age_in_years"    validate:"omitempty,min=1,max=100"`
	Description    *string `json:"description"     validate:"omitempty,min=1"`
	OriginLocation *string `json:"origin_location" validate:"omitempty,min=1,max=255"`
	ImageURL       *string `json:"image_url"       validate:"omitempty,min=1,max=500"`
	Model3DEmbed   *string `json:"model_3d_embed"  validate:"omitempty,max=500"`
	AudioStoryURL  *string `json:"audio_story_url" validate:"omitempty,min=1,max=500"`
}

func (r CreateFossilRequest) toEntity(actorID int64) Fossil {
	return Fossil{
		Name:           r.Name,
		FossilType:     r.FossilType,
		Era:            r.Era,
		AgeInYears:     r.AgeInYears,
		Description:    r.Description,
		OriginLocation: r.OriginLocation,
		ImageURL:       r.ImageURL,
		Model3DEmbed:   r.Model3DEmbed,
		AudioStoryURL:  r.AudioStoryURL,
		UpdatedBy:      &actorID,
	}
}

func (r UpdateFossilRequest) apply(f *Fossil, actorID int64) {
	set(&f.Name, r.Name)
	set(&f.FossilType, r.FossilType)
	set(&f.Era, r.Era)
	set(&f.AgeInYears, r.AgeInYears)
	set(&f.Description, r.Description)
	set(&f.OriginLocation, r.OriginLocation)
	set(&f.ImageURL, r.ImageURL)
	setOptional(&f.Model3DEmbed, r.Model3DEmbed)
	set(&f.AudioStoryURL, r.AudioStoryURL)
	f.UpdatedBy = &actorID
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setOptional treats an explicit empty string as clearing the field.
func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	val := *v
	*dst = &val
}

// Content listings expose media paths relative to the media endpoint,
// prefixed with the kind.
func presentTemple(t Temple) Temple {
	t.StaticImageURL = mediaPath(KindTemples, t.StaticImageURL)
	t.AudioStoryURL = mediaPath(KindTemples, t.AudioStoryURL)
	return t
}

func presentWeapon(w Weapon) Weapon {
	w.ImageURL = mediaPath(KindWeapons, w.ImageURL)
	w.AudioStoryURL = mediaPath(KindWeapons, w.AudioStoryURL)
	return w
}

func presentFossil(f Fossil) Fossil {
	f.ImageURL = mediaPath(KindFossils, f.ImageURL)
	f.AudioStoryURL = mediaPath(KindFossils, f.AudioStoryURL)
	return f
}

func mediaPath(kind Kind, rel string) string {
	return string(kind) + "/" + rel
}
