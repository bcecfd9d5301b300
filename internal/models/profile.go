package models

import (
	"strings"
	"time"
)

// Profile is the single developer profile owned by a user.
type Profile struct {
	ID             string       `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID         string       `gorm:"uniqueIndex;not null;type:varchar(36)" bson:"user" json:"-"`
	User           *UserSummary `gorm:"-" bson:"-" json:"user"`
	Company        string       `bson:"company,omitempty" json:"company,omitempty"`
	Website        string       `bson:"website,omitempty" json:"website,omitempty"`
	Location       string       `bson:"location,omitempty" json:"location,omitempty"`
	Bio            string       `bson:"bio,omitempty" json:"bio,omitempty"`
	Status         string       `gorm:"not null" bson:"status" json:"status"`
	GitHubUsername string       `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Skills         []string     `gorm:"type:text;serializer:json" bson:"skills" json:"skills"`
	Social         Social       `gorm:"type:text;serializer:json" bson:"social" json:"social"`
	Experience     []Experience `gorm:"type:text;serializer:json" bson:"experience" json:"experience"`
	Education      []Education  `gorm:"type:text;serializer:json" bson:"education" json:"education"`
	CreatedAt      time.Time    `bson:"date" json:"date"`
	UpdatedAt      time.Time    `bson:"updated_at" json:"-"`
}

// Social holds the fixed set of social links.
type Social struct {
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedIn,omitempty" json:"linkedIn,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Experience struct {
	ID          string `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Company     string `bson:"company" json:"company"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	From        Date   `bson:"from" json:"from"`
	To          *Date  `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool   `bson:"current" json:"current"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           string `bson:"_id" json:"id"`
	School       string `bson:"school" json:"school"`
	Degree       string `bson:"degree" json:"degree"`
	FieldOfStudy string `bson:"fieldofstudy" json:"fieldofstudy"`
	From         Date   `bson:"from" json:"from"`
	To           *Date  `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool   `bson:"current" json:"current"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
}

// ProfileFields carries an upsert request. Empty values mean "not supplied".
type ProfileFields struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GitHubUsername string
	Skills         string
	Social         Social
}

// NewProfile returns an empty profile for userID with non-nil collections.
func NewProfile(userID string) *Profile {
	return &Profile{
		ID:         NewID(),
		UserID:     userID,
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
	}
}

// ParseSkills splits a comma separated list, trimming entries and dropping empty ones.
func ParseSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Apply copies every supplied field onto p and leaves the rest untouched.
func (p *Profile) Apply(f ProfileFields) {
	setIfPresent(&p.Company, f.Company)
	setIfPresent(&p.Website, f.Website)
	setIfPresent(&p.Location, f.Location)
	setIfPresent(&p.Bio, f.Bio)
	setIfPresent(&p.Status, f.Status)
	setIfPresent(&p.GitHubUsername, f.GitHubUsername)
	if strings.TrimSpace(f.Skills) != "" {
		p.Skills = ParseSkills(f.Skills)
	}

	setIfPresent(&p.Social.YouTube, f.Social.YouTube)
	setIfPresent(&p.Social.Twitter, f.Social.Twitter)
	setIfPresent(&p.Social.Facebook, f.Social.Facebook)
	setIfPresent(&p.Social.LinkedIn, f.Social.LinkedIn)
	setIfPresent(&p.Social.Instagram, f.Social.Instagram)
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// AddExperience prepends e, assigning it a fresh identifier.
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = NewID()
	p.Experience = append([]Experience{e}, p.Experience...)
	return e
}

// RemoveExperience drops the entry with the given id.
func (p *Profile) RemoveExperience(id string) bool {
	var ok bool
	p.Experience, ok = removeByID(p.Experience, id, func(e Experience) string { return e.ID })
	return ok
}

// AddEducation prepends e, assigning it a fresh identifier.
func (p *Profile) AddEducation(e Education) Education {
	e.ID = NewID()
	p.Education = append([]Education{e}, p.Education...)
	return e
}

// RemoveEducation drops the entry with the given id.
func (p *Profile) RemoveEducation(id string) bool {
	var ok bool
	p.Education, ok = removeByID(p.Education, id, func(e Education) string { return e.ID })
	return ok
}
