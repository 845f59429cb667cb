package content

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Collection names a content collection.
type Collection string

const (
	CollectionBlog       Collection = "blog"
	CollectionProjects   Collection = "projects"
	CollectionExperience Collection = "experience"
)

// Collections lists every known collection.
var Collections = []Collection{CollectionBlog, CollectionProjects, CollectionExperience}

// Validate checks that c names a known collection.
func (c Collection) Validate() error {
	for _, known := range Collections {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("invalid collection %q", c)
}

// Schema is the frontmatter of one collection entry.
type Schema interface {
	Validate() error
	SortDate() time.Time
	IsDraft() bool
}

func newSchema(c Collection) (Schema, error) {
	switch c {
	case CollectionBlog:
		return &BlogPost{}, nil
	case CollectionProjects:
		return &Project{}, nil
	case CollectionExperience:
		return &Experience{}, nil
	default:
		return nil, c.Validate()
	}
}

// BlogPost is the frontmatter of a blog entry.
type BlogPost struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Date        Date     `yaml:"date" json:"date"`
	Updated     Date     `yaml:"updated,omitempty" json:"updated,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	Draft       bool     `yaml:"draft,omitempty" json:"draft,omitempty"`
}

func (p BlogPost) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Date, validation.By(requiredDate)),
		validation.Field(&p.Updated, validation.By(notBefore(p.Date, "date"))),
		validation.Field(&p.Tags, validation.Each(validation.Required)),
	)
}

func (p BlogPost) SortDate() time.Time { return p.Date.Time }

func (p BlogPost) IsDraft() bool { return p.Draft }

// Project is the frontmatter of a projects entry.
type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Date        Date     `yaml:"date,omitempty" json:"date,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	DemoURL     string   `yaml:"demoUrl,omitempty" json:"demoUrl,omitempty"`
	RepoURL     string   `yaml:"repoUrl,omitempty" json:"repoUrl,omitempty"`
	Featured    bool     `yaml:"featured,omitempty" json:"featured,omitempty"`
}

func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Tags, validation.Each(validation.Required)),
		validation.Field(&p.DemoURL, is.URL),
		validation.Field(&p.RepoURL, is.URL),
	)
}

func (p Project) SortDate() time.Time { return p.Date.Time }

func (p Project) IsDraft() bool { return false }

// Experience is the frontmatter of an experience entry. An empty EndDate
// marks the current position.
type Experience struct {
	Company     string `yaml:"company" json:"company"`
	Role        string `yaml:"role" json:"role"`
	Location    string `yaml:"location,omitempty" json:"location,omitempty"`
	StartDate   Date   `yaml:"startDate" json:"startDate"`
	EndDate     Date   `yaml:"endDate,omitempty" json:"endDate,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

func (e Experience) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Company, validation.Required),
		validation.Field(&e.Role, validation.Required),
		validation.Field(&e.StartDate, validation.By(requiredDate)),
		validation.Field(&e.EndDate, validation.By(notBefore(e.StartDate, "startDate"))),
	)
}

func (e Experience) SortDate() time.Time { return e.StartDate.Time }

func (e Experience) IsDraft() bool { return false }

func requiredDate(value any) error {
	date, _ := value.(Date)
	if date.IsZero() {
		return validation.ErrRequired
	}
	return nil
}

func notBefore(start Date, field string) validation.RuleFunc {
	return func(value any) error {
		end, _ := value.(Date)
		if end.IsZero() || start.IsZero() {
			return nil
		}
		if end.Before(start.Time) {
			return validation.NewError("validation_date_order", "must not be before "+field)
		}
		return nil
	}
}
