package content

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

// Date is a calendar date as written in the data files: "2006-01-02",
// "2006-01", "2006" or RFC 3339. An empty Date means "ongoing".
type Date string

var dateLayouts = []string{"2006-01-02", "2006-01", "2006", time.RFC3339}

// Time parses d. ok is false for empty or unparsable dates.
func (d Date) Time() (t time.Time, ok bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return strings.TrimSpace(string(d)) == "" }

type Company struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sectors     []string `json:"sectors"`
	Location    string   `json:"location"`
	Website     string   `json:"website"`
}

type Institution struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Website     string `json:"website"`
}

type ProjectPeriod struct {
	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`
}

type ProjectLink struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Project struct {
	Name             string        `json:"name"`
	Period           ProjectPeriod `json:"period"`
	Description      string        `json:"description"`
	Responsibilities []string      `json:"responsibilities"`
	TechStack        []string      `json:"tech_stack"`
	Impact           string        `json:"impact"`
	Links            []ProjectLink `json:"links"`
}

type Experience struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	EmploymentType string    `json:"employment_type"`
	Level          string    `json:"level"`
	StartDate      Date      `json:"start_date"`
	EndDate        Date      `json:"end_date"`
	Summary        string    `json:"summary"`
	Location       string    `json:"location"`
	Company        Company   `json:"company"`
	Projects       []Project `json:"projects"`
}

type Education struct {
	ID           string      `json:"id"`
	Degree       string      `json:"degree"`
	FieldOfStudy string      `json:"field_of_study"`
	StartDate    Date        `json:"start_date"`
	EndDate      Date        `json:"end_date"`
	Grade        string      `json:"grade"`
	Summary      string      `json:"summary"`
	Location     string      `json:"location"`
	Institution  Institution `json:"institution"`
	Projects     []Project   `json:"projects"`
}

// ExperiencesPath returns the data file holding experiences in lang.
func ExperiencesPath(lang string) string {
	return "experiences/experiences." + lang + ".json"
}

// EducationPath returns the data file holding education in lang.
func EducationPath(lang string) string {
	return "formations/formations." + lang + ".json"
}

// SortExperiences orders by start date, most recent first. Undated entries go last.
func SortExperiences(list []Experience) {
	slices.SortStableFunc(list, func(a, b Experience) int {
		return compareDesc(a.StartDate, b.StartDate)
	})
}

// SortEducation orders by end date, most recent first. Ongoing entries go first.
func SortEducation(list []Education) {
	slices.SortStableFunc(list, func(a, b Education) int {
		if a.EndDate.IsZero() != b.EndDate.IsZero() {
			if a.EndDate.IsZero() {
				return -1
			}
			return 1
		}
		return compareDesc(a.EndDate, b.EndDate)
	})
}

func compareDesc(a, b Date) int {
	ta, okA := a.Time()
	tb, okB := b.Time()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	default:
		return tb.Compare(ta)
	}
}

// Profile serves experiences and education per language. A failed fetch or
// decode is replaced by the embedded default for that language; the two are
// never merged.
type Profile struct {
	src         Source
	experiences *cache.Loader[[]Experience]
	education   *cache.Loader[[]Education]
	ttl         time.Duration
	log         *slog.Logger
}

// ProfileOption configures a Profile.
type ProfileOption func(*Profile)

// WithProfileTTL sets how long fetched data is reused. Default: 10 minutes.
func WithProfileTTL(d time.Duration) ProfileOption {
	return func(p *Profile) {
		if d > 0 {
			p.ttl = d
		}
	}
}

// WithProfileLogger sets the logger used to report fallbacks.
func WithProfileLogger(log *slog.Logger) ProfileOption {
	return func(p *Profile) {
		if log != nil {
			p.log = log
		}
	}
}

// NewProfile creates a profile service reading from src.
func NewProfile(src Source, opts ...ProfileOption) *Profile {
	p := &Profile{
		src:         src,
		experiences: cache.NewLoader[[]Experience](cache.NewMemory[[]Experience](cache.WithMaxEntries(8))),
		education:   cache.NewLoader[[]Education](cache.NewMemory[[]Education](cache.WithMaxEntries(8))),
		ttl:         DefaultStaleAfter,
		log:         logger.NewNope(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Experiences returns the sorted experiences for lang. It never fails.
func (p *Profile) Experiences(ctx context.Context, lang string) []Experience {
	path := ExperiencesPath(lang)
	list, err := p.experiences.Load(ctx, path, func(ctx context.Context) ([]Experience, time.Duration, error) {
		list, err := fetchJSON[[]Experience](ctx, p.src, path)
		return list, p.ttl, err
	})
	if err != nil {
		p.log.WarnContext(ctx, "experiences unavailable, using bundled defaults",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		list = DefaultExperiences(lang)
	}
	out := slices.Clone(list)
	SortExperiences(out)
	return out
}

// Education returns the sorted education entries for lang. It never fails.
func (p *Profile) Education(ctx context.Context, lang string) []Education {
	path := EducationPath(lang)
	list, err := p.education.Load(ctx, path, func(ctx context.Context) ([]Education, time.Duration, error) {
		list, err := fetchJSON[[]Education](ctx, p.src, path)
		return list, p.ttl, err
	})
	if err != nil {
		p.log.WarnContext(ctx, "education unavailable, using bundled defaults",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		list = DefaultEducation(lang)
	}
	out := slices.Clone(list)
	SortEducation(out)
	return out
}

// Warm loads both data sets for every supported language.
func (p *Profile) Warm(ctx context.Context, langs ...string) {
	for _, lang := range langs {
		p.Experiences(ctx, lang)
		p.Education(ctx, lang)
	}
}

// DefaultExperiences returns the bundled experiences for lang, or English
// when lang has no bundle.
func DefaultExperiences(lang string) []Experience {
	return loadDefault[[]Experience](ExperiencesPath(lang), ExperiencesPath(i18n.DefaultLang))
}

// DefaultEducation returns the bundled education for lang, or English when
// lang has no bundle.
func DefaultEducation(lang string) []Education {
	return loadDefault[[]Education](EducationPath(lang), EducationPath(i18n.DefaultLang))
}

func loadDefault[T any](paths ...string) T {
	var zero T
	for _, p := range paths {
		data, err := defaultsFS.ReadFile("defaults/" + p[strings.LastIndexByte(p, '/')+1:])
		if err != nil {
			continue
		}
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			panic(fmt.Sprintf("content: bundled default %s is invalid: %v", p, err))
		}
		return v
	}
	return zero
}

func fetchJSON[T any](ctx context.Context, src Source, path string) (T, error) {
	var v T
	data, err := src.Fetch(ctx, path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return v, nil
}
