package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// Config holds generation options
type Config struct {
	Count       int
	Seed        int64
	EmailDomain string
	// Contaminate enables the missing-value and inconsistency passes
	Contaminate bool
}

// DefaultConfig returns the standard coursework dataset configuration
func DefaultConfig() Config {
	return Config{
		Count:       500,
		Seed:        123,
		EmailDomain: "student.ncirl.ie",
		Contaminate: true,
	}
}

// Generator produces seeded synthetic student records
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates a generator. The same config always produces the same dataset.
func New(logger *slog.Logger, cfg Config) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Count <= 0 {
		cfg.Count = 500
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "student.ncirl.ie"
	}

	return &Generator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logger,
	}
}

// Generate produces the full raw dataset: base records plus, when enabled,
// the contamination passes in a fixed order (missing values, value
// inconsistencies, boolean spelling variants).
func (g *Generator) Generate(ctx context.Context) ([]domain.RawRecord, error) {
	if g.cfg.Count <= 0 {
		return nil, errors.NewGenerationError("record count must be positive", nil).
			WithContext("count", g.cfg.Count)
	}

	g.logger.InfoContext(ctx, "generating student records",
		slog.Int("count", g.cfg.Count),
		slog.Int64("seed", g.cfg.Seed),
		slog.Bool("contaminate", g.cfg.Contaminate))

	records := make([]domain.RawRecord, g.cfg.Count)
	for i := range records {
		records[i] = g.record(i + 1)
	}

	if g.cfg.Contaminate {
		g.introduceMissingValues(records)
		g.introduceValueInconsistencies(records)
		g.introduceBooleanVariants(records)
	}

	g.logger.InfoContext(ctx, "student records generated",
		slog.Int("count", len(records)))

	return records, nil
}

// record builds one fully populated student row
func (g *Generator) record(idx int) domain.RawRecord {
	gender := g.gender()
	id := StudentID(idx)

	return domain.RawRecord{
		StudentID:         id,
		FirstName:         g.firstName(gender),
		LastName:          lastNames[g.rng.Intn(len(lastNames))],
		Gender:            string(gender),
		Email:             domain.StudentEmail(id, g.cfg.EmailDomain),
		Age:               strconv.Itoa(g.age()),
		StudyHours:        strconv.FormatFloat(g.studyHours(), 'f', 2, 64),
		QuizParticipation: strconv.FormatFloat(g.quizParticipation(), 'f', 1, 64),
		PastPerformance:   strconv.Itoa(g.pastPerformance()),
		CourseCompletion:  strconv.FormatBool(g.rng.Float64() < 0.7),
	}
}

// StudentID formats a sequential student identifier (S001, S002, ...)
func StudentID(idx int) string {
	return fmt.Sprintf("S%03d", idx)
}

func (g *Generator) gender() domain.Gender {
	if g.rng.Float64() < 0.5 {
		return domain.GenderMale
	}
	return domain.GenderFemale
}

func (g *Generator) firstName(gender domain.Gender) string {
	if gender == domain.GenderMale {
		return firstNamesMale[g.rng.Intn(len(firstNamesMale))]
	}
	return firstNamesFemale[g.rng.Intn(len(firstNamesFemale))]
}

// age draws from normal(22, 3) clamped to 20-45, with rare 19 and 46-50 tails
func (g *Generator) age() int {
	age := int(g.rng.NormFloat64()*3 + 22)
	if age < 20 && g.rng.Float64() < 0.05 {
		return 19
	}
	if age > 45 && g.rng.Float64() < 0.01 {
		return 46 + g.rng.Intn(5)
	}
	if age < 20 {
		return 20
	}
	if age > 45 {
		return 45
	}
	return age
}

// studyHours draws from triangular(0, 10, 20) with rare out-of-range outliers
func (g *Generator) studyHours() float64 {
	r := g.rng.Float64()
	if r < 0.03 {
		return g.uniform(100, 120)
	}
	if r < 0.05 {
		return g.uniform(-5, 0)
	}
	return round2(g.triangular(0, 10, 20))
}

// quizParticipation draws uniform 50-100 with rare >100 and negative anomalies
func (g *Generator) quizParticipation() float64 {
	r := g.rng.Float64()
	if r < 0.03 {
		return g.uniform(101, 120)
	}
	if r < 0.05 {
		return g.uniform(-10, 0)
	}
	return math.Round(g.uniform(50, 100)*10) / 10
}

// pastPerformance draws from normal(70, 15) clamped 0-100 with rare outliers
func (g *Generator) pastPerformance() int {
	score := g.rng.NormFloat64()*15 + 70
	if g.rng.Float64() < 0.03 {
		return int(g.uniform(101, 120))
	}
	if g.rng.Float64() < 0.02 {
		return int(g.uniform(-10, 0))
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// introduceMissingValues blanks fields at the per-column rates of the
// coursework dataset: numerics most often, identity fields rarely.
func (g *Generator) introduceMissingValues(records []domain.RawRecord) {
	for i := range records {
		if g.rng.Float64() < 0.07 {
			records[i].StudyHours = ""
		}
		if g.rng.Float64() < 0.06 {
			records[i].QuizParticipation = ""
		}
		if g.rng.Float64() < 0.05 {
			records[i].PastPerformance = ""
		}
		if g.rng.Float64() < 0.03 {
			records[i].CourseCompletion = ""
		}
		if g.rng.Float64() < 0.01 {
			records[i].FirstName = ""
		}
		if g.rng.Float64() < 0.01 {
			records[i].LastName = ""
		}
		if g.rng.Float64() < 0.005 {
			records[i].Gender = ""
		}
		if g.rng.Float64() < 0.005 {
			records[i].Email = ""
		}
	}
}

// introduceValueInconsistencies rewrites a small share of cells into the
// messy formats found in real exports: literal placeholders, percent signs
// and fraction renderings of percentages.
func (g *Generator) introduceValueInconsistencies(records []domain.RawRecord) {
	for i := range records {
		if g.rng.Float64() < 0.02 {
			records[i].Age = "unknown"
		}
		if g.rng.Float64() < 0.02 {
			records[i].StudyHours = "various"
		}
		if g.rng.Float64() < 0.02 && records[i].PastPerformance != "" {
			if v, err := strconv.ParseFloat(records[i].PastPerformance, 64); err == nil {
				records[i].PastPerformance = strconv.FormatFloat(v/100, 'f', 2, 64)
			}
		}
		if g.rng.Float64() < 0.03 && records[i].QuizParticipation != "" {
			if v, err := strconv.ParseFloat(records[i].QuizParticipation, 64); err == nil {
				switch g.rng.Intn(3) {
				case 0:
					records[i].QuizParticipation = records[i].QuizParticipation + "%"
				case 1:
					records[i].QuizParticipation = strconv.FormatFloat(v/100, 'f', 3, 64)
				default:
					records[i].QuizParticipation = strconv.FormatFloat(v/100, 'f', 2, 64)
				}
			}
		}
	}
}

// introduceBooleanVariants rewrites some course_completion values into the
// spelling variants the cleaner's truthy table understands.
func (g *Generator) introduceBooleanVariants(records []domain.RawRecord) {
	trueVariants := []string{"Yes", "1", "Completed", "TRUE"}
	falseVariants := []string{"No", "0", "Incomplete", "FALSE"}

	for i := range records {
		if g.rng.Float64() >= 0.04 {
			continue
		}
		switch records[i].CourseCompletion {
		case "true":
			records[i].CourseCompletion = trueVariants[g.rng.Intn(len(trueVariants))]
		case "false":
			records[i].CourseCompletion = falseVariants[g.rng.Intn(len(falseVariants))]
		}
	}
}

// triangular samples the triangular distribution via inverse transform
func (g *Generator) triangular(left, mode, right float64) float64 {
	u := g.rng.Float64()
	cut := (mode - left) / (right - left)
	if u < cut {
		return left + math.Sqrt(u*(right-left)*(mode-left))
	}
	return right - math.Sqrt((1-u)*(right-left)*(right-mode))
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
