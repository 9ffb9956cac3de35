package visualization

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// Config holds chart rendering options.
type Config struct {
	WidthInches   float64
	HeightInches  float64
	HistogramBins int
}

// DefaultConfig returns the default chart dimensions and bin count.
func DefaultConfig() Config {
	return Config{
		WidthInches:   8,
		HeightInches:  6,
		HistogramBins: 20,
	}
}

// Renderer draws the chart set for a set of cleaned student records.
type Renderer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a renderer. A nil logger falls back to slog.Default.
func New(cfg Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.WidthInches <= 0 {
		cfg.WidthInches = 8
	}
	if cfg.HeightInches <= 0 {
		cfg.HeightInches = 6
	}
	if cfg.HistogramBins <= 0 {
		cfg.HistogramBins = 20
	}
	return &Renderer{cfg: cfg, logger: logger}
}

var (
	colorCompleted    = color.RGBA{R: 0x2c, G: 0x7f, B: 0xb8, A: 0xff}
	colorNotCompleted = color.RGBA{R: 0xd9, G: 0x53, B: 0x35, A: 0xff}
	colorHistogram    = color.RGBA{R: 0x7f, G: 0xbc, B: 0x41, A: 0xff}
	colorMeanLine     = color.RGBA{R: 0xd9, G: 0x53, B: 0x35, A: 0xff}
	colorMedianLine   = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
)

// histogramColumns are the columns that get a per-column distribution chart.
var histogramColumns = []struct {
	name string
	get  func(domain.StudentRecord) float64
}{
	{"age", func(r domain.StudentRecord) float64 { return float64(r.Age) }},
	{"study_hours", func(r domain.StudentRecord) float64 { return r.StudyHours }},
	{"quiz_participation", func(r domain.StudentRecord) float64 { return r.QuizParticipation }},
	{"past_performance", func(r domain.StudentRecord) float64 { return r.PastPerformance }},
	{"study_hours_norm", func(r domain.StudentRecord) float64 { return r.StudyHoursNorm }},
	{"engagement", func(r domain.StudentRecord) float64 { return r.Engagement }},
}

// RenderAll draws every chart into outDir concurrently and returns the paths
// of the files written. The first rendering error cancels the remaining work.
func (r *Renderer) RenderAll(ctx context.Context, records []domain.StudentRecord, outDir string) ([]string, error) {
	if len(records) == 0 {
		return nil, errors.NewValidationError("no records to chart", nil)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.NewStorageError("failed to create chart output directory", err)
	}

	r.logger.InfoContext(ctx, "rendering charts",
		slog.Int("record_count", len(records)),
		slog.String("out_dir", outDir))

	type task struct {
		file   string
		render func(path string) error
	}

	tasks := []task{
		{"scatter_hours_performance.png", func(p string) error { return r.ScatterHoursPerformance(records, p) }},
		{"bar_engagement_completion.png", func(p string) error { return r.EngagementBars(records, p) }},
		{"boxplots.png", func(p string) error { return r.Boxplots(records, p) }},
		{"stacked_gender_completion.png", func(p string) error {
			return r.StackedCompletion(records, "gender",
				func(rec domain.StudentRecord) string { return string(rec.Gender) }, p)
		}},
		{"stacked_age_bucket_completion.png", func(p string) error {
			return r.StackedCompletion(records, "age_bucket",
				func(rec domain.StudentRecord) string { return rec.AgeBucket }, p)
		}},
	}
	for _, col := range histogramColumns {
		col := col
		tasks = append(tasks, task{
			file: fmt.Sprintf("hist_%s.png", col.name),
			render: func(p string) error {
				return r.ColumnHistogram(records, col.name, col.get, p)
			},
		})
	}

	paths := make([]string, len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(outDir, t.file)
			if err := t.render(path); err != nil {
				return fmt.Errorf("render %s: %w", t.file, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "charts rendered", slog.Int("chart_count", len(paths)))
	return paths, nil
}

// ScatterHoursPerformance draws study hours against past performance with
// one series per completion outcome.
func (r *Renderer) ScatterHoursPerformance(records []domain.StudentRecord, path string) error {
	p := plot.New()
	p.Title.Text = "Study Hours vs Past Performance"
	p.X.Label.Text = "study_hours"
	p.Y.Label.Text = "past_performance"

	var completed, notCompleted plotter.XYs
	for _, rec := range records {
		point := plotter.XY{X: rec.StudyHours, Y: rec.PastPerformance}
		if rec.CourseCompletion {
			completed = append(completed, point)
		} else {
			notCompleted = append(notCompleted, point)
		}
	}

	for _, series := range []struct {
		name   string
		points plotter.XYs
		fill   color.Color
	}{
		{"completed", completed, colorCompleted},
		{"not completed", notCompleted, colorNotCompleted},
	} {
		if len(series.points) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(series.points)
		if err != nil {
			return errors.NewGenerationError("failed to build scatter series", err)
		}
		scatter.GlyphStyle.Color = series.fill
		scatter.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(scatter)
		p.Legend.Add(series.name, scatter)
	}
	p.Legend.Top = true

	return r.save(p, path)
}

// ColumnHistogram draws the distribution of one numeric column with vertical
// mean and median markers and shape statistics in the title.
func (r *Renderer) ColumnHistogram(records []domain.StudentRecord, column string, get func(domain.StudentRecord) float64, path string) error {
	values := make(plotter.Values, len(records))
	raw := make([]float64, len(records))
	for i, rec := range records {
		values[i] = get(rec)
		raw[i] = values[i]
	}

	hist, err := plotter.NewHist(values, r.cfg.HistogramBins)
	if err != nil {
		return errors.NewGenerationError("failed to build histogram", err)
	}
	hist.FillColor = colorHistogram

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (skew=%.2f, kurtosis=%.2f)",
		column, stat.Skew(raw, nil), stat.ExKurtosis(raw, nil))
	p.X.Label.Text = column
	p.Y.Label.Text = "count"
	p.Add(hist)

	maxWeight := 0.0
	for _, bin := range hist.Bins {
		if bin.Weight > maxWeight {
			maxWeight = bin.Weight
		}
	}

	mean := stat.Mean(raw, nil)
	median := quantileOf(raw, 0.5)
	for _, marker := range []struct {
		name  string
		x     float64
		style color.Color
	}{
		{"mean", mean, colorMeanLine},
		{"median", median, colorMedianLine},
	} {
		line, err := plotter.NewLine(plotter.XYs{
			{X: marker.x, Y: 0},
			{X: marker.x, Y: maxWeight},
		})
		if err != nil {
			return errors.NewGenerationError("failed to build marker line", err)
		}
		line.LineStyle.Color = marker.style
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(marker.name, line)
	}
	p.Legend.Top = true

	return r.save(p, path)
}

// EngagementBars draws mean engagement for completed and not-completed
// students as a bar chart.
func (r *Renderer) EngagementBars(records []domain.StudentRecord, path string) error {
	sums := map[bool]float64{}
	counts := map[bool]int{}
	for _, rec := range records {
		sums[rec.CourseCompletion] += rec.Engagement
		counts[rec.CourseCompletion]++
	}

	values := make(plotter.Values, 0, 2)
	labels := make([]string, 0, 2)
	for _, completed := range []bool{true, false} {
		if counts[completed] == 0 {
			continue
		}
		values = append(values, sums[completed]/float64(counts[completed]))
		labels = append(labels, strconv.FormatBool(completed))
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return errors.NewGenerationError("failed to build bar chart", err)
	}
	bars.Color = colorCompleted

	p := plot.New()
	p.Title.Text = "Mean Engagement by Course Completion"
	p.X.Label.Text = "course_completion"
	p.Y.Label.Text = "mean engagement"
	p.Add(bars)
	p.NominalX(labels...)

	return r.save(p, path)
}

// Boxplots draws side-by-side boxplots for the main numeric columns.
func (r *Renderer) Boxplots(records []domain.StudentRecord, path string) error {
	columns := []struct {
		name string
		get  func(domain.StudentRecord) float64
	}{
		{"age", func(rec domain.StudentRecord) float64 { return float64(rec.Age) }},
		{"study_hours", func(rec domain.StudentRecord) float64 { return rec.StudyHours }},
		{"quiz_participation", func(rec domain.StudentRecord) float64 { return rec.QuizParticipation }},
		{"past_performance", func(rec domain.StudentRecord) float64 { return rec.PastPerformance }},
	}

	p := plot.New()
	p.Title.Text = "Distribution of Numeric Columns"
	p.Y.Label.Text = "value"

	labels := make([]string, 0, len(columns))
	for i, col := range columns {
		values := make(plotter.Values, len(records))
		for j, rec := range records {
			values[j] = col.get(rec)
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return errors.NewGenerationError("failed to build boxplot", err)
		}
		p.Add(box)
		labels = append(labels, col.name)
	}
	p.NominalX(labels...)

	return r.save(p, path)
}

// StackedCompletion draws completion counts stacked per category of a
// grouping column.
func (r *Renderer) StackedCompletion(records []domain.StudentRecord, groupBy string, key func(domain.StudentRecord) string, path string) error {
	completed := map[string]float64{}
	notCompleted := map[string]float64{}
	seen := map[string]bool{}
	var order []string
	for _, rec := range records {
		k := key(rec)
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
		if rec.CourseCompletion {
			completed[k]++
		} else {
			notCompleted[k]++
		}
	}

	completedVals := make(plotter.Values, len(order))
	notCompletedVals := make(plotter.Values, len(order))
	for i, k := range order {
		completedVals[i] = completed[k]
		notCompletedVals[i] = notCompleted[k]
	}

	base, err := plotter.NewBarChart(completedVals, vg.Points(40))
	if err != nil {
		return errors.NewGenerationError("failed to build stacked bar chart", err)
	}
	base.Color = colorCompleted

	top, err := plotter.NewBarChart(notCompletedVals, vg.Points(40))
	if err != nil {
		return errors.NewGenerationError("failed to build stacked bar chart", err)
	}
	top.Color = colorNotCompleted
	top.StackOn(base)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Course Completion by %s", groupBy)
	p.X.Label.Text = groupBy
	p.Y.Label.Text = "students"
	p.Add(base, top)
	p.Legend.Add("completed", base)
	p.Legend.Add("not completed", top)
	p.Legend.Top = true
	p.NominalX(order...)

	return r.save(p, path)
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	w := vg.Length(r.cfg.WidthInches) * vg.Inch
	h := vg.Length(r.cfg.HeightInches) * vg.Inch
	if err := p.Save(w, h, path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save chart %s", filepath.Base(path)), err)
	}
	return nil
}

func quantileOf(values []float64, p float64) float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}
