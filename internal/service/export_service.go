package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/training-capacity-api/internal/models"
	appErrors "github.com/noah-isme/training-capacity-api/pkg/errors"
	"github.com/noah-isme/training-capacity-api/pkg/export"
)

// Report views and formats accepted by the export endpoint.
const (
	ReportViewTrainers = "trainers"
	ReportViewRooms    = "rooms"
	ReportViewMonthly  = "monthly"

	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

type monthlyPlanner interface {
	MonthlyPlanning(ctx context.Context) ([]models.MonthPlan, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// Report is a rendered export ready to be streamed.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders capacity views as CSV or PDF.
type ExportService struct {
	workload workloadProvider
	planner  monthlyPlanner
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(workload workloadProvider, planner monthlyPlanner, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(export.WithBOM())
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{workload: workload, planner: planner, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Generate builds the dataset for view and renders it in format.
func (s *ExportService) Generate(ctx context.Context, view, format string) (*Report, error) {
	view = strings.ToLower(strings.TrimSpace(view))
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ReportFormatCSV
	}
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	dataset, title, err := s.buildDataset(ctx, view)
	if err != nil {
		return nil, err
	}

	report := &Report{Filename: s.buildFilename(view, format)}
	switch format {
	case ReportFormatCSV:
		report.ContentType = "text/csv; charset=utf-8"
		report.Body, err = s.csv.Render(dataset)
	case ReportFormatPDF:
		report.ContentType = "application/pdf"
		report.Body, err = s.pdf.Render(dataset, title)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	s.logger.Info("capacity report exported", zap.String("view", view), zap.String("format", format), zap.Int("rows", len(dataset.Rows)))
	return report, nil
}

func (s *ExportService) buildFilename(view, format string) string {
	return fmt.Sprintf("capacity_%s_%s.%s", view, s.now().UTC().Format("20060102_150405"), format)
}

func (s *ExportService) buildDataset(ctx context.Context, view string) (export.Dataset, string, error) {
	switch view {
	case ReportViewTrainers:
		return s.buildTrainerDataset(ctx)
	case ReportViewRooms:
		return s.buildRoomDataset(ctx)
	case ReportViewMonthly:
		return s.buildMonthlyDataset(ctx)
	default:
		return export.Dataset{}, "", appErrors.Clone(appErrors.ErrValidation, "view must be trainers, rooms or monthly")
	}
}

func (s *ExportService) buildTrainerDataset(ctx context.Context) (export.Dataset, string, error) {
	items, err := s.workload.TrainerWorkload(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"Formateur":        item.Name,
			"Heures / semaine": formatHours(item.CurrentHours),
			"Maximum":          strconv.Itoa(item.MaxHours),
			"Occupation (%)":   strconv.Itoa(item.OccupationRate),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Formateur", "Heures / semaine", "Maximum", "Occupation (%)"},
		Rows:    rows,
		Numeric: map[string]bool{"Heures / semaine": true, "Maximum": true, "Occupation (%)": true},
	}
	return dataset, "Charge des formateurs", nil
}

func (s *ExportService) buildRoomDataset(ctx context.Context) (export.Dataset, string, error) {
	items, err := s.workload.RoomOccupancy(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]string{
			"Salle":           item.Name,
			"Heures occupées": formatHours(item.OccupiedHours),
			"Disponibles":     strconv.Itoa(item.AvailableHours),
			"Occupation (%)":  strconv.Itoa(item.OccupationRate),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Salle", "Heures occupées", "Disponibles", "Occupation (%)"},
		Rows:    rows,
		Numeric: map[string]bool{"Heures occupées": true, "Disponibles": true, "Occupation (%)": true},
	}
	return dataset, "Occupation des salles", nil
}

func (s *ExportService) buildMonthlyDataset(ctx context.Context) (export.Dataset, string, error) {
	months, err := s.planner.MonthlyPlanning(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(months))
	for _, m := range months {
		conflicts := make([]string, 0, len(m.Conflicts))
		for _, c := range m.Conflicts {
			conflicts = append(conflicts, c.Description)
		}
		rows = append(rows, map[string]string{
			"Mois":                m.Month,
			"Groupes":             strconv.Itoa(m.TotalGroups),
			"Heures formateurs":   formatHours(m.TotalTrainerHours),
			"Capacité formateurs": formatHours(m.TrainerCapacity),
			"Heures salles":       formatHours(m.TotalRoomHours),
			"Capacité salles":     formatHours(m.RoomCapacity),
			"Conflits":            strings.Join(conflicts, " | "),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Mois", "Groupes", "Heures formateurs", "Capacité formateurs", "Heures salles", "Capacité salles", "Conflits"},
		Rows:    rows,
		Numeric: map[string]bool{"Groupes": true, "Heures formateurs": true, "Capacité formateurs": true, "Heures salles": true, "Capacité salles": true},
	}
	return dataset, "Planification mensuelle", nil
}
