package service

import (
	"context"
	"time"

	"xeriscape-be/internal/dto"
	"xeriscape-be/internal/pkg/logger"
	"xeriscape-be/internal/pkg/serverutils"
	"xeriscape-be/pkg/report"

	"github.com/google/uuid"
)

type IReportService interface {
	// Export renders the PDF and returns it with a download file name.
	Export(ctx context.Context, req *dto.ReportRequest) ([]byte, string, error)
}

type reportService struct {
	builder *report.Builder
	logger  logger.ILogger
}

func NewReportService(builder *report.Builder, log logger.ILogger) IReportService {
	return &reportService{builder: builder, logger: log}
}

func (s *reportService) Export(ctx context.Context, req *dto.ReportRequest) ([]byte, string, error) {
	if len(req.Designs) == 0 {
		return nil, "", serverutils.BadRequest("Missing designs")
	}

	designs := make([]report.Design, 0, len(req.Designs))
	for _, d := range req.Designs {
		designs = append(designs, report.Design{URL: d.URL, PromptUsed: d.PromptUsed})
	}

	pdf, err := s.builder.Build(ctx, report.Report{
		Title:       req.Title,
		Address:     req.Address,
		Designs:     designs,
		Breakdown:   req.Breakdown,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("REPORT", "Failed to build report", map[string]interface{}{"error": err.Error()})
		return nil, "", serverutils.Internal("Failed to build report", err)
	}

	name := "landscape-report-" + uuid.NewString()[:8] + ".pdf"
	s.logger.Info("REPORT", "Report exported", map[string]interface{}{"file": name, "designs": len(designs), "bytes": len(pdf)})
	return pdf, name, nil
}
