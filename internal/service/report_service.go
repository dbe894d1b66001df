package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"tradeflow/internal/csvexport"
	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

// ArchivedReport locates a comparison CSV uploaded to object storage.
type ArchivedReport struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// ReportConfig holds the archive key prefix and download link lifetime.
type ReportConfig struct {
	Prefix        string
	PresignExpiry time.Duration
}

// ReportService renders comparisons as CSV and archives them.
type ReportService interface {
	WriteCSV(w io.Writer, result *domain.ComparisonResult) error
	Archive(ctx context.Context, result *domain.ComparisonResult) (*ArchivedReport, error)
}

type reportService struct {
	archive port.ReportArchive
	cfg     ReportConfig
}

// NewReportService creates a ReportService. archive may be nil, which disables Archive.
func NewReportService(archive port.ReportArchive, cfg ReportConfig) ReportService {
	return &reportService{archive: archive, cfg: cfg}
}

func (s *reportService) WriteCSV(w io.Writer, result *domain.ComparisonResult) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteComparison(result); err != nil {
		return fmt.Errorf("writing CSV rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Archive uploads the CSV under prefix/YYYY-MM-DD/<comparison id>.csv and returns
// a presigned download URL.
func (s *reportService) Archive(ctx context.Context, result *domain.ComparisonResult) (*ArchivedReport, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveDisabled
	}

	var buf bytes.Buffer
	if err := s.WriteCSV(&buf, result); err != nil {
		return nil, err
	}

	destinations := make([]string, len(result.Destinations))
	for i, d := range result.Destinations {
		destinations[i] = string(d)
	}

	key := path.Join(s.cfg.Prefix, result.GeneratedAt.Format("2006-01-02"), result.ID.String()+".csv")
	filename := csvexport.BuildFilename("usmca_comparison", result.GeneratedAt)
	stored, err := s.archive.Put(ctx, port.ArchiveObject{
		Key:                key,
		Body:               &buf,
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s"`, filename),
		Metadata: map[string]string{
			"comparison-id": result.ID.String(),
			"destinations":  strings.Join(destinations, ","),
			"data-quality":  string(result.DataQuality),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("reportService.Archive put: %w", err)
	}

	url, err := s.archive.PresignGet(ctx, stored.Key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("reportService.Archive presign: %w", err)
	}

	zap.L().Info("comparison report archived",
		zap.String("comparison_id", result.ID.String()),
		zap.String("key", stored.Key),
		zap.String("etag", stored.ETag),
	)
	return &ArchivedReport{Key: stored.Key, URL: url, ExpiresIn: int64(s.cfg.PresignExpiry / time.Second)}, nil
}
