package storage

import (
	"context"
	"testing"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/stretchr/testify/require"
)

func TestReportKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	require.Equal(t, "reports/skillboard-report-20240309-140507.pdf", ReportKey(now))
}

func TestNewReportStore_RequiresEndpoint(t *testing.T) {
	_, err := NewReportStore(context.Background(), config.MinIOConfig{Bucket: "b"})
	require.Error(t, err)
}

func TestArchiveLog_NoopWithoutCollection(t *testing.T) {
	ctx := context.Background()
	rec := &ArchivedReport{Key: ReportKey(time.Now()), GeneratedAt: time.Now(), Users: 3, Size: 1024}

	var nilLog *ArchiveLog
	require.NoError(t, nilLog.Save(ctx, rec))

	log := NewArchiveLog(nil)
	require.NoError(t, log.Save(ctx, rec))
	got, err := log.Load(ctx, rec.Key)
	require.NoError(t, err)
	require.Nil(t, got)
	recent, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, recent)
}
