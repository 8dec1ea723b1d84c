// Command report renders the skills report to a PDF file and optionally
// archives it in MinIO.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/MohamedX1935/SkillBoard/internal/database"
	"github.com/MohamedX1935/SkillBoard/internal/report"
	"github.com/MohamedX1935/SkillBoard/internal/storage"
	"github.com/MohamedX1935/SkillBoard/internal/users"
	"github.com/MohamedX1935/SkillBoard/pkg/logger"
	"github.com/spf13/pflag"
)

func main() {
	out := pflag.StringP("out", "o", report.Filename, "output file")
	upload := pflag.Bool("upload", false, "upload the report to MinIO")
	expires := pflag.Duration("expires", 24*time.Hour, "validity of the presigned download URL")
	list := pflag.Bool("list", false, "list recently archived reports and exit")
	show := pflag.String("show", "", "print a fresh download URL for an archived report key and exit")
	pflag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.SetFormat(os.Getenv("LOG_FORMAT"))

	opts := options{out: *out, upload: *upload, list: *list, show: *show, expires: *expires}
	if err := run(opts); err != nil {
		logger.Fatalf("report: %v", err)
	}
}

type options struct {
	out     string
	upload  bool
	list    bool
	show    string
	expires time.Duration
}

func run(o options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoDB, 1)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDB.Database)
	archive := storage.NewArchiveLog(db.Collection("reports"))
	if o.show != "" {
		return showArchived(ctx, cfg.MinIO, archive, o.show, o.expires)
	}
	if o.list {
		recent, err := archive.Recent(ctx, 20)
		if err != nil {
			return err
		}
		for _, r := range recent {
			fmt.Printf("%s\t%s\t%d users\t%d bytes\n", r.GeneratedAt.Format(time.RFC3339), r.Key, r.Users, r.Size)
		}
		return nil
	}

	svc := users.NewService(users.NewMongoUserRepository(db.Collection("users")))
	all, err := svc.List(ctx, users.Filter{})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	now := time.Now()
	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, all, now); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := os.WriteFile(o.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	logger.Infof("report written to %s (%d users, %d bytes)", o.out, len(all), buf.Len())

	if !o.upload {
		return nil
	}
	if cfg.MinIO.Endpoint == "" {
		return fmt.Errorf("--upload requires MINIO_ENDPOINT")
	}
	store, err := storage.NewReportStore(ctx, cfg.MinIO)
	if err != nil {
		return err
	}
	key := storage.ReportKey(now)
	if err := store.Upload(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		return err
	}
	rec := &storage.ArchivedReport{Key: key, GeneratedAt: now.UTC(), Users: len(all), Size: int64(buf.Len())}
	if err := archive.Save(ctx, rec); err != nil {
		logger.Warnf("report uploaded but not recorded: %v", err)
	}
	u, err := store.PresignedURL(ctx, key, o.expires)
	if err != nil {
		return err
	}
	logger.WithFields(logger.Fields{"key": key}).Info("report uploaded")
	fmt.Println(u)
	return nil
}

func showArchived(ctx context.Context, cfg config.MinIOConfig, archive *storage.ArchiveLog, key string, expires time.Duration) error {
	rec, err := archive.Load(ctx, key)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no archived report with key %q", key)
	}
	fmt.Printf("%s\t%s\t%d users\t%d bytes\n", rec.GeneratedAt.Format(time.RFC3339), rec.Key, rec.Users, rec.Size)
	if cfg.Endpoint == "" {
		return nil
	}
	store, err := storage.NewReportStore(ctx, cfg)
	if err != nil {
		return err
	}
	u, err := store.PresignedURL(ctx, rec.Key, expires)
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}
