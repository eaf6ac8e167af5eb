package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/Egor213/LogiStat/internal/broker"
	"github.com/Egor213/LogiStat/internal/domain"
	"github.com/Egor213/LogiStat/internal/metrics"
	"github.com/Egor213/LogiStat/internal/parser"
	"github.com/Egor213/LogiStat/internal/repo"
	"github.com/Egor213/LogiStat/internal/repo/repotypes"
	"github.com/Egor213/LogiStat/internal/storage"
	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultKeyPrefix  = "results/"
	defaultPresignTTL = 60 * time.Second

	statusOK     = "ok"
	statusFailed = "failed"
)

type StatsService struct {
	uploadRepo     repo.Upload
	txManager      TxManager
	storage        storage.ObjectStorage
	counters       *metrics.Counters
	brokerProducer broker.Producer
	opts           StatsOptions
}

// NewStatsService accepts a nil producer, in which case no events are published.
func NewStatsService(
	ur repo.Upload,
	tm TxManager,
	st storage.ObjectStorage,
	cnt *metrics.Counters,
	p broker.Producer,
	opts StatsOptions,
) *StatsService {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultKeyPrefix
	}
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = defaultPresignTTL
	}
	return &StatsService{
		uploadRepo:     ur,
		txManager:      tm,
		storage:        st,
		counters:       cnt,
		brokerProducer: p,
		opts:           opts,
	}
}

// ArtifactName is the stored name for an uploaded file: its base name with
// the extension replaced by .json.
func ArtifactName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base)) + ".json"
}

func (s *StatsService) Parse(text string) *domain.Stats {
	stats := parser.Parse(text)

	s.counters.LinesParsed.Add(float64(stats.ErrorCount), domain.LevelError.String())
	s.counters.LinesParsed.Add(float64(stats.WarnCount), domain.LevelWarn.String())
	s.counters.LinesParsed.Add(float64(stats.DebugCount), domain.LevelDebug.String())
	s.counters.LinesParsed.Add(float64(stats.InfoCount), domain.LevelInfo.String())
	s.counters.LinesParsed.Add(float64(stats.Unclassified()), domain.LevelNone.String())

	return stats
}

// ProcessUpload parses the staged file, stores the statistics artifact and
// records the upload. The staging copy is removed whatever the outcome.
func (s *StatsService) ProcessUpload(ctx context.Context, in domain.UploadInput) (domain.UploadResult, error) {
	defer removeFile(in.StagingPath)

	result, err := s.processUpload(ctx, in)
	if err != nil {
		s.counters.UploadsProcessed.Inc(statusFailed)
		return domain.UploadResult{}, err
	}
	s.counters.UploadsProcessed.Inc(statusOK)
	return result, nil
}

func (s *StatsService) processUpload(ctx context.Context, in domain.UploadInput) (domain.UploadResult, error) {
	if in.Filename == "" {
		return domain.UploadResult{}, errorsUtils.WrapPathErr(ErrEmptyFilename)
	}

	raw, err := os.ReadFile(in.StagingPath)
	if err != nil {
		return domain.UploadResult{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotReadUpload, err))
	}

	stats := s.Parse(string(raw))
	jsonFile := ArtifactName(in.Filename)
	key := s.opts.KeyPrefix + jsonFile

	body, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return domain.UploadResult{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotStoreResult, err))
	}

	localPath, err := s.writeLocal(jsonFile, body)
	if err != nil {
		return domain.UploadResult{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotStoreResult, err))
	}

	if err := s.storage.Put(ctx, key, body, storage.ContentTypeJSON); err != nil {
		log.WithField("path", localPath).Warn("Statistics kept locally after storage failure")
		return domain.UploadResult{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotStoreResult, err))
	}
	removeFile(localPath)

	upload := domain.NewUploadFromStats(in.Filename, key, stats)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		id, err := s.uploadRepo.SaveUpload(ctx, upload)
		if err != nil {
			return err
		}
		upload.Id = id
		return s.uploadRepo.SaveUserCounts(ctx, id, stats.Users)
	})
	if err != nil {
		return domain.UploadResult{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotSaveUpload, err))
	}

	s.publish(ctx, upload)

	return domain.UploadResult{
		Stats:     stats,
		Filename:  in.Filename,
		JSONFile:  jsonFile,
		ObjectKey: key,
	}, nil
}

func (s *StatsService) ReadURL(ctx context.Context, filename string) (string, error) {
	if filename == "" {
		return "", errorsUtils.WrapPathErr(ErrEmptyFilename)
	}

	url, err := s.storage.ReadURL(ctx, s.opts.KeyPrefix+ArtifactName(filename), s.opts.PresignTTL)
	if err != nil {
		return "", errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotIssueURL, err))
	}
	return url, nil
}

func (s *StatsService) ListUploads(ctx context.Context, filter repotypes.UploadFilter) ([]domain.Upload, error) {
	uploads, err := s.uploadRepo.GetUploads(ctx, filter)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotListUploads, err))
	}
	return uploads, nil
}

// writeLocal keeps a copy of the artifact in the results dir until the
// remote write succeeds.
func (s *StatsService) writeLocal(jsonFile string, body []byte) (string, error) {
	if s.opts.ResultsDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(s.opts.ResultsDir, 0o755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(s.opts.ResultsDir, "*-"+jsonFile)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), f.Close()
}

// publish failures are logged only; the upload is already stored.
func (s *StatsService) publish(ctx context.Context, u *domain.Upload) {
	if s.brokerProducer == nil {
		return
	}

	event := domain.ParsedEvent{
		Filename:    u.Filename,
		ObjectKey:   u.ObjectKey,
		TotalLines:  u.TotalLines,
		ErrorCount:  u.ErrorCount,
		WarnCount:   u.WarnCount,
		DebugCount:  u.DebugCount,
		InfoCount:   u.InfoCount,
		UniqueUsers: u.UniqueUsers,
		ParsedAt:    time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to encode parsed event: %v", err)
		return
	}

	if err := s.brokerProducer.SendMessage(ctx, []byte(u.ObjectKey), value); err != nil {
		log.WithField("key", u.ObjectKey).Warnf("Parsed event is not published: %v", err)
	}
}

func removeFile(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		log.WithField("path", name).Warnf("Failed to remove file: %v", err)
	}
}
