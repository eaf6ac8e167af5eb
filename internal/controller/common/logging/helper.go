package logginghelper

import (
	"github.com/Egor213/LogiStat/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogUploadReceived(source, filename string, size int64) {
	log.WithFields(log.Fields{
		"source":   source,
		"filename": filename,
		"size":     size,
	}).Info("Received log file")
}

func LogUploadProcessed(source string, res domain.UploadResult) {
	log.WithFields(log.Fields{
		"source":       source,
		"filename":     res.Filename,
		"object_key":   res.ObjectKey,
		"total_lines":  res.Stats.TotalLines,
		"error_count":  res.Stats.ErrorCount,
		"warn_count":   res.Stats.WarnCount,
		"debug_count":  res.Stats.DebugCount,
		"info_count":   res.Stats.InfoCount,
		"unique_users": res.Stats.UniqueUsers(),
	}).Info("Log file processed")
}

func LogUploadFailed(source, filename string, err error) {
	log.WithFields(log.Fields{
		"source":   source,
		"filename": filename,
		"error":    err,
	}).Error("Failed to process log file")
}
