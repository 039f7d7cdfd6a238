package logger

import (
	"github.com/sirupsen/logrus"
)

// DeliveryLogger records what left the process: reports, tracking entries and fallbacks.
type DeliveryLogger struct {
	*logrus.Entry
}

// NewDeliveryLogger creates a new delivery logger.
func NewDeliveryLogger(baseLogger *logrus.Logger) *DeliveryLogger {
	return &DeliveryLogger{
		Entry: baseLogger.WithField("component", "delivery"),
	}
}

// LogReportSent logs a delivered report.
func (dl *DeliveryLogger) LogReportSent(channel string, parts, length int) {
	dl.WithFields(logrus.Fields{
		"channel": channel,
		"parts":   parts,
		"length":  length,
	}).Info("Report delivered")
}

// LogReportFailed logs a delivery failure.
func (dl *DeliveryLogger) LogReportFailed(channel string, err error) {
	dl.WithField("channel", channel).WithError(err).Error("Report delivery failed")
}

// LogTrackingWritten logs a tracking entry persisted to disk.
func (dl *DeliveryLogger) LogTrackingWritten(path, day string, locks, hotPicks, sleepers int) {
	dl.WithFields(logrus.Fields{
		"path":      path,
		"day":       day,
		"locks":     locks,
		"hot_picks": hotPicks,
		"sleepers":  sleepers,
	}).Info("Tracking entry written")
}

// LogFallbackUsed logs a collaborator value replaced by a deterministic fallback.
func (dl *DeliveryLogger) LogFallbackUsed(source, key, reason string) {
	dl.WithFields(logrus.Fields{
		"source": source,
		"key":    key,
		"reason": reason,
	}).Warn("Using deterministic fallback")
}
