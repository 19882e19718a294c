package postgres

import (
	"time"

	"go.uber.org/zap"
)

// eventReceiver reports dbr events through zap.
type eventReceiver struct {
	logger *zap.Logger
}

func newEventReceiver(logger *zap.Logger) *eventReceiver {
	return &eventReceiver{logger: logger.Named("dbr")}
}

func (r *eventReceiver) Event(eventName string) {
	r.logger.Debug(eventName)
}

func (r *eventReceiver) EventKv(eventName string, kvs map[string]string) {
	r.logger.Debug(eventName, kvFields(kvs)...)
}

// Store methods log their own failures with context, so errors seen here
// only go to debug.
func (r *eventReceiver) EventErr(eventName string, err error) error {
	r.logger.Debug(eventName, zap.Error(err))
	return err
}

func (r *eventReceiver) EventErrKv(eventName string, err error, kvs map[string]string) error {
	r.logger.Debug(eventName, append(kvFields(kvs), zap.Error(err))...)
	return err
}

func (r *eventReceiver) Timing(eventName string, nanoseconds int64) {
	r.logger.Debug(eventName, zap.Duration("duration", time.Duration(nanoseconds)))
}

func (r *eventReceiver) TimingKv(eventName string, nanoseconds int64, kvs map[string]string) {
	r.logger.Debug(eventName, append(kvFields(kvs), zap.Duration("duration", time.Duration(nanoseconds)))...)
}

func kvFields(kvs map[string]string) []zap.Field {
	fields := make([]zap.Field, 0, len(kvs)+1)
	for k, v := range kvs {
		fields = append(fields, zap.String(k, v))
	}
	return fields
}
