package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore is a custom Zap Core that tees entries into the Mongo writer
type DBCore struct {
	zapcore.Core
	writer *DBLogWriter
}

// NewDBCore wraps an existing core (like the console logger) and adds DB logging
func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter) zapcore.Core {
	return &DBCore{
		Core:   baseCore,
		writer: writer,
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	var actorID, entity string

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
		if f.Key == "actor_id" {
			actorID = f.String
		}
		if f.Key == "entity" {
			entity = f.String
		}
	}

	c.writer.AddLog(LogEntry{
		Level:   entry.Level,
		Message: entry.Message,
		ActorID: actorID,
		Entity:  entity,
		Caller:  entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
