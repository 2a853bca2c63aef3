package logger

import (
	"context"
	"fmt"
	"time"

	"go-backoffice/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level   zapcore.Level
	Message string
	ActorID string
	Entity  string
	Caller  string
}

type logDocument struct {
	Message   string    `bson:"message"`
	Level     string    `bson:"level"`
	ActorID   string    `bson:"actor_id,omitempty"`
	Entity    string    `bson:"entity,omitempty"`
	Caller    string    `bson:"caller,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// DBLogWriter drains log entries to the "logs" collection off the request path
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
}

func NewDBLogWriter(mongodb *database.MongodbDB) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop rather than block the API
		fmt.Println("DB log channel full, dropping:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		doc := logDocument{
			Message:   entry.Message,
			Level:     entry.Level.String(),
			ActorID:   entry.ActorID,
			Entity:    entry.Entity,
			Caller:    entry.Caller,
			CreatedAt: time.Now().UTC(),
		}

		// Insert errors are ignored to keep the app running
		w.db.Collection("logs").InsertOne(context.Background(), doc)
	}
}
