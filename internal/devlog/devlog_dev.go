//go:build dev

package devlog

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
)

const defaultSocket = "/tmp/mcplogd.sock"
const socketEnv = "REVSTAMP_LOG_SOCKET"
const appName = "revstamp"

const (
	levelDebug = "debug"
	levelWarn  = "warn"
)

type entry struct {
	App       string         `json:"app"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func Debug(message string, metadata map[string]any) {
	send(levelDebug, message, metadata)
}

func Warn(message string, metadata map[string]any) {
	send(levelWarn, message, metadata)
}

func socketPath() string {
	if p := os.Getenv(socketEnv); p != "" {
		return p
	}
	return defaultSocket
}

func send(level, message string, metadata map[string]any) {
	conn, err := net.DialTimeout("unix", socketPath(), 100*time.Millisecond)
	if err != nil {
		return
	}
	defer conn.Close()

	data, err := json.Marshal(entry{
		App:       appName,
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Metadata:  metadata,
	})
	if err != nil {
		return
	}
	fmt.Fprintf(conn, "%s\n", data)
}
