package middleware

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the request logging middleware
type LogConfig struct {
	Console     bool
	File        bool
	LogFilePath string
	SkipPaths   []string
}

// LogData is one logged request
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	URL       string        `json:"url"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	Error     string        `json:"error,omitempty"`
	UserID    interface{}   `json:"user_id,omitempty"`
	Username  string        `json:"username,omitempty"`
}

// LoggingMiddleware logs every request as a JSON line, to console and file.
func LoggingMiddleware(cfg LogConfig) fiber.Handler {
	if cfg.File {
		if err := os.MkdirAll("logs", 0755); err != nil {
			log.Printf("Error creating logs directory: %v\n", err)
		}
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		err := c.Next()

		var userID interface{}
		var username string
		if user, ok := c.Locals("user").(Models.User); ok {
			userID = user.Id
			username = user.Name
		}

		logData := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			URL:       c.OriginalURL(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
			UserID:    userID,
			Username:  username,
		}
		if err != nil {
			logData.Error = err.Error()
		}

		jsonData, _ := json.Marshal(logData)
		message := string(jsonData)

		if cfg.Console {
			log.Println(message)
		}
		if cfg.File {
			logToFile(cfg.LogFilePath, message)
		}

		return err
	}
}

func logToFile(filePath, message string) {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}
	defer file.Close()

	if _, err := file.WriteString(message + "\n"); err != nil {
		log.Printf("Error writing to log file: %v\n", err)
	}
}

// RequestLogger is the default request logging middleware.
func RequestLogger() fiber.Handler {
	return LoggingMiddleware(LogConfig{
		Console:     true,
		File:        true,
		LogFilePath: "logs/requests.log",
		SkipPaths:   []string{"/health"},
	})
}
