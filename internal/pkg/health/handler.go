package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	BuildTime   string    `json:"build_time"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// DefaultBuildInfo contains default build information
var DefaultBuildInfo = BuildInfo{
	Version:   "development",
	GitCommit: "unknown",
	BuildTime: "unknown",
	GoVersion: runtime.Version(),
}

// StatusReport is the live state exposed on /statusz while the alert
// console is running.
type StatusReport struct {
	SessionState  string    `json:"session_state"`
	BrokerState   string    `json:"broker_state"`
	PendingAlerts int       `json:"pending_alerts"`
	ServerTime    time.Time `json:"server_time"`
}

// StatusFunc produces the current StatusReport
type StatusFunc func() StatusReport

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName string) echo.HandlerFunc {
	// Try to get hostname for the response
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	buildInfo := DefaultBuildInfo
	buildInfo.ServiceName = serviceName

	// Use environment variables if available
	if version := os.Getenv("VERSION"); version != "" {
		buildInfo.Version = version
	}
	if gitCommit := os.Getenv("GIT_COMMIT"); gitCommit != "" {
		buildInfo.GitCommit = gitCommit
	}
	if buildTime := os.Getenv("BUILD_TIME"); buildTime != "" {
		buildInfo.BuildTime = buildTime
	}

	return func(c echo.Context) error {
		// Update dynamic information
		buildInfo.Hostname = hostname
		buildInfo.ServerTime = time.Now()

		return c.JSON(http.StatusOK, buildInfo)
	}
}

// NewStatusHandler creates the /statusz handler backed by the given
// status source
func NewStatusHandler(status StatusFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		report := status()
		report.ServerTime = time.Now()
		return c.JSON(http.StatusOK, report)
	}
}

// RegisterStatusEndpoints registers the local status endpoints served while
// the alert console is running
func RegisterStatusEndpoints(e *echo.Echo, serviceName string, status StatusFunc) {
	e.GET("/ping", NewPingHandler(serviceName))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/statusz", NewStatusHandler(status))
}
