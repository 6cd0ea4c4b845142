package model

// DatabaseType selects where the backend keeps its SQLite file.
type DatabaseType string

const (
	DatabaseLocal   DatabaseType = "local"
	DatabaseNetwork DatabaseType = "network"
)

// DatabaseConfig is the database section of the backend settings file.
type DatabaseConfig struct {
	Type DatabaseType `json:"type" validate:"required,oneof=local network"`
	Path string       `json:"path" validate:"notblank"`
}

// Settings is the body of GET/POST /api/settings/.
type Settings struct {
	Database DatabaseConfig `json:"database" validate:"required"`
}

// SettingsUpdate is returned after saving settings. Message tells the user a
// restart is required; nothing here enforces it.
type SettingsUpdate struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Settings Settings `json:"settings"`
}

// CurrentDatabase describes the database the running backend actually uses.
type CurrentDatabase struct {
	Type   DatabaseType `json:"type"`
	Path   string       `json:"path"`
	Exists bool         `json:"exists"`
}

// BrowseResult carries the path picked in the desktop file dialog. Path is
// empty when the dialog was cancelled.
type BrowseResult struct {
	Path string `json:"path"`
}

// Statistics aggregates the records store.
type Statistics struct {
	TotalFiles        int     `json:"total_files"`
	TotalRecords      int     `json:"total_records"`
	AvgRecordsPerFile float64 `json:"avg_records_per_file"`
}

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	Rank  string `json:"rank,omitempty"`
	Unit  string `json:"unit,omitempty"`
	Count int    `json:"count"`
}

// FirefighterStatistics aggregates the roster.
type FirefighterStatistics struct {
	TotalFirefighters int          `json:"total_firefighters"`
	ByUnit            []GroupCount `json:"by_unit"`
	ByRank            []GroupCount `json:"by_rank"`
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
}

// AppInfo is the body of GET /api.
type AppInfo struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// Environment is the body of GET /api/system/environment.
type Environment struct {
	IsDesktop bool `json:"is_desktop"`
}
