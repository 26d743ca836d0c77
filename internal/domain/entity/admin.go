package entity

// SystemStats is returned by GET /api/admin/stats/system.
type SystemStats struct {
	Uptime      float64   `json:"uptime"`
	TotalMemory float64   `json:"totalMemory"`
	FreeMemory  float64   `json:"freeMemory"`
	CPUUsage    []float64 `json:"cpuUsage"`
	Platform    string    `json:"platform"`
	Hostname    string    `json:"hostname"`
}

type AdminWallet struct {
	ID      string `json:"_id"`
	Address string `json:"address"`
	Balance any    `json:"balance,omitempty"`
	User    string `json:"user"`
}

type AdminHistoryEntry struct {
	ID         string  `json:"_id"`
	User       string  `json:"user"`
	TotalValue float64 `json:"totalValue"`
	CreatedAt  string  `json:"createdAt"`
}
