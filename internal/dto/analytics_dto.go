package dto

type OverviewDTO struct {
	UsersByRole       map[string]int64 `json:"usersByRole"`
	TotalUsers        int64            `json:"totalUsers"`
	Tests             int64            `json:"tests"`
	PublishedTests    int64            `json:"publishedTests"`
	Attempts          int64            `json:"attempts"`
	CompletedAttempts int64            `json:"completedAttempts"`
	AverageScore      float64          `json:"averageScore"`
	PassRate          float64          `json:"passRate"`
	Notes             int64            `json:"notes"`
	BareActs          int64            `json:"bareActs"`
}

type TestStatDTO struct {
	TestID            uint    `json:"testId"`
	Title             string  `json:"title"`
	IsPublished       bool    `json:"isPublished"`
	Attempts          int64   `json:"attempts"`
	CompletedAttempts int64   `json:"completedAttempts"`
	AverageScore      float64 `json:"averageScore"`
	PassRate          float64 `json:"passRate"`
}
