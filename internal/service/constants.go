package service

const (
	// History loaded per report; covers the full cut plus a margin
	HistoryDays = 180

	// Rolling windows shown in the report
	AcuteDays   = 7
	ChronicDays = 28

	// Weight chart span
	TrendDays = 90

	// Rate evaluations kept for plateau detection
	RateLogSize = 8
)
