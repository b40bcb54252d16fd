package domain

import "time"

// SyncResult summarizes one synchronization run.
type SyncResult struct {
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	ReferenceCurrency string    `json:"referenceCurrency"`
	TablesCreated     int       `json:"tablesCreated"`
	RatesCreated      int       `json:"ratesCreated"`
	FinishedAt        time.Time `json:"finishedAt"`
}
