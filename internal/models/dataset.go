package models

// Dataset bundles the three generated record streams handed to the metric
// engine and the presentation layer. RunID identifies one generation run;
// Seed makes the run reproducible.
type Dataset struct {
	RunID    string    `json:"run_id"`
	Seed     uint64    `json:"seed"`
	Users    []User    `json:"users"`
	Products []Product `json:"products"`
	Events   []Event   `json:"events"`
}

// Empty reports whether the dataset holds no events. Downstream metrics
// degrade to explicitly-empty results on an empty dataset instead of failing.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Events) == 0
}
