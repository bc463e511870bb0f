package models

// Setting maps the settings table (key-value, value stored as text).
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	AuditFields
}
