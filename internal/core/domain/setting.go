package domain

// Well-known setting keys.
const (
	SettingGlobalUnitPrice = "global_unit_price"
)

// Setting is one key-value configuration row. Values are stored as text and
// parsed by the consuming service.
type Setting struct {
	Key   string `json:"key"` // Primary Key
	Value string `json:"value"`
	AuditFields
}
