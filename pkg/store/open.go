package store

import "strings"

// Drivers accepted by OpenKV.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// OpenKV builds the KV backend named by driver. For "file" the dsn is the
// base directory; SQL drivers receive it as their connection string.
func OpenKV(driver, dsn string) (KV, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case DriverMemory, "":
		return NewMemoryKV(), nil
	case DriverFile:
		kv, err := NewFileKV(dsn)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		kv, err := Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		return kv, nil
	}
}
