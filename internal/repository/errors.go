package repository

import "errors"

// ErrUnsupportedDriver is returned by Open for driver names other than
// DriverPostgres and DriverSQLite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")
