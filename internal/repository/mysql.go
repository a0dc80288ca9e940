package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// IsDuplicateKey reports whether err is a MySQL duplicate-entry error
// (1062).  The bookings table relies on this as the last line of
// defence for the one-active-booking-per-seat-and-screening rule: a
// concurrent insert that slips past the row-lock check still hits the
// unique index and surfaces here.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
