package entity

import "time"

// Film is a theatrical run, not a single showing. One Session row is
// materialized per calendar day between DateStart and DateFinish.
type Film struct {
	Base
	Name        string    `db:"name"`
	Description string    `db:"description"`
	DateStart   time.Time `db:"date_start"`
	DateFinish  time.Time `db:"date_finish"`
}
