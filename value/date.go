package value

import "time"

// Date wraps a UTC time.Time. Invalid holds true for a date built
// from an unparsable string (e.g. new Date("not a date")), whose
// getters must all report NaN rather than panicking on a zero time.
type Date struct {
	*Object
	Time    time.Time
	Invalid bool
}

func NewDate(proto *Object, t time.Time) *Date {
	return &Date{Object: NewObjectWithClass(proto, "Date"), Time: t.UTC()}
}

func NewInvalidDate(proto *Object) *Date {
	return &Date{Object: NewObjectWithClass(proto, "Date"), Invalid: true}
}

func (d *Date) String() string {
	if d.Invalid {
		return "Invalid Date"
	}
	return d.Time.Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}

func (d *Date) Inspect() string { return d.String() }
