package model

// Work-type codes. Codes 10–29 and 100 denote worked (billable) time and
// count toward overtime; the leave range does not require a project.
const (
	WorkTypeRegular  = 10
	WorkTypeCommute  = 11
	WorkTypeTraining = 20
	WorkTypeStandby  = 100

	WorkTypeVacation = 30
	WorkTypeSick     = 31
	WorkTypeLeave    = 32
	WorkTypeHoliday  = 33
)

// IsWorkedTime reports whether a work-type code counts as worked time
// for overtime purposes.
func IsWorkedTime(code int) bool {
	return (code >= 10 && code <= 29) || code == 100
}

// IsLeaveType reports whether a work-type code is a day-off/leave category,
// for which a project reference is not required.
func IsLeaveType(code int) bool {
	return code >= 30 && code <= 39
}
