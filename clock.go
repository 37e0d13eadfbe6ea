package orbitalguard

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	secondsPerDay = 86400.0
	minutesPerDay = 1440.0
	// unixEpochJD is the Julian date of 1970-01-01T00:00:00 UTC.
	unixEpochJD = 2440587.5
)

// TimeToJD returns the Julian date of the provided time.
func TimeToJD(dt time.Time) float64 {
	return julian.TimeToJD(dt.UTC())
}

// JDToTime returns the UTC time of the provided Julian date.
func JDToTime(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// UnixMsToJD converts milliseconds since the Unix epoch to a Julian date.
func UnixMsToJD(ms float64) float64 {
	return ms/(secondsPerDay*1e3) + unixEpochJD
}

// JDToUnixMs converts a Julian date to milliseconds since the Unix epoch.
func JDToUnixMs(jd float64) float64 {
	return (jd - unixEpochJD) * secondsPerDay * 1e3
}

// tleEpochToJD converts a TLE epoch (two digit year, fractional day of year)
// to a Julian date. Years 57-99 map to the 1900s, everything below to the
// 2000s, per the NORAD convention.
func tleEpochToJD(yy int, doy float64) float64 {
	year := yy + 2000
	if yy >= 57 {
		year = yy + 1900
	}
	jan1 := julian.CalendarGregorianToJD(year, 1, 1)
	return jan1 + doy - 1
}
