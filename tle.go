package orbitalguard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	kitlog "github.com/go-kit/kit/log"
)

// TLE line layout, zero-indexed columns per the NORAD fixed-width format.
// Line 1 carries the epoch, line 2 the orbital elements proper.
const tleLineLen = 69

// ParseTLE converts one two-line element set into Elements. The record must
// already be split into its name and two data lines; anything malformed is
// rejected here so the propagator only ever sees valid elements.
func ParseTLE(name, line1, line2 string) (Elements, error) {
	var el Elements
	if len(line1) < tleLineLen || len(line2) < tleLineLen {
		return el, fmt.Errorf("%w: TLE lines shorter than %d columns", ErrInvalidInput, tleLineLen)
	}
	if line1[0] != '1' || line2[0] != '2' {
		return el, fmt.Errorf("%w: TLE line numbers are not 1 and 2", ErrInvalidInput)
	}

	// Line 1 columns 19-32: epoch as YYDDD.DDDDDDDD.
	epochStr := strings.TrimSpace(line1[18:32])
	if len(epochStr) < 5 {
		return el, fmt.Errorf("%w: epoch field %q too short", ErrInvalidInput, epochStr)
	}
	yy, err := strconv.Atoi(epochStr[:2])
	if err != nil {
		return el, fmt.Errorf("%w: epoch year %q: %s", ErrInvalidInput, epochStr[:2], err)
	}
	doy, err := strconv.ParseFloat(epochStr[2:], 64)
	if err != nil {
		return el, fmt.Errorf("%w: epoch day %q: %s", ErrInvalidInput, epochStr[2:], err)
	}

	// Line 2 fixed fields. The eccentricity column carries an implied
	// leading "0.".
	fields := []struct {
		lo, hi int
		dst    *float64
		name   string
	}{
		{8, 16, &el.Inclination, "inclination"},
		{17, 25, &el.RAAN, "RAAN"},
		{34, 42, &el.ArgPerigee, "argument of perigee"},
		{43, 51, &el.MeanAnomaly, "mean anomaly"},
		{52, 63, &el.MeanMotion, "mean motion"},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(line2[f.lo:f.hi]), 64)
		if err != nil {
			return Elements{}, fmt.Errorf("%w: %s %q: %s", ErrInvalidInput, f.name, line2[f.lo:f.hi], err)
		}
		*f.dst = v
	}
	ecc, err := strconv.ParseFloat("0."+strings.TrimSpace(line2[26:33]), 64)
	if err != nil {
		return Elements{}, fmt.Errorf("%w: eccentricity %q: %s", ErrInvalidInput, line2[26:33], err)
	}

	el.Name = boundID(strings.TrimSpace(name))
	el.Epoch = tleEpochToJD(yy, doy)
	el.Eccentricity = ecc
	el.Inclination = Deg2rad(el.Inclination)
	el.RAAN = Deg2rad(el.RAAN)
	el.ArgPerigee = Deg2rad(el.ArgPerigee)
	el.MeanAnomaly = Deg2rad(el.MeanAnomaly)

	if err := el.Validate(); err != nil {
		return Elements{}, err
	}
	return el, nil
}

// ParseTLESet reads 3-line NORAD records from r and returns the parsed
// elements. Malformed records are skipped with a warning log, so one bad
// entry never aborts a catalog load.
func ParseTLESet(r io.Reader, logger kitlog.Logger) ([]Elements, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	var els []Elements
	for i := 0; i+2 < len(lines); {
		name, line1, line2 := lines[i], lines[i+1], lines[i+2]
		if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
			// Try to find the next valid triplet.
			logger.Log("level", "warning", "subsys", "tle", "skipping", name, "line", i)
			i++
			continue
		}
		el, err := ParseTLE(name, line1, line2)
		if err != nil {
			logger.Log("level", "warning", "subsys", "tle", "skipping", name, "err", err)
			i += 3
			continue
		}
		els = append(els, el)
		i += 3
	}
	return els, nil
}
