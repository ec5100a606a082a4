package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Build log defaults for Maven style logs.
const (
	DefaultBuildLogMarker     = "[INFO] Total time:"
	DefaultBuildLogOccurrence = 2 // The first summary line belongs to the compile phase
)

// ParseBuildLog scans a build log for the marker and returns the text that follows it
// on the given occurrence. A missing file or an occurrence that is never reached
// returns ("", false, nil).
func ParseBuildLog(path, marker string, occurrence int) (string, bool, error) {
	if marker == "" {
		marker = DefaultBuildLogMarker
	}
	occurrence = max(occurrence, 1)

	f, err := openArtifact(path)
	if err != nil {
		if errors.Is(err, ErrArtifactNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	seen := 0
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		seen++
		if seen != occurrence {
			continue
		}
		value := strings.TrimSpace(line[idx+len(marker):])
		return value, value != "", nil
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("failed to read build log %s: %w", path, err)
	}
	return "", false, nil
}

// ParseBuildSeconds converts a build duration such as "3.410 s", "1.5 min" or "01:05 min"
// into seconds. Clock values are read as minutes:seconds for "min" and hours:minutes for "h".
func ParseBuildSeconds(value string) (float64, error) {
	v := strings.TrimSpace(value)
	num, unit := v, "s"
	if i := strings.LastIndexByte(v, ' '); i >= 0 {
		num, unit = strings.TrimSpace(v[:i]), v[i+1:]
	} else if strings.HasSuffix(v, "s") {
		num = strings.TrimSuffix(v, "s")
	}

	var scale float64
	switch unit {
	case "s":
		scale = 1
	case "min":
		scale = 60
	case "h":
		scale = 3600
	default:
		return 0, fmt.Errorf("unsupported build time unit %q in %q", unit, value)
	}

	if major, minor, ok := strings.Cut(num, ":"); ok {
		hi, err := strconv.ParseFloat(major, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid build time %q: %w", value, err)
		}
		lo, err := strconv.ParseFloat(minor, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid build time %q: %w", value, err)
		}
		return hi*scale + lo*scale/60, nil
	}

	secs, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid build time %q: %w", value, err)
	}
	return secs * scale, nil
}
