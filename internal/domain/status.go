package domain

// Status is a three-level severity classification for a metric reading.
type Status string

const (
	StatusNormal  Status = "Normal"
	StatusWarning Status = "Warning"
	StatusDanger  Status = "Danger"
)

// rank orders statuses by severity so the overall status is a well-defined max.
func (s Status) rank() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusDanger:
		return 2
	default:
		return 0
	}
}

// MoreSevere returns the more severe of s and other.
func (s Status) MoreSevere(other Status) Status {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// Classify derives per-metric statuses and the overall status from raw readings.
// Thresholds: sea level <120 Normal, 120-180 Warning, >180 Danger;
// wind speed <10 Normal, 10-18 Warning, >18 Danger. Both threshold bands are
// inclusive on their edges. The overall status is the more severe of the two.
func Classify(seaLevel, windSpeed float64) (seaStatus, windStatus, overall Status) {
	switch {
	case seaLevel < 120:
		seaStatus = StatusNormal
	case seaLevel <= 180:
		seaStatus = StatusWarning
	default:
		seaStatus = StatusDanger
	}

	switch {
	case windSpeed < 10:
		windStatus = StatusNormal
	case windSpeed <= 18:
		windStatus = StatusWarning
	default:
		windStatus = StatusDanger
	}

	return seaStatus, windStatus, seaStatus.MoreSevere(windStatus)
}
