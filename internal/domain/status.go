package domain

import "slices"

// StatusCode is the flight status an oracle reports.
type StatusCode uint8

const (
	StatusUnknown       StatusCode = 0
	StatusOnTime        StatusCode = 10
	StatusLateAirline   StatusCode = 20
	StatusLateWeather   StatusCode = 30
	StatusLateTechnical StatusCode = 40
	StatusLateOther     StatusCode = 50
)

// StatusCodes lists every code an oracle may report.
var StatusCodes = []StatusCode{
	StatusUnknown,
	StatusOnTime,
	StatusLateAirline,
	StatusLateWeather,
	StatusLateTechnical,
	StatusLateOther,
}

func ParseStatusCode(code int) (StatusCode, error) {
	if code < 0 || code > 255 || !slices.Contains(StatusCodes, StatusCode(code)) {
		return 0, NewInvalidStatusCodeError(code)
	}
	return StatusCode(code), nil
}

func (c StatusCode) Valid() bool {
	return slices.Contains(StatusCodes, c)
}

func (c StatusCode) String() string {
	switch c {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusOnTime:
		return "ON_TIME"
	case StatusLateAirline:
		return "LATE_AIRLINE"
	case StatusLateWeather:
		return "LATE_WEATHER"
	case StatusLateTechnical:
		return "LATE_TECHNICAL"
	case StatusLateOther:
		return "LATE_OTHER"
	default:
		return "INVALID"
	}
}
