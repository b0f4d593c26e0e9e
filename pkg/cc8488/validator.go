// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "fmt"

// AnomalyType classifies plausibility problems in decoded readings.
// These are distinct from protocol errors: the frame was intact and the
// payload decoded, but the values are physically suspect.
type AnomalyType int

const (
	AnomalyHumidityRange AnomalyType = iota
	AnomalyWindDirRange
	AnomalyTemperatureRange
	AnomalyPressureRange
	AnomalyClockSkew
	AnomalyClockRejected
)

// ValidationError describes one anomalous value in a reading.
type ValidationError struct {
	Type    AnomalyType
	Message string
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return v.Message
}

// Plausible measurement bounds for the CC8488 sensor suite.
const (
	minTemperatureD = -400  // -40.0 C, sensor floor
	maxTemperatureD = 700   // +70.0 C, sensor ceiling
	minPressureD    = 3000  // 300.0 hPa
	maxPressureD    = 11000 // 1100.0 hPa
)

// ValidateReading checks a decoded reading for physically implausible
// values. Returns a slice of validation errors, empty if the reading is
// plausible.
func ValidateReading(r Reading) []ValidationError {
	switch v := r.(type) {
	case CurrentReading:
		return validateObservation(v.Observation)
	case HistoryReading:
		return validateObservation(v.Observation)
	case ClockAck:
		if !v.Accepted() {
			return []ValidationError{{
				Type:    AnomalyClockRejected,
				Message: fmt.Sprintf("console rejected clock update (status 0x%02X)", v.Status),
			}}
		}
	}
	return nil
}

func validateObservation(o Observation) []ValidationError {
	errors := []ValidationError{}

	if o.Humidity > 100 {
		errors = append(errors, ValidationError{
			Type:    AnomalyHumidityRange,
			Message: fmt.Sprintf("humidity %d%% out of range (0-100)", o.Humidity),
		})
	}

	if o.WindDir > 359 {
		errors = append(errors, ValidationError{
			Type:    AnomalyWindDirRange,
			Message: fmt.Sprintf("wind direction %d degrees out of range (0-359)", o.WindDir),
		})
	}

	if int(o.Temperature) < minTemperatureD || int(o.Temperature) > maxTemperatureD {
		errors = append(errors, ValidationError{
			Type:    AnomalyTemperatureRange,
			Message: fmt.Sprintf("temperature %.1f C out of sensor range (-40 to 70)", o.TemperatureC()),
		})
	}

	if int(o.Pressure) < minPressureD || int(o.Pressure) > maxPressureD {
		errors = append(errors, ValidationError{
			Type:    AnomalyPressureRange,
			Message: fmt.Sprintf("pressure %.1f hPa out of range (300 to 1100)", o.PressureHPa()),
		})
	}

	return errors
}
