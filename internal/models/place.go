package models

import (
	"fmt"
	"strings"
)

// Recommendation is a suggested place of interest.
// Distance is free-form text with a unit suffix (e.g. "0.5 km", "350 m").
type Recommendation struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Distance    string `json:"distance"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
}

// DistanceLabel returns the unit-suffixed distance text
func (r Recommendation) DistanceLabel() string {
	return r.Distance
}

// ServiceType is the kind of emergency service
type ServiceType string

const (
	ServiceHospital ServiceType = "hospital"
	ServiceClinic   ServiceType = "clinic"
	ServicePolice   ServiceType = "police"
)

// ServiceTypes lists every emergency service type
var ServiceTypes = []ServiceType{ServiceHospital, ServiceClinic, ServicePolice}

// EmergencyService is a hospital, clinic or police station near the user
type EmergencyService struct {
	Name     string      `json:"name"`
	Type     ServiceType `json:"type"`
	Address  string      `json:"address"`
	Distance string      `json:"distance"`
	Phone    string      `json:"phone,omitempty"`
}

// DistanceLabel returns the unit-suffixed distance text
func (e EmergencyService) DistanceLabel() string {
	return e.Distance
}

// ParseServiceType parses a service type case-insensitively
func ParseServiceType(s string) (ServiceType, error) {
	v := ServiceType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range ServiceTypes {
		if v == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown service type %q", s)
}
