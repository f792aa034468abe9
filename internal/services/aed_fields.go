package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/models"
	"github.com/AnshRaj112/aed-backend/pkg/utils"
)

// Fields are raw submitted form values keyed by AED attribute name.
type Fields map[string][]string

func (f Fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Fields) first(key string) string {
	if v := f[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

type fieldSetter func(aed *models.AED, values []string) error

// aedFields lists every client-writable attribute. Keys missing here, such
// as _id, timestamps, delete flags and aedImage, are ignored on input.
var aedFields = map[string]fieldSetter{
	"locationName":     stringField(func(a *models.AED) *string { return &a.LocationName }),
	"aedPlacement":     stringField(func(a *models.AED) *string { return &a.AEDPlacement }),
	"streetAddress":    stringField(func(a *models.AED) *string { return &a.StreetAddress }),
	"city":             stringField(func(a *models.AED) *string { return &a.City }),
	"state":            stringField(func(a *models.AED) *string { return &a.State }),
	"zipCode":          stringField(func(a *models.AED) *string { return &a.ZipCode }),
	"county":           stringField(func(a *models.AED) *string { return &a.County }),
	"businessPhone":    stringField(func(a *models.AED) *string { return &a.BusinessPhone }),
	"aedPlaceType":     stringField(func(a *models.AED) *string { return &a.AEDPlaceType }),
	"responsibleParty": stringField(func(a *models.AED) *string { return &a.ResponsibleParty }),
	"responsiblePhone": stringField(func(a *models.AED) *string { return &a.ResponsiblePhone }),
	"responsibleEmail": stringField(func(a *models.AED) *string { return &a.ResponsibleEmail }),
	"aedManufacturer":  stringField(func(a *models.AED) *string { return &a.AEDManufacturer }),
	"aedModel":         stringField(func(a *models.AED) *string { return &a.AEDModel }),
	"aedAssetId":       stringField(func(a *models.AED) *string { return &a.AEDAssetID }),
	"aedSerialNumber":  stringField(func(a *models.AED) *string { return &a.AEDSerialNumber }),
	"medicalDirection": stringField(func(a *models.AED) *string { return &a.MedicalDirection }),
	"accessCode":       stringField(func(a *models.AED) *string { return &a.AccessCode }),

	"restrictedAccess": boolField("restrictedAccess", func(a *models.AED) **bool { return &a.RestrictedAccess }),
	"notFixedLocation": boolField("notFixedLocation", func(a *models.AED) **bool { return &a.NotFixedLocation }),
	"accessible24_7":   boolField("accessible24_7", func(a *models.AED) **bool { return &a.Accessible24x7 }),

	"aedInstallDate":                   dateField("aedInstallDate", func(a *models.AED) **time.Time { return &a.AEDInstallDate }),
	"batteryExpirationDate":            dateField("batteryExpirationDate", func(a *models.AED) **time.Time { return &a.BatteryExpirationDate }),
	"electrodeExpirationDate":          dateField("electrodeExpirationDate", func(a *models.AED) **time.Time { return &a.ElectrodeExpirationDate }),
	"pediatricElectrodeExpirationDate": dateField("pediatricElectrodeExpirationDate", func(a *models.AED) **time.Time { return &a.PediatricElectrodeExpirationDate }),

	"emergencySupplies": func(a *models.AED, values []string) error {
		a.EmergencySupplies = parseSupplies(values)
		return nil
	},
	"location": func(a *models.AED, values []string) error {
		loc, err := parseLocation(firstValue(values))
		if err != nil {
			return err
		}
		a.Location = loc
		return nil
	},
}

// applyFields writes every recognised field onto aed. It stops at the first
// invalid value, so callers must not persist aed on error.
func applyFields(aed *models.AED, fields Fields) error {
	for key, values := range fields {
		set, ok := aedFields[key]
		if !ok {
			continue
		}
		if err := set(aed, values); err != nil {
			return err
		}
	}

	// Forms without a GeoJSON location may send the point as two fields.
	if !fields.has("location") && (fields.has("latitude") || fields.has("longitude")) {
		loc, err := pointFromLatLon(fields.first("latitude"), fields.first("longitude"))
		if err != nil {
			return err
		}
		aed.Location = loc
	}
	return nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringField(target func(*models.AED) *string) fieldSetter {
	return func(a *models.AED, values []string) error {
		*target(a) = firstValue(values)
		return nil
	}
}

func boolField(name string, target func(*models.AED) **bool) fieldSetter {
	return func(a *models.AED, values []string) error {
		raw := strings.TrimSpace(firstValue(values))
		if raw == "" {
			*target(a) = nil
			return nil
		}
		var b bool
		switch strings.ToLower(raw) {
		case "on", "yes":
			b = true
		case "off", "no":
			b = false
		default:
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return &utils.ValidationError{Field: name, Message: fmt.Sprintf("%s must be true or false", name)}
			}
			b = parsed
		}
		*target(a) = &b
		return nil
	}
}

func dateField(name string, target func(*models.AED) **time.Time) fieldSetter {
	return func(a *models.AED, values []string) error {
		raw := strings.TrimSpace(firstValue(values))
		if raw == "" {
			*target(a) = nil
			return nil
		}
		t, err := parseDate(raw)
		if err != nil {
			return &utils.ValidationError{Field: name, Message: fmt.Sprintf("%s must be a date (YYYY-MM-DD)", name)}
		}
		*target(a) = &t
		return nil
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// parseSupplies normalises emergencySupplies. Repeated form values are used
// in order; a single value is read as a JSON string list, and anything else
// becomes a one-element list. A blank value means no supplies.
func parseSupplies(values []string) []string {
	if len(values) > 1 {
		return append([]string{}, values...)
	}
	raw := strings.TrimSpace(firstValue(values))
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil && list != nil {
		return list
	}
	return []string{firstValue(values)}
}

// parseLocation decodes a GeoJSON Point. A blank value clears the location.
func parseLocation(raw string) (*models.GeoPoint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var p models.GeoPoint
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrInvalidLocation
	}
	if err := p.Validate(); err != nil {
		return nil, ErrInvalidLocation
	}
	return &p, nil
}

func pointFromLatLon(latRaw, lonRaw string) (*models.GeoPoint, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return nil, ErrInvalidLocation
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if err != nil {
		return nil, ErrInvalidLocation
	}
	if err := models.ValidateLatLon(lat, lon); err != nil {
		return nil, ErrInvalidLocation
	}
	return models.NewGeoPoint(lat, lon), nil
}
