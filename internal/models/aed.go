package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AED is one registered defibrillator installation.
type AED struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	LocationName   string `bson:"locationName" json:"locationName"`
	AEDPlacement   string `bson:"aedPlacement,omitempty" json:"aedPlacement,omitempty"`
	StreetAddress  string `bson:"streetAddress,omitempty" json:"streetAddress,omitempty"`
	City           string `bson:"city,omitempty" json:"city,omitempty"`
	State          string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode        string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	County         string `bson:"county,omitempty" json:"county,omitempty"`
	BusinessPhone  string `bson:"businessPhone,omitempty" json:"businessPhone,omitempty"`
	AEDPlaceType   string `bson:"aedPlaceType,omitempty" json:"aedPlaceType,omitempty"`

	// Responsible party
	ResponsibleParty string `bson:"responsibleParty,omitempty" json:"responsibleParty,omitempty"`
	ResponsiblePhone string `bson:"responsiblePhone,omitempty" json:"responsiblePhone,omitempty"`
	ResponsibleEmail string `bson:"responsibleEmail,omitempty" json:"responsibleEmail,omitempty"`

	// Access
	RestrictedAccess *bool `bson:"restrictedAccess,omitempty" json:"restrictedAccess,omitempty"`
	NotFixedLocation *bool `bson:"notFixedLocation,omitempty" json:"notFixedLocation,omitempty"`
	Accessible24x7   *bool `bson:"accessible24_7,omitempty" json:"accessible24_7,omitempty"`

	// Device
	AEDManufacturer string     `bson:"aedManufacturer,omitempty" json:"aedManufacturer,omitempty"`
	AEDModel        string     `bson:"aedModel,omitempty" json:"aedModel,omitempty"`
	AEDAssetID      string     `bson:"aedAssetId,omitempty" json:"aedAssetId,omitempty"`
	AEDSerialNumber string     `bson:"aedSerialNumber,omitempty" json:"aedSerialNumber,omitempty"`
	AEDInstallDate  *time.Time `bson:"aedInstallDate,omitempty" json:"aedInstallDate,omitempty"`

	// Consumables
	BatteryExpirationDate            *time.Time `bson:"batteryExpirationDate,omitempty" json:"batteryExpirationDate,omitempty"`
	ElectrodeExpirationDate          *time.Time `bson:"electrodeExpirationDate,omitempty" json:"electrodeExpirationDate,omitempty"`
	PediatricElectrodeExpirationDate *time.Time `bson:"pediatricElectrodeExpirationDate,omitempty" json:"pediatricElectrodeExpirationDate,omitempty"`

	MedicalDirection  string   `bson:"medicalDirection,omitempty" json:"medicalDirection,omitempty"`
	AccessCode        string   `bson:"accessCode,omitempty" json:"accessCode,omitempty"`
	EmergencySupplies []string `bson:"emergencySupplies" json:"emergencySupplies"`

	// AEDImage is the URL returned by the upload relay.
	AEDImage string    `bson:"aedImage,omitempty" json:"aedImage,omitempty"`
	Location *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`

	IsDeleted bool       `bson:"isDeleted" json:"isDeleted"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// NearbyAED is an AED annotated with its great-circle distance in meters
// from the query point.
type NearbyAED struct {
	AED      `bson:",inline"`
	Distance float64 `bson:"distance" json:"distance"`
}
