package model

import "time"

// Godparent is one principal sponsor on a baptism form. All three
// fields must be filled before submission is accepted.
type Godparent struct {
	Name    string `json:"name" bson:"name"`
	Age     string `json:"age" bson:"age"`
	Address string `json:"address" bson:"address"`
}

// AdditionalGodparent is one row of the optional secondary-sponsor
// list. Rows with neither name filled in are dropped before persistence.
type AdditionalGodparent struct {
	GodfatherName string `json:"godfather_name,omitempty" bson:"godfather_name,omitempty"`
	GodfatherAge  string `json:"godfather_age,omitempty" bson:"godfather_age,omitempty"`
	GodmotherName string `json:"godmother_name,omitempty" bson:"godmother_name,omitempty"`
	GodmotherAge  string `json:"godmother_age,omitempty" bson:"godmother_age,omitempty"`
}

type BaptismDocument struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID string `json:"booking_id,omitempty" bson:"booking_id,omitempty"`

	BabyName       string     `json:"baby_name" bson:"baby_name"`
	BabyBirthDate  *time.Time `json:"baby_bday" bson:"baby_bday"`
	BabyBirthplace string     `json:"baby_birthplace" bson:"baby_birthplace"`

	MotherName       string `json:"mother_name" bson:"mother_name"`
	MotherBirthplace string `json:"mother_birthplace" bson:"mother_birthplace"`
	FatherName       string `json:"father_name" bson:"father_name"`
	FatherBirthplace string `json:"father_birthplace" bson:"father_birthplace"`

	MarriageType MarriageType `json:"marriage_type" bson:"marriage_type"`

	MainGodfather        Godparent             `json:"main_godfather" bson:"main_godfather"`
	MainGodmother        Godparent             `json:"main_godmother" bson:"main_godmother"`
	AdditionalGodparents []AdditionalGodparent `json:"additional_godparents,omitempty" bson:"additional_godparents,omitempty"`

	ContactNumber  string `json:"contact_number" bson:"contact_number"`
	CurrentAddress string `json:"current_address" bson:"current_address"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// BurialServiceFlags mark which rites the family is requesting.
type BurialServiceFlags struct {
	FuneralMass      bool `json:"funeral_mass" bson:"funeral_mass"`
	DeathAnniversary bool `json:"death_anniversary" bson:"death_anniversary"`
	FuneralBlessing  bool `json:"funeral_blessing" bson:"funeral_blessing"`
	TombBlessing     bool `json:"tomb_blessing" bson:"tomb_blessing"`
}

type BurialDocument struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID string `json:"booking_id,omitempty" bson:"booking_id,omitempty"`

	DeceasedName         string `json:"deceased_name" bson:"deceased_name"`
	DeceasedAge          string `json:"deceased_age" bson:"deceased_age"`
	DeceasedCivilStatus  string `json:"deceased_civil_status,omitempty" bson:"deceased_civil_status,omitempty"`
	RequestedBy          string `json:"requested_by" bson:"requested_by"`
	DeceasedRelationship string `json:"deceased_relationship" bson:"deceased_relationship"`
	Address              string `json:"address" bson:"address"`

	PlaceOfMass string `json:"place_of_mass" bson:"place_of_mass"`
	MassAddress string `json:"mass_address" bson:"mass_address"`

	ContactNumber string             `json:"contact_number" bson:"contact_number"`
	ServiceFlags  BurialServiceFlags `json:"service_flags" bson:"service_flags"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}

// WeddingDocument carries the couple's details plus opaque storage URLs
// for documents already uploaded by the client. The certificate and
// photo fields through ConfirmationCert are mandatory; the rest are
// required by church policy case-by-case and are not enforced here.
type WeddingDocument struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID string `json:"booking_id,omitempty" bson:"booking_id,omitempty"`

	GroomFullName string `json:"groom_fullname" bson:"groom_fullname"`
	BrideFullName string `json:"bride_fullname" bson:"bride_fullname"`
	ContactNumber string `json:"contact_number" bson:"contact_number"`

	Groom1x1              string `json:"groom_1x1" bson:"groom_1x1"`
	Bride1x1              string `json:"bride_1x1" bson:"bride_1x1"`
	GroomBaptismalCert    string `json:"groom_baptismal_cert" bson:"groom_baptismal_cert"`
	BrideBaptismalCert    string `json:"bride_baptismal_cert" bson:"bride_baptismal_cert"`
	GroomConfirmationCert string `json:"groom_confirmation_cert" bson:"groom_confirmation_cert"`
	BrideConfirmationCert string `json:"bride_confirmation_cert" bson:"bride_confirmation_cert"`

	MarriageLicense  string `json:"marriage_license,omitempty" bson:"marriage_license,omitempty"`
	MarriageContract string `json:"marriage_contract,omitempty" bson:"marriage_contract,omitempty"`
	GroomCenomar     string `json:"groom_cenomar,omitempty" bson:"groom_cenomar,omitempty"`
	BrideCenomar     string `json:"bride_cenomar,omitempty" bson:"bride_cenomar,omitempty"`
	GroomBanns       string `json:"groom_banns,omitempty" bson:"groom_banns,omitempty"`
	BrideBanns       string `json:"bride_banns,omitempty" bson:"bride_banns,omitempty"`
	GroomPermission  string `json:"groom_permission,omitempty" bson:"groom_permission,omitempty"`
	BridePermission  string `json:"bride_permission,omitempty" bson:"bride_permission,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
