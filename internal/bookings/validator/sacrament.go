package validator

import (
	"regexp"

	"sagradago/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Messages surfaced to the booking form. The UI shows them verbatim, so
// changing one here changes what parishioners read.
const (
	MsgBabyFieldsRequired   = "Please fill in all required fields for the baby."
	MsgParentFieldsRequired = "Please fill in all required fields for the parents."
	MsgMarriageTypeRequired = "Please select the type of marriage for the parents."
	MsgContactRequired      = "Please enter a contact number."
	MsgContactInvalid       = "Please enter a valid contact number."
	MsgAddressRequired      = "Please enter the current address."
	MsgGodparentsRequired   = "Please enter necessary information of the main godparents."
	MsgTooManyGodparents    = "You can only add up to 10 additional godparents."
	MsgBurialFieldsRequired = "Please fill in all required fields for the burial."
	MsgPlaceOfMassRequired  = "Please fill in all required fields for the place of mass."
	MsgCoupleNamesRequired  = "Please fill in the Groom and Bride's Names."
	MsgPhotosRequired       = "Please upload the 1x1 photos of both Groom and Bride."
	MsgBaptismCertsRequired = "Please upload the baptismal certificates of both Groom and Bride."
	MsgConfirmCertsRequired = "Please upload the confirmation certificates of both Groom and Bride."
	MsgCommonFieldsRequired = "Please fill in all required fields."
)

// MaxAdditionalGodparents caps the secondary-sponsor list, matching the
// limit the booking form enforces.
const MaxAdditionalGodparents = 10

// PH mobile numbers as parishioners type them: 11 digits starting 09.
var phMobilePattern = regexp.MustCompile(`^09\d{9}$`)

// SacramentValidator checks sacrament-specific documents for
// completeness. Each Validate method is pure and returns the first
// failing check's message, or "" when the document is acceptable.
type SacramentValidator struct {
	validate *validator.Validate
}

func New() *SacramentValidator {
	v := validator.New()

	// Tag is also used by struct validation elsewhere (volunteers).
	_ = v.RegisterValidation("ph_mobile", func(fl validator.FieldLevel) bool {
		return phMobilePattern.MatchString(fl.Field().String())
	})

	return &SacramentValidator{validate: v}
}

// Engine exposes the underlying validate instance so handlers can run
// struct-tag validation with the custom tags registered here.
func (v *SacramentValidator) Engine() *validator.Validate {
	return v.validate
}

// ValidMobile reports whether number is a well-formed PH mobile number.
func (v *SacramentValidator) ValidMobile(number string) bool {
	return v.validate.Var(number, "ph_mobile") == nil
}

// checkContact applies the shared presence-then-shape contact check.
func (v *SacramentValidator) checkContact(number string) string {
	if number == "" {
		return MsgContactRequired
	}
	if !v.ValidMobile(number) {
		return MsgContactInvalid
	}
	return ""
}

// ValidateBaptism checks a baptism document in form order. Checks run
// first to last and the first failure wins.
func (v *SacramentValidator) ValidateBaptism(doc *model.BaptismDocument) string {
	if doc == nil {
		return MsgBabyFieldsRequired
	}
	if doc.BabyName == "" || doc.BabyBirthDate == nil || doc.BabyBirthplace == "" {
		return MsgBabyFieldsRequired
	}
	if doc.MotherName == "" || doc.MotherBirthplace == "" || doc.FatherName == "" || doc.FatherBirthplace == "" {
		return MsgParentFieldsRequired
	}
	if !doc.MarriageType.Valid() {
		return MsgMarriageTypeRequired
	}
	if msg := v.checkContact(doc.ContactNumber); msg != "" {
		return msg
	}
	if doc.CurrentAddress == "" {
		return MsgAddressRequired
	}
	if !godparentComplete(doc.MainGodfather) || !godparentComplete(doc.MainGodmother) {
		return MsgGodparentsRequired
	}
	if len(doc.AdditionalGodparents) > MaxAdditionalGodparents {
		return MsgTooManyGodparents
	}
	return ""
}

func godparentComplete(g model.Godparent) bool {
	return g.Name != "" && g.Age != "" && g.Address != ""
}

// ValidateBurial checks a burial document in form order.
func (v *SacramentValidator) ValidateBurial(doc *model.BurialDocument) string {
	if doc == nil {
		return MsgBurialFieldsRequired
	}
	if doc.DeceasedName == "" || doc.DeceasedAge == "" || doc.RequestedBy == "" || doc.DeceasedRelationship == "" || doc.Address == "" {
		return MsgBurialFieldsRequired
	}
	if msg := v.checkContact(doc.ContactNumber); msg != "" {
		return msg
	}
	if doc.PlaceOfMass == "" || doc.MassAddress == "" {
		return MsgPlaceOfMassRequired
	}
	return ""
}

// ValidateWedding checks a wedding document in form order.
func (v *SacramentValidator) ValidateWedding(doc *model.WeddingDocument) string {
	if doc == nil {
		return MsgCoupleNamesRequired
	}
	if doc.GroomFullName == "" || doc.BrideFullName == "" {
		return MsgCoupleNamesRequired
	}
	if msg := v.checkContact(doc.ContactNumber); msg != "" {
		return msg
	}
	if doc.Groom1x1 == "" || doc.Bride1x1 == "" {
		return MsgPhotosRequired
	}
	if doc.GroomBaptismalCert == "" || doc.BrideBaptismalCert == "" {
		return MsgBaptismCertsRequired
	}
	if doc.GroomConfirmationCert == "" || doc.BrideConfirmationCert == "" {
		return MsgConfirmCertsRequired
	}
	return ""
}

// ValidateCommon covers sacraments without a specific document shape,
// where only the shared contact and address fields apply.
func (v *SacramentValidator) ValidateCommon(contactNumber, currentAddress string) string {
	if contactNumber == "" || currentAddress == "" {
		return MsgCommonFieldsRequired
	}
	if !v.ValidMobile(contactNumber) {
		return MsgContactInvalid
	}
	return ""
}

// ValidateDocument dispatches on the sacrament, returning "" for types
// that carry no specific document.
func (v *SacramentValidator) ValidateDocument(sacrament model.Sacrament, req *model.BookingRequest) string {
	switch sacrament {
	case model.SacramentBaptism:
		return v.ValidateBaptism(req.Baptism)
	case model.SacramentWedding:
		return v.ValidateWedding(req.Wedding)
	case model.SacramentBurial:
		return v.ValidateBurial(req.Burial)
	}
	return ""
}
