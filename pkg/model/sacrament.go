package model

// Sacrament is the category of church service a parishioner can book.
// Values match the names shown in the booking UI and stored on records.
type Sacrament string

const (
	SacramentBaptism        Sacrament = "Baptism"
	SacramentWedding        Sacrament = "Wedding"
	SacramentBurial         Sacrament = "Burial"
	SacramentConfirmation   Sacrament = "Confirmation"
	SacramentFirstCommunion Sacrament = "First Communion"
	SacramentConfession     Sacrament = "Confession"
	SacramentAnointing      Sacrament = "Anointing of the Sick"
)

var Sacraments = []Sacrament{
	SacramentBaptism,
	SacramentWedding,
	SacramentBurial,
	SacramentConfirmation,
	SacramentFirstCommunion,
	SacramentConfession,
	SacramentAnointing,
}

func (s Sacrament) Valid() bool {
	for _, known := range Sacraments {
		if s == known {
			return true
		}
	}
	return false
}

// RequiresDocument reports whether the sacrament carries a specific
// document record in its own collection.
func (s Sacrament) RequiresDocument() bool {
	switch s {
	case SacramentBaptism, SacramentWedding, SacramentBurial:
		return true
	}
	return false
}

// MarriageType describes the civil/religious status of a baptism
// candidate's parents.
type MarriageType string

const (
	MarriageCatholic   MarriageType = "Catholic"
	MarriageCivil      MarriageType = "Civil"
	MarriageNatural    MarriageType = "Natural"
	MarriageNotMarried MarriageType = "Not Married"
)

func (m MarriageType) Valid() bool {
	switch m {
	case MarriageCatholic, MarriageCivil, MarriageNatural, MarriageNotMarried:
		return true
	}
	return false
}
