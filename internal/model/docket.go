package model

import "time"

// Required docket slot names, in the canonical order used when
// reporting an incomplete docket.  These six slots gate completion;
// the variable-length collections below never do.
const (
	SlotPassportFront    = "passportFrontUrl"
	SlotPassportLast     = "passportLastUrl"
	SlotPassportPhoto    = "passportPhotoUrl"
	SlotOfferLetter      = "offerLetterUrl"
	SlotPermanentAddress = "permanentAddressUrl"
	SlotCurrentAddress   = "currentAddressUrl"
)

// RequiredSlots lists the document slots that must all be filled
// before a docket can be completed, in canonical reporting order.
var RequiredSlots = []string{
	SlotPassportFront,
	SlotPassportLast,
	SlotPassportPhoto,
	SlotOfferLetter,
	SlotPermanentAddress,
	SlotCurrentAddress,
}

// Docket holds the document set for one candidate, one-to-one with
// User.  Each slot is either empty or an opaque URL into the blob
// store; partial state is normal mid-workflow, and the core performs
// no validation beyond "non-empty".  The list fields are stored as
// JSON text columns.
//
// Fields:
//  ID                  – primary key identifier.
//  UserID              – owning candidate.
//  PassportFrontURL    – required slot.
//  PassportLastURL     – required slot.
//  PassportPhotoURL    – required slot.
//  OfferLetterURL      – required slot.
//  PermanentAddressURL – required slot.
//  CurrentAddressURL   – required slot.
//  EducationURLs       – optional collection, not part of the gate.
//  ExperienceURLs      – optional collection, not part of the gate.
//  CertificationURLs   – optional collection, not part of the gate.
//  References          – optional collection, not part of the gate.
//  UpdatedAt           – last update timestamp.
type Docket struct {
	ID                  uint64    // dockets.id
	UserID              uint64    // dockets.user_id
	PassportFrontURL    string    // dockets.passport_front_url
	PassportLastURL     string    // dockets.passport_last_url
	PassportPhotoURL    string    // dockets.passport_photo_url
	OfferLetterURL      string    // dockets.offer_letter_url
	PermanentAddressURL string    // dockets.permanent_address_url
	CurrentAddressURL   string    // dockets.current_address_url
	EducationURLs       []string  // dockets.education_urls (JSON)
	ExperienceURLs      []string  // dockets.experience_urls (JSON)
	CertificationURLs   []string  // dockets.certification_urls (JSON)
	References          []string  // dockets.references (JSON)
	UpdatedAt           time.Time // dockets.updated_at
}

// Slot returns the value of a required slot by its canonical name.
// Unknown names return the empty string.
func (d *Docket) Slot(name string) string {
	switch name {
	case SlotPassportFront:
		return d.PassportFrontURL
	case SlotPassportLast:
		return d.PassportLastURL
	case SlotPassportPhoto:
		return d.PassportPhotoURL
	case SlotOfferLetter:
		return d.OfferLetterURL
	case SlotPermanentAddress:
		return d.PermanentAddressURL
	case SlotCurrentAddress:
		return d.CurrentAddressURL
	}
	return ""
}
