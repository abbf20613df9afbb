package service

import (
	"context"
	"errors"
	"time"

	"github.com/chefoverseas/docketify-server/internal/model"
)

// IsComplete reports whether every required document slot of a docket
// is filled.  It is a pure function of the six required slots; the
// variable-length collections (education, experience, certifications,
// references) never affect the result.
func IsComplete(d *model.Docket) bool {
	return len(MissingSlots(d)) == 0
}

// MissingSlots returns the required slots that are still empty, in
// canonical order.  A nil docket is missing everything.
func MissingSlots(d *model.Docket) []string {
	var missing []string
	for _, name := range model.RequiredSlots {
		if d == nil || d.Slot(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// DocketService owns docket reads and writes and performs the
// completion transition.  Complete is the only code path that flips
// users.docket_completed.
type DocketService struct {
	Users   UserStore
	Dockets DocketStore

	now func() time.Time
}

func NewDocketService(users UserStore, dockets DocketStore) *DocketService {
	return &DocketService{
		Users:   users,
		Dockets: dockets,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the candidate's docket, or an empty one when nothing
// has been uploaded yet.  Partial state is normal mid-workflow.
func (s *DocketService) Get(ctx context.Context, userID uint64) (model.Docket, error) {
	d, err := s.Dockets.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Docket{UserID: userID}, nil
		}
		return model.Docket{}, err
	}
	return d, nil
}

// DocketPatch carries a partial docket update.  Nil fields leave the
// stored value untouched; empty strings/slices clear a slot.  URL
// values are opaque to the core — no validation beyond non-emptiness
// at completion time.
type DocketPatch struct {
	PassportFrontURL    *string
	PassportLastURL     *string
	PassportPhotoURL    *string
	OfferLetterURL      *string
	PermanentAddressURL *string
	CurrentAddressURL   *string
	EducationURLs       *[]string
	ExperienceURLs      *[]string
	CertificationURLs   *[]string
	References          *[]string
}

// Update merges a patch into the candidate's docket, creating the row
// on first write.  Updating a docket never changes the completion
// flag; that transition happens only through Complete.
func (s *DocketService) Update(ctx context.Context, userID uint64, p DocketPatch) (model.Docket, error) {
	d, err := s.Get(ctx, userID)
	if err != nil {
		return model.Docket{}, err
	}
	if p.PassportFrontURL != nil {
		d.PassportFrontURL = *p.PassportFrontURL
	}
	if p.PassportLastURL != nil {
		d.PassportLastURL = *p.PassportLastURL
	}
	if p.PassportPhotoURL != nil {
		d.PassportPhotoURL = *p.PassportPhotoURL
	}
	if p.OfferLetterURL != nil {
		d.OfferLetterURL = *p.OfferLetterURL
	}
	if p.PermanentAddressURL != nil {
		d.PermanentAddressURL = *p.PermanentAddressURL
	}
	if p.CurrentAddressURL != nil {
		d.CurrentAddressURL = *p.CurrentAddressURL
	}
	if p.EducationURLs != nil {
		d.EducationURLs = *p.EducationURLs
	}
	if p.ExperienceURLs != nil {
		d.ExperienceURLs = *p.ExperienceURLs
	}
	if p.CertificationURLs != nil {
		d.CertificationURLs = *p.CertificationURLs
	}
	if p.References != nil {
		d.References = *p.References
	}
	d.UserID = userID
	d.UpdatedAt = s.now()
	if err := s.Dockets.Upsert(ctx, &d); err != nil {
		return model.Docket{}, err
	}
	return d, nil
}

// Complete performs the completion transition for a candidate.  When
// required slots are missing it fails with an IncompleteDocketError
// listing exactly which ones.  The transition is idempotent: calling
// Complete on an already-completed user succeeds as a no-op, because
// re-submission races (double-click, concurrent admin and candidate
// calls) are expected and must not surface as failures.
func (s *DocketService) Complete(ctx context.Context, userID uint64) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.DocketCompleted {
		return nil
	}
	d, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if missing := MissingSlots(&d); len(missing) > 0 {
		return &IncompleteDocketError{Missing: missing}
	}
	return s.Users.MarkDocketCompleted(ctx, userID)
}
