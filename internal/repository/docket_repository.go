package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// DocketRepo persists per-candidate document sets in the 'dockets'
// table.  The six required slots are plain columns; the
// variable-length collections are JSON text columns.
type DocketRepo struct{ DB *sql.DB }

func NewDocketRepo(db *sql.DB) *DocketRepo { return &DocketRepo{DB: db} }

func marshalList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func unmarshalList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (r *DocketRepo) GetByUserID(ctx context.Context, userID uint64) (model.Docket, error) {
	var (
		d                                  model.Docket
		education, experience, certs, refs string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, passport_front_url, passport_last_url, passport_photo_url,
		        offer_letter_url, permanent_address_url, current_address_url,
		        education_urls, experience_urls, certification_urls, references_json, updated_at
		   FROM dockets WHERE user_id=? LIMIT 1`,
		userID).Scan(&d.ID, &d.UserID, &d.PassportFrontURL, &d.PassportLastURL, &d.PassportPhotoURL,
		&d.OfferLetterURL, &d.PermanentAddressURL, &d.CurrentAddressURL,
		&education, &experience, &certs, &refs, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Docket{}, service.ErrNotFound
	}
	if err != nil {
		return model.Docket{}, err
	}
	if d.EducationURLs, err = unmarshalList(education); err != nil {
		return model.Docket{}, err
	}
	if d.ExperienceURLs, err = unmarshalList(experience); err != nil {
		return model.Docket{}, err
	}
	if d.CertificationURLs, err = unmarshalList(certs); err != nil {
		return model.Docket{}, err
	}
	if d.References, err = unmarshalList(refs); err != nil {
		return model.Docket{}, err
	}
	return d, nil
}

// Upsert writes the full docket row for a user, creating it on first
// write.  The caller (DocketService) is responsible for merging
// partial updates into the stored state first.
func (r *DocketRepo) Upsert(ctx context.Context, d *model.Docket) error {
	education, err := marshalList(d.EducationURLs)
	if err != nil {
		return err
	}
	experience, err := marshalList(d.ExperienceURLs)
	if err != nil {
		return err
	}
	certs, err := marshalList(d.CertificationURLs)
	if err != nil {
		return err
	}
	refs, err := marshalList(d.References)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO dockets (user_id, passport_front_url, passport_last_url, passport_photo_url,
		                      offer_letter_url, permanent_address_url, current_address_url,
		                      education_urls, experience_urls, certification_urls, references_json, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   passport_front_url=VALUES(passport_front_url),
		   passport_last_url=VALUES(passport_last_url),
		   passport_photo_url=VALUES(passport_photo_url),
		   offer_letter_url=VALUES(offer_letter_url),
		   permanent_address_url=VALUES(permanent_address_url),
		   current_address_url=VALUES(current_address_url),
		   education_urls=VALUES(education_urls),
		   experience_urls=VALUES(experience_urls),
		   certification_urls=VALUES(certification_urls),
		   references_json=VALUES(references_json),
		   updated_at=VALUES(updated_at)`,
		d.UserID, d.PassportFrontURL, d.PassportLastURL, d.PassportPhotoURL,
		d.OfferLetterURL, d.PermanentAddressURL, d.CurrentAddressURL,
		education, experience, certs, refs, d.UpdatedAt)
	return err
}
