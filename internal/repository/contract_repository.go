package repository

import (
	"context"
	"database/sql"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// ContractRepo persists contract status rows in the 'contracts'
// table.  Contract state is tracked independently of the docket
// completion gate.
type ContractRepo struct{ DB *sql.DB }

func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{DB: db} }

func (r *ContractRepo) GetByUserID(ctx context.Context, userID uint64) (model.Contract, error) {
	var c model.Contract
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, company_contract_status, job_offer_status, updated_at
		   FROM contracts WHERE user_id=? LIMIT 1`,
		userID).Scan(&c.ID, &c.UserID, &c.CompanyContractStatus, &c.JobOfferStatus, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Contract{}, service.ErrNotFound
	}
	return c, err
}

func (r *ContractRepo) Upsert(ctx context.Context, c *model.Contract) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO contracts (user_id, company_contract_status, job_offer_status, updated_at)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   company_contract_status=VALUES(company_contract_status),
		   job_offer_status=VALUES(job_offer_status),
		   updated_at=VALUES(updated_at)`,
		c.UserID, c.CompanyContractStatus, c.JobOfferStatus, c.UpdatedAt)
	return err
}
