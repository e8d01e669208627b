package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/radieske/bet-settlement-poc/internal/engine"
)

// Postgres implementa a persistência de apostas e liquidações.
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de liquidação.
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var ErrNotFound = errors.New("not found")

const betColumns = `
	id, user_id, match_id, odd_id, market_id,
	selection, selection_label, selection_name, selection_total,
	selection_handicap, market_description,
	stake_cents, odd_value, is_live, status, payout_cents, reason,
	created_at, updated_at`

func scanBet(row interface{ Scan(...any) error }) (BetRecord, error) {
	var b BetRecord
	var reason sql.NullString
	err := row.Scan(
		&b.ID, &b.UserID, &b.MatchID, &b.OddID, &b.MarketID,
		&b.Selection, &b.SelectionLabel, &b.SelectionName, &b.SelectionTotal,
		&b.SelectionHandicap, &b.MarketDescription,
		&b.StakeCents, &b.OddValue, &b.IsLive, &b.Status, &b.PayoutCents, &reason,
		&b.CreatedAt, &b.UpdatedAt,
	)
	b.Reason = reason.String
	return b, err
}

// GetByIDs carrega apostas por id, em qualquer ordem.
func (p *Postgres) GetByIDs(ctx context.Context, ids []string) ([]BetRecord, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+betColumns+` FROM bets WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBets(rows)
}

// PendingByMatch retorna as apostas ainda pendentes de uma partida.
func (p *Postgres) PendingByMatch(ctx context.Context, matchID string) ([]BetRecord, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+betColumns+` FROM bets WHERE match_id=$1 AND status='PENDING'`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBets(rows)
}

func collectBets(rows *sql.Rows) ([]BetRecord, error) {
	var bets []BetRecord
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// Get carrega uma aposta pelo id.
func (p *Postgres) Get(ctx context.Context, betID string) (BetRecord, error) {
	b, err := scanBet(p.db.QueryRowContext(ctx,
		`SELECT `+betColumns+` FROM bets WHERE id=$1`, betID))
	if err == sql.ErrNoRows {
		return BetRecord{}, ErrNotFound
	}
	return b, err
}

// ApplyOutcome efetiva uma liquidação terminal: atualiza a aposta, registra
// no ledger de liquidações e credita o payout na carteira do usuário.
// Idempotente: aposta já liquidada não é tocada de novo. Outcomes PENDING
// não alteram nada.
func (p *Postgres) ApplyOutcome(ctx context.Context, betID string, out engine.Outcome) error {
	if !out.Status.Terminal() {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID, status string
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, status FROM bets WHERE id=$1 FOR UPDATE`, betID).
		Scan(&userID, &status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if status != "PENDING" {
		return nil // já liquidada
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE bets
		SET status=$1, payout_cents=$2, reason=$3, settled_at=NOW(), updated_at=NOW()
		WHERE id=$4`,
		string(out.Status), out.PayoutCents, out.Reason, betID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO settlements (id, bet_id, status, payout_cents, reason, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())`,
		uuid.NewString(), betID, string(out.Status), out.PayoutCents, out.Reason); err != nil {
		return err
	}

	// Crédito na carteira em vitória, push e cancelamento
	if out.PayoutCents > 0 {
		if _, err = tx.ExecContext(ctx, `
			UPDATE wallets SET balance_cents = balance_cents + $1, version = version + 1
			WHERE user_id=$2`, out.PayoutCents, userID); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO wallet_ledger(wallet_id, operation_type, amount_cents, description, related_bet_id)
			SELECT id, 'CREDIT', $1, $2, $3 FROM wallets WHERE user_id=$4`,
			out.PayoutCents, "settlement:"+string(out.Status), betID, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
