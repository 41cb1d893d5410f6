package service

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/pkg/db"
)

// PgStore writes rationale entries to postgres. One transaction per cycle so
// a trail lands whole or not at all.
type PgStore struct {
	tx db.TxManager
}

func NewPgStore(tx db.TxManager) *PgStore {
	return &PgStore{tx: tx}
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS rationale_events (
	id         BIGSERIAL PRIMARY KEY,
	ts         TIMESTAMPTZ NOT NULL,
	instrument TEXT        NOT NULL,
	stage      TEXT        NOT NULL,
	code       TEXT        NOT NULL,
	params     JSONB
);
CREATE INDEX IF NOT EXISTS rationale_events_instrument_ts
	ON rationale_events (instrument, ts DESC);
`

func (s *PgStore) Migrate(ctx context.Context) error {
	_, err := s.tx.Conn().Exec(ctx, createTableSQL)
	return errors.Wrap(err, "migrate rationale_events")
}

func (s *PgStore) Record(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		for _, e := range entries {
			var params []byte
			if len(e.Params) > 0 {
				var err error
				params, err = sonic.Marshal(e.Params)
				if err != nil {
					return errors.Wrap(err, "encode params")
				}
			}
			_, err := tx.Exec(ctxTx,
				`INSERT INTO rationale_events (ts, instrument, stage, code, params) VALUES ($1, $2, $3, $4, $5)`,
				e.Ts, e.Instrument, e.Stage, string(e.Code), params,
			)
			if err != nil {
				return errors.Wrap(err, "insert rationale event")
			}
		}
		return nil
	})
}

func (s *PgStore) Recent(ctx context.Context, instrument string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.tx.Conn().Query(ctx,
		`SELECT ts, instrument, stage, code, params
		   FROM rationale_events
		  WHERE instrument = $1
		  ORDER BY ts DESC, id DESC
		  LIMIT $2`,
		instrument, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query rationale events")
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var code string
		var params []byte
		if err := rows.Scan(&e.Ts, &e.Instrument, &e.Stage, &code, &params); err != nil {
			return nil, errors.Wrap(err, "scan rationale event")
		}
		e.Code = models.Reason(code)
		if len(params) > 0 {
			if err := sonic.Unmarshal(params, &e.Params); err != nil {
				return nil, errors.Wrap(err, "decode params")
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
