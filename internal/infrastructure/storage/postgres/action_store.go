package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"salespoint/internal/core/apperror"
	"salespoint/internal/core/id"
	"salespoint/internal/domain/sales"
)

const actionsTable = "sales_transaction_actions"

type compressionAlgo string

const (
	compressionNone compressionAlgo = "none"
	compressionZstd compressionAlgo = "zstd"
)

// actionCompressThreshold is the payload size above which action data is
// stored zstd-compressed.
const actionCompressThreshold = 8 * 1024

var _ sales.ActionStore = (*ActionStore)(nil)

// ActionStore persists the append-only transaction audit trail. Oversized
// action payloads are zstd-compressed at rest.
type ActionStore struct {
	txm     *TxManager
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewActionStore creates the store.
func NewActionStore(txm *TxManager) (*ActionStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &ActionStore{txm: txm, encoder: encoder, decoder: decoder}, nil
}

const appendActionSQL = `
	INSERT INTO sales_transaction_actions (
		id, transaction_id, action_type,
		data, data_compressed, compression_algo,
		user_id, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Append inserts one audit action. Rows are never updated or deleted.
func (s *ActionStore) Append(ctx context.Context, action *sales.Action) error {
	if id.IsNil(action.ID) {
		action.ID = id.New()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}

	var payload []byte
	if action.Data != nil {
		raw, err := json.Marshal(action.Data)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("marshal action data: %w", err))
		}
		payload = raw
	}

	var (
		data       []byte
		compressed []byte
		algo       = compressionNone
	)
	if len(payload) > actionCompressThreshold {
		compressed = s.encoder.EncodeAll(payload, nil)
		algo = compressionZstd
	} else {
		data = payload
	}

	querier := s.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx, appendActionSQL,
		action.ID, action.TransactionID, string(action.Type),
		data, compressed, string(algo),
		action.UserID, action.CreatedAt,
	)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("append action: %w", err))
	}
	return nil
}

const listActionsSQL = `
	SELECT id, transaction_id, action_type,
	       data, data_compressed, compression_algo,
	       user_id, created_at
	FROM sales_transaction_actions
	WHERE transaction_id = $1
	ORDER BY created_at ASC
`

// ListByTransaction returns the audit trail of a transaction, oldest first.
func (s *ActionStore) ListByTransaction(ctx context.Context, txID id.ID) ([]sales.Action, error) {
	querier := s.txm.GetQuerier(ctx)
	rows, err := querier.Query(ctx, listActionsSQL, txID)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("query actions: %w", err))
	}
	defer rows.Close()

	var actions []sales.Action
	for rows.Next() {
		var (
			a          sales.Action
			kind       string
			data       []byte
			compressed []byte
			algo       string
		)
		if err := rows.Scan(
			&a.ID, &a.TransactionID, &kind,
			&data, &compressed, &algo,
			&a.UserID, &a.CreatedAt,
		); err != nil {
			return nil, apperror.NewDatabase(fmt.Errorf("scan action: %w", err))
		}
		a.Type = sales.ActionType(kind)

		if compressionAlgo(algo) == compressionZstd && len(compressed) > 0 {
			data, err = s.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, apperror.NewInternal(fmt.Errorf("decompress action data: %w", err))
			}
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &a.Data); err != nil {
				return nil, apperror.NewInternal(fmt.Errorf("unmarshal action data: %w", err))
			}
		}

		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return actions, nil
}
