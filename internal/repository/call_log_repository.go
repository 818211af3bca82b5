package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/unifin/internal/domain"
)

// CallLogRepository stores contract call outcomes.
type CallLogRepository interface {
	Record(ctx context.Context, record domain.CallRecord) error
	Recent(ctx context.Context, limit int) ([]domain.CallRecord, error)
}

type callLogRepository struct {
	pool *pgxpool.Pool
}

// NewCallLogRepository returns the Postgres repository, or an in-memory one when pool is nil.
func NewCallLogRepository(pool *pgxpool.Pool) CallLogRepository {
	if pool == nil {
		return NewMemoryCallLogRepository(0)
	}
	return &callLogRepository{pool: pool}
}

func (r *callLogRepository) Record(ctx context.Context, record domain.CallRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO contract_calls (id, session_id, from_address, contract, method, kind, tx_hash, block_number, message, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.SessionID,
		record.From,
		record.Contract,
		record.Method,
		record.Kind,
		record.TxHash,
		int64(record.BlockNumber),
		record.Message,
		record.CreatedAt,
	)
	return err
}

func (r *callLogRepository) Recent(ctx context.Context, limit int) ([]domain.CallRecord, error) {
	const query = `
        SELECT id, session_id, from_address, contract, method, kind, COALESCE(tx_hash,''), block_number, message, created_at
        FROM contract_calls
        ORDER BY created_at DESC
        LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CallRecord
	for rows.Next() {
		var (
			rec   domain.CallRecord
			block int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.From,
			&rec.Contract,
			&rec.Method,
			&rec.Kind,
			&rec.TxHash,
			&block,
			&rec.Message,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.BlockNumber = uint64(block)
		records = append(records, rec)
	}
	return records, rows.Err()
}

const defaultMemoryCapacity = 1000

// MemoryCallLogRepository keeps the most recent records in process memory.
type MemoryCallLogRepository struct {
	mu       sync.Mutex
	capacity int
	records  []domain.CallRecord
}

// NewMemoryCallLogRepository keeps at most capacity records (1000 when capacity <= 0).
func NewMemoryCallLogRepository(capacity int) *MemoryCallLogRepository {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryCallLogRepository{capacity: capacity}
}

func (r *MemoryCallLogRepository) Record(_ context.Context, record domain.CallRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	if len(r.records) > r.capacity {
		r.records = r.records[len(r.records)-r.capacity:]
	}
	return nil
}

func (r *MemoryCallLogRepository) Recent(_ context.Context, limit int) ([]domain.CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.CallRecord, 0, min(limit, len(r.records)))
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
