package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sevrus/billed/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var billColumns = []string{
	"id", "type", "name", "date", "amount", "vat", "pct",
	"commentary", "comment_admin", "status", "file_url", "file_name",
	"email", "created_at", "updated_at",
}

// BillRepository is the bill store: it owns both the database rows and
// the uploaded attachment files.
type BillRepository struct {
	db        *pgxpool.Pool
	uploadDir string
	publicURL string
	logger    *zap.Logger
}

func NewBillRepository(db *pgxpool.Pool, uploadDir, publicURL string, logger *zap.Logger) *BillRepository {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &BillRepository{
		db:        db,
		uploadDir: uploadDir,
		publicURL: publicURL,
		logger:    logger,
	}
}

func (r *BillRepository) List(ctx context.Context) ([]models.Bill, error) {
	query := squirrel.Select(billColumns...).
		From("bills").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(
			&b.ID, &b.Type, &b.Name, &b.Date, &b.Amount, &b.VAT, &b.Pct,
			&b.Commentary, &b.CommentAdmin, &b.Status, &b.FileURL, &b.FileName,
			&b.Email, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	return bills, rows.Err()
}

// Create is the first persistence phase: store the attachment bytes on
// disk and insert a provisional row holding only the file info and the
// submitter. The returned key identifies the row for the later Update.
func (r *BillRepository) Create(ctx context.Context, draft models.BillDraft) (models.BillCreated, error) {
	fileID := uuid.New()
	ext := filepath.Ext(draft.FileName)
	storedName := fileID.String() + ext
	filePath := filepath.Join(r.uploadDir, storedName)

	if err := os.WriteFile(filePath, draft.Content, 0644); err != nil {
		return models.BillCreated{}, fmt.Errorf("failed to save file: %w", err)
	}

	fileURL := r.publicURL + "/" + storedName
	key := uuid.New().String()
	now := time.Now()

	query := squirrel.Insert("bills").
		Columns(billColumns...).
		Values(key, "", "", "", 0, "", 0,
			"", "", models.BillStatusPending, fileURL, draft.FileName,
			draft.Email, now, now).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		os.Remove(filePath)
		return models.BillCreated{}, err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		os.Remove(filePath)
		return models.BillCreated{}, fmt.Errorf("failed to create bill record: %w", err)
	}

	return models.BillCreated{FileURL: fileURL, Key: key}, nil
}

// Update finalizes the provisional row with the full form data.
func (r *BillRepository) Update(ctx context.Context, bill models.Bill) (models.Bill, error) {
	query := squirrel.Update("bills").
		Set("type", bill.Type).
		Set("name", bill.Name).
		Set("date", bill.Date).
		Set("amount", bill.Amount).
		Set("vat", bill.VAT).
		Set("pct", bill.Pct).
		Set("commentary", bill.Commentary).
		Set("status", bill.Status).
		Set("file_url", bill.FileURL).
		Set("file_name", bill.FileName).
		Set("email", bill.Email).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bill.ID}).
		Suffix("RETURNING " + returningColumns()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.Bill{}, err
	}

	var updated models.Bill
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&updated.ID, &updated.Type, &updated.Name, &updated.Date, &updated.Amount,
		&updated.VAT, &updated.Pct, &updated.Commentary, &updated.CommentAdmin,
		&updated.Status, &updated.FileURL, &updated.FileName, &updated.Email,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		return models.Bill{}, fmt.Errorf("failed to update bill: %w", err)
	}

	return updated, nil
}

// Insert writes a complete bill row as-is. Used by the seeder; the
// submission flow goes through Create/Update.
func (r *BillRepository) Insert(ctx context.Context, bill models.Bill) error {
	query := squirrel.Insert("bills").
		Columns(billColumns...).
		Values(bill.ID, bill.Type, bill.Name, bill.Date, bill.Amount, bill.VAT, bill.Pct,
			bill.Commentary, bill.CommentAdmin, bill.Status, bill.FileURL, bill.FileName,
			bill.Email, bill.CreatedAt, bill.UpdatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func returningColumns() string {
	cols := billColumns[0]
	for _, c := range billColumns[1:] {
		cols += ", " + c
	}
	return cols
}
