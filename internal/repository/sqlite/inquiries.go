package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uplandimports/storefront/pkg/models"
)

const inquiryColumns = `id, first_name, last_name, company, email, phone, inquiry_type, message, configuration_id, selected_model, quantity, design_comments, created_at`

func (r *SQLiteRepo) CreateInquiry(ctx context.Context, i *models.Inquiry) (*models.Inquiry, error) {
	if i == nil {
		return nil, fmt.Errorf("inquiry is nil")
	}

	createdAt := r.now().UTC().Format(models.TimestampLayout)
	res, err := r.conn.Exec(ctx,
		`INSERT INTO inquiries (first_name, last_name, company, email, phone, inquiry_type, message, configuration_id, selected_model, quantity, design_comments, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.FirstName, i.LastName, i.Company, i.Email, i.Phone, i.InquiryType, i.Message, i.ConfigurationID, i.SelectedModel, i.Quantity, i.DesignComments, createdAt)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("inquiry id: %w", err)
	}
	r.logger.Debug("inquiry stored", slog.Int64("id", id))

	row := r.conn.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = ?`, id)
	out, err := scanInquiry(row)
	if err != nil {
		return nil, fmt.Errorf("read inquiry %d: %w", id, err)
	}
	return &out, nil
}

func (r *SQLiteRepo) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+inquiryColumns+` FROM inquiries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	out := []models.Inquiry{}
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func scanInquiry(s rowScanner) (models.Inquiry, error) {
	var i models.Inquiry
	err := s.Scan(&i.ID, &i.FirstName, &i.LastName, &i.Company, &i.Email, &i.Phone, &i.InquiryType, &i.Message,
		&i.ConfigurationID, &i.SelectedModel, &i.Quantity, &i.DesignComments, &i.CreatedAt)
	return i, err
}
