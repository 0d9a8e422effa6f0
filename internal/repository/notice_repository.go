package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"noticeboard/internal/entity"
)

type NoticeRepository struct {
	db *sql.DB
}

func NewNoticeRepository(db *sql.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// LEFT JOIN, чтобы заметки удаленных учителей не пропадали из списков
const selectNotices = `
	SELECT n.id, n.title, n.content, n.posted_by, n.is_important, n.created_at,
	       COALESCE(u.fullname, '')
	FROM notices n
	LEFT JOIN users u ON u.id = n.posted_by
`

func (r *NoticeRepository) scanList(rows *sql.Rows) ([]*entity.Notice, error) {
	defer rows.Close()

	var notices []*entity.Notice
	for rows.Next() {
		var n entity.Notice
		err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PostedBy,
			&n.IsImportant, &n.CreatedAt, &n.PostedByName)
		if err != nil {
			return nil, err
		}
		notices = append(notices, &n)
	}

	return notices, rows.Err()
}

// Все заметки, свежие первыми
func (r *NoticeRepository) ListAll() ([]*entity.Notice, error) {
	rows, err := r.db.Query(selectNotices + `ORDER BY n.created_at DESC, n.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заметок: %w", err)
	}
	return r.scanList(rows)
}

// Последние n заметок для главной страницы
func (r *NoticeRepository) ListLatest(n int) ([]*entity.Notice, error) {
	rows, err := r.db.Query(selectNotices+`ORDER BY n.created_at DESC, n.id DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заметок: %w", err)
	}
	return r.scanList(rows)
}

func (r *NoticeRepository) ListByOwner(ownerID int) ([]*entity.Notice, error) {
	rows, err := r.db.Query(selectNotices+`
		WHERE n.posted_by = $1
		ORDER BY n.created_at DESC, n.id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заметок учителя: %w", err)
	}
	return r.scanList(rows)
}

func (r *NoticeRepository) ListLatestByOwner(ownerID, n int) ([]*entity.Notice, error) {
	rows, err := r.db.Query(selectNotices+`
		WHERE n.posted_by = $1
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $2
	`, ownerID, n)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заметок учителя: %w", err)
	}
	return r.scanList(rows)
}

// GetOwned отдает заметку только ее автору; иначе nil без ошибки
func (r *NoticeRepository) GetOwned(noticeID, ownerID int) (*entity.Notice, error) {
	var n entity.Notice
	err := r.db.QueryRow(`
		SELECT id, title, content, posted_by, is_important, created_at
		FROM notices
		WHERE id = $1 AND posted_by = $2
	`, noticeID, ownerID).Scan(&n.ID, &n.Title, &n.Content, &n.PostedBy,
		&n.IsImportant, &n.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoticeRepository) Create(title, content string, ownerID int, isImportant bool) (*entity.Notice, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrEmptyField
	}

	n := entity.Notice{
		Title:       title,
		Content:     content,
		PostedBy:    ownerID,
		IsImportant: isImportant,
	}

	err := r.db.QueryRow(`
		INSERT INTO notices (title, content, posted_by, is_important)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, n.Title, n.Content, n.PostedBy, n.IsImportant).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("ошибка создания заметки: %w", err)
	}
	return &n, nil
}

// Update меняет заметку только если она принадлежит ownerID.
// Ноль затронутых строк - чужая или несуществующая заметка,
// возвращается ErrNotFoundOrNotOwned, решать что с ним - обработчику
func (r *NoticeRepository) Update(noticeID, ownerID int, title, content string, isImportant bool) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return ErrEmptyField
	}

	res, err := r.db.Exec(`
		UPDATE notices
		SET title = $1, content = $2, is_important = $3
		WHERE id = $4 AND posted_by = $5
	`, title, content, isImportant, noticeID, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка обновления заметки: %w", err)
	}

	return checkAffected(res)
}

func (r *NoticeRepository) Delete(noticeID, ownerID int) error {
	res, err := r.db.Exec(`
		DELETE FROM notices
		WHERE id = $1 AND posted_by = $2
	`, noticeID, ownerID)
	if err != nil {
		return fmt.Errorf("ошибка удаления заметки: %w", err)
	}

	return checkAffected(res)
}

// UpdateAny - путь администратора, без проверки автора
func (r *NoticeRepository) UpdateAny(noticeID int, title, content string, isImportant bool) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return ErrEmptyField
	}

	res, err := r.db.Exec(`
		UPDATE notices
		SET title = $1, content = $2, is_important = $3
		WHERE id = $4
	`, title, content, isImportant, noticeID)
	if err != nil {
		return fmt.Errorf("ошибка обновления заметки: %w", err)
	}

	return checkAffected(res)
}

func (r *NoticeRepository) DeleteAny(noticeID int) error {
	res, err := r.db.Exec(`DELETE FROM notices WHERE id = $1`, noticeID)
	if err != nil {
		return fmt.Errorf("ошибка удаления заметки: %w", err)
	}

	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFoundOrNotOwned
	}
	return nil
}
