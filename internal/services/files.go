package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dimitrije/collaborate-api/internal/database"
	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrFileTooLarge    = errors.New("file exceeds the upload limit")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrDraftNotOwned   = errors.New("draft area belongs to another user")
)

// FileService stores editor attachments. Draft uploads live in the user/draft
// area until a form save copies them into the area of the owning record.
type FileService struct {
	db       *database.DB
	maxBytes int64
}

func NewFileService(db *database.DB, maxBytes int64) *FileService {
	return &FileService{db: db, maxBytes: maxBytes}
}

type DraftUpload struct {
	ItemID   int64
	FilePath string
	FileName string
	MimeType string
	Content  []byte
}

const fileColumns = `id, context_id, component, file_area, item_id, file_path, file_name, user_id, mime_type, size, created_at`

func (s *FileService) NewDraftItemID(ctx context.Context, q database.Querier) (int64, error) {
	var id int64
	if err := q.QueryRow(ctx, `SELECT nextval('draft_item_seq')`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UploadDraft stores a file in the user's draft area, allocating a new draft
// item when up.ItemID is 0. Uploading the same path and name again replaces it.
func (s *FileService) UploadDraft(ctx context.Context, userID uuid.UUID, up DraftUpload) (*models.StoredFile, error) {
	filePath, err := normalizeFilePath(up.FilePath)
	if err != nil {
		return nil, err
	}
	if up.FileName == "" || strings.ContainsAny(up.FileName, `/\`) || up.FileName == "." || up.FileName == ".." {
		return nil, ErrInvalidFileName
	}
	if s.maxBytes > 0 && int64(len(up.Content)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	mimeType := up.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	itemID := up.ItemID
	if itemID == 0 {
		if itemID, err = s.NewDraftItemID(ctx, s.db.Pool); err != nil {
			return nil, fmt.Errorf("failed to allocate draft item: %w", err)
		}
	}

	var f models.StoredFile
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO files (context_id, component, file_area, item_id, file_path, file_name, user_id, mime_type, size, content)
		VALUES (0, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (context_id, component, file_area, item_id, file_path, file_name)
		DO UPDATE SET mime_type = EXCLUDED.mime_type, size = EXCLUDED.size, content = EXCLUDED.content
		WHERE files.user_id = EXCLUDED.user_id
		RETURNING `+fileColumns,
		editor.DraftComponent, editor.DraftArea, itemID, filePath, up.FileName, userID, mimeType, int64(len(up.Content)), up.Content,
	).Scan(
		&f.ID, &f.ContextID, &f.Component, &f.FileArea, &f.ItemID, &f.FilePath,
		&f.FileName, &f.UserID, &f.MimeType, &f.Size, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDraftNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store draft file: %w", err)
	}
	return &f, nil
}

// SaveDraftArea replaces the files of area with the files of draft, keeping at
// most opts.MaxFiles files (editor.Unlimited for no limit), files no larger
// than opts.MaxBytes (0 for no limit) and, unless subdirectories are allowed,
// only files at the root path. It returns the number of files stored.
func (s *FileService) SaveDraftArea(ctx context.Context, q database.Querier, draft editor.Draft, area editor.Area, opts editor.Options) (int64, error) {
	if _, err := q.Exec(ctx, `
		DELETE FROM files
		WHERE context_id = $1 AND component = $2 AND file_area = $3 AND item_id = $4
	`, area.ContextID, area.Component, area.FileArea, area.ItemID); err != nil {
		return 0, fmt.Errorf("failed to clear area %s: %w", area, err)
	}

	var limit *int64
	if opts.MaxFiles >= 0 {
		n := int64(opts.MaxFiles)
		limit = &n
	}

	tag, err := q.Exec(ctx, `
		INSERT INTO files (context_id, component, file_area, item_id, file_path, file_name, user_id, mime_type, size, content)
		SELECT $1, $2, $3, $4, file_path, file_name, user_id, mime_type, size, content
		FROM files
		WHERE context_id = 0 AND component = $5 AND file_area = $6 AND item_id = $7 AND user_id = $8
			AND ($9::boolean OR file_path = '/')
			AND ($10::bigint <= 0 OR size <= $10::bigint)
		ORDER BY id
		LIMIT $11::bigint
	`, area.ContextID, area.Component, area.FileArea, area.ItemID,
		editor.DraftComponent, editor.DraftArea, draft.ItemID, draft.UserID,
		opts.AllowSubdirectories, opts.MaxBytes, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to copy draft %d into %s: %w", draft.ItemID, area, err)
	}
	return tag.RowsAffected(), nil
}

// CopyAreaToDraft copies every file of area into draft.
func (s *FileService) CopyAreaToDraft(ctx context.Context, q database.Querier, area editor.Area, draft editor.Draft) (int64, error) {
	tag, err := q.Exec(ctx, `
		INSERT INTO files (context_id, component, file_area, item_id, file_path, file_name, user_id, mime_type, size, content)
		SELECT 0, $1, $2, $3, file_path, file_name, $4, mime_type, size, content
		FROM files
		WHERE context_id = $5 AND component = $6 AND file_area = $7 AND item_id = $8
		ORDER BY id
	`, editor.DraftComponent, editor.DraftArea, draft.ItemID, draft.UserID,
		area.ContextID, area.Component, area.FileArea, area.ItemID)
	if err != nil {
		return 0, fmt.Errorf("failed to copy %s into draft %d: %w", area, draft.ItemID, err)
	}
	return tag.RowsAffected(), nil
}

// ListArea returns file metadata of area ordered by path and name.
func (s *FileService) ListArea(ctx context.Context, area editor.Area) ([]models.StoredFile, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+fileColumns+`
		FROM files
		WHERE context_id = $1 AND component = $2 AND file_area = $3 AND item_id = $4
		ORDER BY file_path, file_name
	`, area.ContextID, area.Component, area.FileArea, area.ItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.StoredFile
	for rows.Next() {
		var f models.StoredFile
		if err := rows.Scan(
			&f.ID, &f.ContextID, &f.Component, &f.FileArea, &f.ItemID, &f.FilePath,
			&f.FileName, &f.UserID, &f.MimeType, &f.Size, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetFile returns a file of area including its content.
func (s *FileService) GetFile(ctx context.Context, area editor.Area, filePath, fileName string) (*models.StoredFile, error) {
	filePath, err := normalizeFilePath(filePath)
	if err != nil {
		return nil, err
	}

	var f models.StoredFile
	err = s.db.Pool.QueryRow(ctx, `
		SELECT `+fileColumns+`, content
		FROM files
		WHERE context_id = $1 AND component = $2 AND file_area = $3 AND item_id = $4
			AND file_path = $5 AND file_name = $6
	`, area.ContextID, area.Component, area.FileArea, area.ItemID, filePath, fileName).Scan(
		&f.ID, &f.ContextID, &f.Component, &f.FileArea, &f.ItemID, &f.FilePath,
		&f.FileName, &f.UserID, &f.MimeType, &f.Size, &f.CreatedAt, &f.Content,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetDraftFile returns a file from one of the user's own draft areas.
func (s *FileService) GetDraftFile(ctx context.Context, userID uuid.UUID, itemID int64, filePath, fileName string) (*models.StoredFile, error) {
	f, err := s.GetFile(ctx, editor.Area{ContextID: 0, Component: editor.DraftComponent, FileArea: editor.DraftArea, ItemID: itemID}, filePath, fileName)
	if err != nil {
		return nil, err
	}
	if f.UserID == nil || *f.UserID != userID {
		return nil, ErrFileNotFound
	}
	return f, nil
}

// CleanupDrafts removes draft files created before the given time.
func (s *FileService) CleanupDrafts(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM files WHERE component = $1 AND file_area = $2 AND created_at < $3
	`, editor.DraftComponent, editor.DraftArea, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// normalizeFilePath returns p as an absolute directory path ending in "/".
func normalizeFilePath(p string) (string, error) {
	if p == "" || p == "/" {
		return "/", nil
	}
	if strings.Contains(p, `\`) {
		return "", ErrInvalidFileName
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", ErrInvalidFileName
		}
	}
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return "/", nil
	}
	return cleaned + "/", nil
}
