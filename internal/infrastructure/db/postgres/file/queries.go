package file

const (
	SelectFileByID = `
		SELECT id, storage_name, original_name, size_bytes, mime_type, owner_id, expires_at, is_public, created_at
		FROM files
		WHERE id = $1
	`
	SelectFilesByOwner = `
		SELECT id, storage_name, original_name, size_bytes, mime_type, owner_id, expires_at, is_public, created_at
		FROM files
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	SelectPublicFiles = `
		SELECT id, storage_name, original_name, size_bytes, mime_type, owner_id, expires_at, is_public, created_at
		FROM files
		WHERE is_public = TRUE
		ORDER BY created_at DESC
	`
	InsertFile = `
		INSERT INTO files (storage_name, original_name, size_bytes, mime_type, owner_id, expires_at, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, storage_name, original_name, size_bytes, mime_type, owner_id, expires_at, is_public, created_at
	`
	DeleteFileByID = `DELETE FROM files WHERE id = $1`
)
