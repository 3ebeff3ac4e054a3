package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

const uploadsDir = "uploads"

// EnsureUploadDir creates the local uploads directory if it doesn't exist.
func EnsureUploadDir() error {
	return os.MkdirAll(uploadsDir, os.ModePerm)
}

// SaveUpload writes the uploaded file under uploads/<key> and returns the
// public path served by the static route.
func SaveUpload(fileHeader *multipart.FileHeader, key string) (string, error) {
	destPath := filepath.Join(uploadsDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/" + uploadsDir + "/" + key, nil
}

// StoreUpload stores a file on R2 when configured, otherwise on local disk.
func StoreUpload(fileHeader *multipart.FileHeader, key string) (string, error) {
	if R2Enabled() {
		return UploadFileToR2(fileHeader, key)
	}
	return SaveUpload(fileHeader, key)
}
