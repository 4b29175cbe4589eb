// utils/upload.go
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveUpload เขียนไฟล์ลง folder ตั้งชื่อด้วย timestamp กันชนกัน
// คืน path แบบ relative ให้เสิร์ฟผ่าน /uploads ได้ตรง ๆ
func SaveUpload(data []byte, folder, ext string) (string, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	if ext == "" {
		ext = ".png"
	}
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	path := filepath.Join(folder, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
