package services

import (
	"path/filepath"
	"strings"

	"bakery/entity"
	"bakery/pkg/slipcheck"
	"bakery/repository"
	"bakery/utils"

	"github.com/rs/zerolog/log"
)

type SlipService struct {
	Auth      *slipcheck.Authenticator
	Repo      *repository.SlipRepository
	UploadDir string
}

func NewSlipService(auth *slipcheck.Authenticator, repo *repository.SlipRepository, uploadDir string) *SlipService {
	return &SlipService{Auth: auth, Repo: repo, UploadDir: uploadDir}
}

// ValidateAndStore รัน slipcheck ก่อน ผ่านแล้วค่อยแตะ disk
// path จะออกจากฟังก์ชันนี้เฉพาะสลิปที่ valid เท่านั้น — คนสร้างออเดอร์พึ่ง invariant นี้
func (s *SlipService) ValidateAndStore(userID uint, filename string, data []byte) (string, slipcheck.Result) {
	result := s.Auth.Validate(data)
	if !result.Valid {
		log.Info().Uint("userId", userID).Str("reason", result.Reason).Msg("slip rejected")
		return "", result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path, err := utils.SaveUpload(data, filepath.Join(s.UploadDir, "slips"), ext)
	if err != nil {
		log.Error().Err(err).Msg("cannot save slip")
		return "", slipcheck.Result{Valid: false, Reason: slipcheck.ReasonUnreadable}
	}

	if err := s.Repo.Create(&entity.SlipUpload{
		Path:      path,
		SizeBytes: int64(len(data)),
		UserID:    userID,
	}); err != nil {
		log.Error().Err(err).Msg("cannot record slip upload")
		return "", slipcheck.Result{Valid: false, Reason: slipcheck.ReasonUnreadable}
	}

	return path, result
}
