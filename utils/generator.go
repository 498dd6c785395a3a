package utils

import (
	"math/rand"
	"time"

	"github.com/casafind/rental_marketplace/models"
	"gorm.io/gorm"
)

const shareCodeLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueShareCode produces the public identifier for a tenant
// CV. Distinct from the primary key so a CV can be shared without
// exposing internal ids.
func GenerateUniqueShareCode(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, shareCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var cv models.TenantCv
		err := tx.Where("share_code = ?", code).First(&cv).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
