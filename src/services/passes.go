package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"ems/src/lib"
	awslib "ems/src/lib/aws"
	"ems/src/models"
	"ems/src/utils"

	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

// GenerateRegistrationPass renders a registration's QR pass and returns a URL
// the attendee can download it from. The payload is encrypted so a pass
// cannot be forged from a known registration id, and the generated URL is
// cached so repeat downloads skip the render and upload.
func GenerateRegistrationPass(ctx context.Context, tx *gorm.DB, reg *models.Registration) (string, error) {
	filename := fmt.Sprintf("pass-%s", reg.Reference.String())
	rd := lib.GetRedisClient()
	if rd != nil {
		if cached, err := rd.Get(ctx, filename).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	keyEnv := os.Getenv("API_QRC_SECRET")
	key, err := hex.DecodeString(keyEnv)
	if err != nil {
		log.Printf("Could not read key from string: %s\n", err.Error())
		return "", Internal(err)
	}
	encryptedMessage, err := utils.EncryptMessage(key, PassPayload(reg))
	if err != nil {
		log.Printf("Error encrypting message: %s\n", err.Error())
		return "", Internal(err)
	}

	qrc, err := qrcode.New(encryptedMessage)
	if err != nil {
		return "", Internal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", Internal(err)
	}
	tempdir := os.Getenv("TEMP_DIR")
	filepath := path.Join(wd, tempdir, fmt.Sprintf("%s.jpeg", filename))
	if err = qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", Internal(err)
	}

	file, err := os.Open(filepath)
	if err != nil {
		return "", Internal(err)
	}
	defer file.Close()
	url, err := awslib.S3UploadAsset(ctx, filename, file, "image/jpeg")
	if err != nil {
		log.Printf("Error uploading asset to S3 bucket: %s\n", err.Error())
		return "", Internal(err)
	}
	if rd != nil {
		rd.SetEx(ctx, filename, *url, 2*time.Hour)
	}
	return *url, nil
}

// DecodePassReference recovers the registration reference from a scanned pass.
func DecodePassReference(code string) (string, error) {
	keyEnv := os.Getenv("API_QRC_SECRET")
	key, err := hex.DecodeString(keyEnv)
	if err != nil {
		return "", Internal(err)
	}
	plain, err := utils.DecryptMessage(key, code)
	if err != nil {
		return "", BadRequest("invalid pass code")
	}
	var id uint
	var reference string
	if _, err := fmt.Sscanf(*plain, "%d:%s", &id, &reference); err != nil {
		return "", BadRequest("invalid pass code")
	}
	return reference, nil
}

// SendRegistrationConfirmation emails an attendee their signup confirmation.
// Failures are logged, not returned, so mail trouble never voids an admission.
func SendRegistrationConfirmation(reg *models.Registration, event *models.Event) {
	from := os.Getenv("SMTP_FROM")
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour registration for %s is confirmed.\r\nReference: %s\r\n",
		reg.FullName, event.Name, reg.Reference.String(),
	)
	err := lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: "Events Team",
		To:       []string{reg.Email},
		Subject:  fmt.Sprintf("Registration confirmed: %s", event.Name),
		Body:     body,
	})
	if err != nil {
		log.Printf("Failed to send confirmation email to %s: %s\n", reg.Email, err.Error())
	}
}
