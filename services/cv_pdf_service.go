package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/casafind/rental_marketplace/configs"
	"github.com/casafind/rental_marketplace/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateCvPdf renders a tenant's CV to PDF, uploads it and stores the
// resulting URL on the CV row. Runs in the background after a CV edit;
// failures are logged and the CV keeps its previous PDF.
func GenerateCvPdf(db *gorm.DB, cvID uuid.UUID) {
	var cv models.TenantCv
	if err := db.Preload("User").First(&cv, "id = ?", cvID).Error; err != nil {
		log.Printf("🔥 CV %s not found for PDF generation: %v", cvID, err)
		return
	}

	htmlData, err := generateCvHTML(cv)
	if err != nil {
		log.Printf("🔥 Failed to render CV HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate CV PDF: %v", err)
		return
	}

	uploadURL, err := uploadPdfToCloudinary(pdfBytes, cv.ShareCode)
	if err != nil {
		log.Printf("🔥 Failed to upload CV PDF to Cloudinary: %v", err)
		return
	}

	cv.PdfURL = &uploadURL
	if err := db.Save(&cv).Error; err != nil {
		log.Printf("🔥 Failed to store CV PDF URL for %s: %v", cvID, err)
		return
	}
	log.Printf("✅ Generated CV PDF for share code %s.", cv.ShareCode)
}

func generateCvHTML(cv models.TenantCv) (string, error) {
	tmpl, err := template.ParseFiles("templates/tenant_cv.html")
	if err != nil {
		return "", err
	}

	hobbies, err := models.ParseStrings(cv.Hobbies)
	if err != nil {
		return "", err
	}

	data := struct {
		FullName  string
		Headline  string
		AboutMe   string
		Hobbies   []string
		ShareCode string
		Generated string
	}{
		FullName:  cv.User.FullName,
		Headline:  cv.Headline,
		AboutMe:   cv.AboutMe,
		Hobbies:   hobbies,
		ShareCode: cv.ShareCode,
		Generated: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadPdfToCloudinary(fileBytes []byte, shareCode string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.C.CloudinaryURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("tenant_cvs/%s_%s", shareCode, uuid.New().String()),
		Folder:       config.C.CloudinaryFolder,
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
