package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/edufeedback/edu_feedback/configs"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/google/uuid"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; margin: 40px; color: #1f2933; }
  h1 { border-bottom: 2px solid #1f2933; padding-bottom: 8px; }
  .meta { color: #52606d; margin-bottom: 24px; }
  .stat { font-size: 20px; margin: 4px 0; }
  table { border-collapse: collapse; width: 100%; margin-top: 24px; }
  th, td { border: 1px solid #cbd2d9; padding: 8px 12px; text-align: left; }
  th { background: #f5f7fa; }
</style>
</head>
<body>
  <h1>Feedback Report: {{.Teacher.Name}}</h1>
  <p class="meta">{{.Teacher.Department}} &middot; {{.Teacher.Subject}} &middot; Generated {{.GeneratedAt}}</p>
  <p class="stat"><b>Average rating:</b> {{printf "%.2f" .Teacher.AverageRating}} / 5</p>
  <p class="stat"><b>Total feedback:</b> {{.Teacher.TotalFeedback}}</p>
  <table>
    <tr><th>Month</th><th>Feedback</th><th>Average rating</th></tr>
    {{range .Monthly}}<tr><td>{{.Month}}</td><td>{{.Count}}</td><td>{{printf "%.2f" .AvgRating}}</td></tr>
    {{end}}
  </table>
</body>
</html>`

// GenerateTeacherReport renders a teacher's aggregate and monthly numbers to
// a PDF and uploads it, returning the hosted URL.
func GenerateTeacherReport(teacher models.Teacher, monthly []MonthlyPoint) (string, error) {
	html, err := renderReportHTML(teacher, monthly)
	if err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}

	pdfBytes, err := renderPDFFromHTML(html)
	if err != nil {
		return "", fmt.Errorf("failed to render report PDF: %w", err)
	}

	return uploadReport(pdfBytes, teacher.ID.String())
}

func renderReportHTML(teacher models.Teacher, monthly []MonthlyPoint) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Teacher     models.Teacher
		Monthly     []MonthlyPoint
		GeneratedAt string
	}{
		Teacher:     teacher,
		Monthly:     monthly,
		GeneratedAt: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
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

func uploadReport(fileBytes []byte, teacherID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/%s_%s", teacherID, uuid.New().String()),
		Folder:       "edufeedback_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
