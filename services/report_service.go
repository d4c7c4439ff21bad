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
	config "github.com/deftec/counseling_platform/configs"
	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: sans-serif; margin: 40px; }
h1 { border-bottom: 2px solid #333; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #999; padding: 6px 10px; text-align: left; }
th { background: #eee; }
</style></head>
<body>
<h1>Counseling Summary — {{.StudentName}}</h1>
<p>Service number: {{.ServiceNumber}} &nbsp; Rank: {{.Rank}}</p>
<p>Generated {{.GeneratedAt}}</p>
<h2>Appointments</h2>
<table>
<tr><th>Date</th><th>Time</th><th>Counselor</th><th>Specialization</th><th>Status</th></tr>
{{range .Appointments}}<tr><td>{{.Date}}</td><td>{{.Time}}</td><td>{{.Counselor}}</td><td>{{.Specialization}}</td><td>{{.Status}}</td></tr>{{end}}
</table>
<h2>Calls</h2>
<table>
<tr><th>Started</th><th>Type</th><th>Status</th><th>Duration (s)</th></tr>
{{range .Calls}}<tr><td>{{.Started}}</td><td>{{.Type}}</td><td>{{.Status}}</td><td>{{.Duration}}</td></tr>{{end}}
</table>
</body>
</html>`))

type reportAppointmentRow struct {
	Date, Time, Counselor, Specialization, Status string
}

type reportCallRow struct {
	Started, Type, Status string
	Duration              int
}

// GenerateCounselingReport builds a per-student summary PDF and uploads it
// to Cloudinary, returning the download URL.
func GenerateCounselingReport(ctx context.Context, student models.User) (string, error) {
	var appointments []models.Appointment
	if err := database.DB.
		Preload("Counselor").
		Preload("Specialization").
		Where("student_id = ?", student.ID).
		Order("date desc, time desc").
		Find(&appointments).Error; err != nil {
		return "", err
	}

	var calls []models.CallLog
	if err := database.DB.
		Where("caller_id = ? OR receiver_id = ?", student.ID, student.ID).
		Order("started_at desc").
		Find(&calls).Error; err != nil {
		return "", err
	}

	now := time.Now()
	data := struct {
		StudentName, ServiceNumber, Rank, GeneratedAt string
		Appointments                                  []reportAppointmentRow
		Calls                                         []reportCallRow
	}{
		StudentName: student.FullName(),
		GeneratedAt: now.Format("January 2, 2006"),
	}
	if student.ServiceNumber != nil {
		data.ServiceNumber = *student.ServiceNumber
	}
	if student.Rank != nil {
		data.Rank = *student.Rank
	}
	for _, appt := range appointments {
		data.Appointments = append(data.Appointments, reportAppointmentRow{
			Date:           appt.DateString(),
			Time:           appt.Time,
			Counselor:      appt.Counselor.FullName(),
			Specialization: appt.Specialization.Name,
			Status:         appt.Status,
		})
	}
	for _, call := range calls {
		data.Calls = append(data.Calls, reportCallRow{
			Started:  call.StartedAt.Format("2006-01-02 15:04"),
			Type:     call.CallType,
			Status:   call.Status,
			Duration: int(call.Duration(now).Seconds()),
		})
	}

	var renderedHTML bytes.Buffer
	if err := reportTemplate.Execute(&renderedHTML, data); err != nil {
		return "", err
	}

	pdfBytes, err := generatePDFFromHTML(ctx, renderedHTML.String())
	if err != nil {
		return "", err
	}

	return uploadReportPDF(ctx, pdfBytes, student.ID.String())
}

func generatePDFFromHTML(parent context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
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

func uploadReportPDF(ctx context.Context, pdfBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(pdfBytes), uploader.UploadParams{
		Folder:   "counseling_reports",
		PublicID: fmt.Sprintf("report_%s_%d", studentID, time.Now().Unix()),
		Format:   "pdf",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
