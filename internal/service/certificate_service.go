package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/raykov/gofpdf"
	"github.com/rs/zerolog/log"
)

// CertificateService renders a PDF certificate for a passed attempt.
type CertificateService interface {
	Render(ctx context.Context, ref practice.TestRef, p *auth.Principal, w io.Writer) error
	FileName(ref practice.TestRef) string
}

type certificateService struct {
	results  *resultService
	userRepo repository.UserRepository
}

func NewCertificateService(testRepo repository.TestRepository, attemptRepo repository.TestAttemptRepository, userRepo repository.UserRepository) CertificateService {
	return &certificateService{
		results:  &resultService{testRepo: testRepo, attemptRepo: attemptRepo},
		userRepo: userRepo,
	}
}

func (s *certificateService) FileName(ref practice.TestRef) string {
	if r, ok := ref.(practice.PersistedRef); ok {
		return fmt.Sprintf("certificate-test-%d.pdf", r.ID)
	}
	return "certificate.pdf"
}

func (s *certificateService) Render(ctx context.Context, ref practice.TestRef, p *auth.Principal, w io.Writer) error {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return err
	}
	r, ok := ref.(practice.PersistedRef)
	if !ok {
		return apperror.NotFound("TestAttempt")
	}

	test, attempt, err := s.results.completedAttempt(ctx, r.ID, p.UserID)
	if err != nil {
		return err
	}
	if attempt.Score < test.PassingScore {
		return apperror.Forbidden(apperror.CodeCertificateUnavailable, "Certificates are only issued for passed attempts")
	}
	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return apperror.FromStore(err, "User")
	}

	pdf := buildCertificate(user, test, attempt)
	if err := pdf.Output(w); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to write certificate PDF")
		return apperror.Internal(err)
	}
	return nil
}

func buildCertificate(user *model.User, test *model.Test, attempt *model.TestAttempt) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", true)
	pdf.AddPage()

	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.Ln(30)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(8)
	pdf.CellFormat(0, 10, "This certifies that", "", 1, "C", false, 0, "")

	name := user.Name
	if name == "" {
		name = user.Email
	}
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "has passed", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, test.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, fmt.Sprintf("Score %.2f%% (%d of %d correct), passing score %.2f%%",
		RoundScore(attempt.Score), attempt.CorrectCount, attempt.TotalQuestions, test.PassingScore), "", 1, "C", false, 0, "")

	completed := attempt.UpdatedAt
	if attempt.CompletedAt != nil {
		completed = *attempt.CompletedAt
	}
	pdf.CellFormat(0, 8, "Completed on "+completed.Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Ln(20)
	pdf.CellFormat(0, 6, fmt.Sprintf("Certificate no. %d-%d-%d", test.ID, attempt.UserID, attempt.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Issued "+time.Now().UTC().Format(time.RFC1123), "", 1, "C", false, 0, "")
	return pdf
}
